package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// fakeClient implements api.Client for service tests.
type fakeClient struct {
	PingErr error

	ProductsRet []models.Product
	ProductsErr error
	ProductRet  models.Product

	LoginRet  credentials.Credentials
	LoginErr  error
	LastLogin models.LoginRequest

	RegisterErr  error
	LastRegister models.RegisterRequest

	LogoutErr   error
	LogoutCalls int
	OnLogout    func()

	MeRet models.User
	MeErr error

	LastProfile  models.ProfileUpdate
	LastPassword models.PasswordChange

	OrdersRet      []models.Order
	CreateRet      models.Order
	LastOrder      models.NewOrder
	LastUpdate     models.OrderUpdate
	LastUpdatedNum int64
	CancelledNum   int64
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Products(context.Context) ([]models.Product, error) {
	return f.ProductsRet, f.ProductsErr
}

func (f *fakeClient) Product(_ context.Context, id string) (models.Product, error) {
	if f.ProductRet.ID != id {
		return models.Product{}, api.ErrNotFound
	}
	return f.ProductRet, nil
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (credentials.Credentials, error) {
	f.LastLogin = req
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) error {
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCalls++
	if f.OnLogout != nil {
		f.OnLogout()
	}
	return f.LogoutErr
}

func (f *fakeClient) Me(context.Context) (models.User, error) { return f.MeRet, f.MeErr }

func (f *fakeClient) UpdateProfile(_ context.Context, req models.ProfileUpdate) error {
	f.LastProfile = req
	return nil
}

func (f *fakeClient) ChangePassword(_ context.Context, req models.PasswordChange) error {
	f.LastPassword = req
	return nil
}

func (f *fakeClient) CreateOrder(_ context.Context, order models.NewOrder) (models.Order, error) {
	f.LastOrder = order
	return f.CreateRet, nil
}

func (f *fakeClient) Orders(context.Context) ([]models.Order, error) { return f.OrdersRet, nil }

func (f *fakeClient) UpdateOrder(_ context.Context, number int64, upd models.OrderUpdate) error {
	f.LastUpdatedNum, f.LastUpdate = number, upd
	return nil
}

func (f *fakeClient) CancelOrder(_ context.Context, number int64) error {
	f.CancelledNum = number
	return nil
}
