package api

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Client is the storefront API as the services see it.
type Client interface {
	Ping(ctx context.Context) error

	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)

	Login(ctx context.Context, req models.LoginRequest) (credentials.Credentials, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdate) error
	ChangePassword(ctx context.Context, req models.PasswordChange) error

	CreateOrder(ctx context.Context, order models.NewOrder) (models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
	UpdateOrder(ctx context.Context, number int64, upd models.OrderUpdate) error
	CancelOrder(ctx context.Context, number int64) error
}
