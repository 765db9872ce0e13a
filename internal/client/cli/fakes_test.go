package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

type fakeAuth struct {
	mu      sync.Mutex
	pingErr error

	loginPhone string
	loginPw    string
	registered []string
	logouts    int
	user       models.User
	renamed    [2]string
	passwords  [3]string
	err        error
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Login(_ context.Context, phone string, password []byte) error {
	f.loginPhone, f.loginPw = phone, string(password)
	return f.err
}

func (f *fakeAuth) Register(_ context.Context, phone, name, surname string, password []byte) error {
	f.registered = []string{phone, name, surname, string(password)}
	return f.err
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	return f.err
}

func (f *fakeAuth) Profile(context.Context) (models.User, error) { return f.user, f.err }

func (f *fakeAuth) UpdateProfile(_ context.Context, name, surname string) error {
	f.renamed = [2]string{name, surname}
	return f.err
}

func (f *fakeAuth) ChangePassword(_ context.Context, oldPassword, newPassword, confirm []byte) error {
	f.passwords = [3]string{string(oldPassword), string(newPassword), string(confirm)}
	return f.err
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAuth) LoggedIn() bool { return false }

type fakeShop struct {
	products  []models.Product
	orders    []models.Order
	placed    models.NewOrder
	created   models.Order
	updated   []any
	cancelled int64
	err       error
}

var _ services.ShopService = (*fakeShop)(nil)

func (f *fakeShop) Products(context.Context) ([]models.Product, error) { return f.products, f.err }

func (f *fakeShop) Product(_ context.Context, id string) (models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, f.err
}

func (f *fakeShop) Trending(context.Context) ([]models.Product, error) {
	return models.Trending(f.products), f.err
}

func (f *fakeShop) PlaceOrder(_ context.Context, order models.NewOrder) (models.Order, error) {
	f.placed = order
	return f.created, f.err
}

func (f *fakeShop) Orders(context.Context) ([]models.Order, error) { return f.orders, f.err }

func (f *fakeShop) UpdateOrder(_ context.Context, number int64, address, comment string) error {
	f.updated = []any{number, address, comment}
	return f.err
}

func (f *fakeShop) CancelOrder(_ context.Context, number int64) error {
	f.cancelled = number
	return f.err
}
