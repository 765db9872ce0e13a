package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// ShopService covers the catalog (public) and the user's orders.
type ShopService interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)
	Trending(ctx context.Context) ([]models.Product, error)
	PlaceOrder(ctx context.Context, order models.NewOrder) (models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
	UpdateOrder(ctx context.Context, number int64, address, comment string) error
	CancelOrder(ctx context.Context, number int64) error
}

type shopService struct {
	client api.Client
	state  *session.State
}

func NewShopService(client api.Client, state *session.State) ShopService {
	return &shopService{client: client, state: state}
}

func (s *shopService) Products(ctx context.Context) ([]models.Product, error) {
	return s.client.Products(ctx)
}

func (s *shopService) Product(ctx context.Context, id string) (models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Product{}, ErrEmptyField
	}
	return s.client.Product(ctx, id)
}

func (s *shopService) Trending(ctx context.Context) ([]models.Product, error) {
	all, err := s.client.Products(ctx)
	if err != nil {
		return nil, err
	}
	return models.Trending(all), nil
}

// PlaceOrder sends order with trimmed address and comment. The total is
// passed through unchanged.
func (s *shopService) PlaceOrder(ctx context.Context, order models.NewOrder) (models.Order, error) {
	if !s.state.LoggedIn() {
		return models.Order{}, ErrNotLoggedIn
	}
	if len(order.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	order.Address = strings.TrimSpace(order.Address)
	order.Comment = strings.TrimSpace(order.Comment)
	if order.Address == "" {
		return models.Order{}, fmt.Errorf("address: %w", ErrEmptyField)
	}
	return s.client.CreateOrder(ctx, order)
}

func (s *shopService) Orders(ctx context.Context) ([]models.Order, error) {
	if !s.state.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return s.client.Orders(ctx)
}

func (s *shopService) UpdateOrder(ctx context.Context, number int64, address, comment string) error {
	if err := s.requireEditable(ctx, number); err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("address: %w", ErrEmptyField)
	}
	return s.client.UpdateOrder(ctx, number, models.OrderUpdate{Address: address, Comment: strings.TrimSpace(comment)})
}

func (s *shopService) CancelOrder(ctx context.Context, number int64) error {
	if err := s.requireEditable(ctx, number); err != nil {
		return err
	}
	return s.client.CancelOrder(ctx, number)
}

func (s *shopService) requireEditable(ctx context.Context, number int64) error {
	orders, err := s.Orders(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.OrderNumber == number {
			if !o.Editable() {
				return ErrOrderNotEditable
			}
			return nil
		}
	}
	return fmt.Errorf("order %d: %w", number, api.ErrNotFound)
}
