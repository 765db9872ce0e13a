package models

import "time"

type OrderStatus string

const (
	OrderPending          OrderStatus = "pending"
	OrderSold             OrderStatus = "sold"
	OrderCancelledByUser  OrderStatus = "cancelled by user"
	OrderCancelledByAdmin OrderStatus = "cancelled by admin"
)

// OrderLine is a line of a placed order. PriceAtOrder is the unit price
// charged when the order was created.
type OrderLine struct {
	ID           string  `json:"_id,omitempty"`
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder int64   `json:"priceAtOrder"`
}

type Order struct {
	ID          string      `json:"_id"`
	OrderNumber int64       `json:"orderNumber"`
	Status      OrderStatus `json:"status"`
	Address     string      `json:"address"`
	Comment     string      `json:"comment,omitempty"`
	Total       int64       `json:"total"`
	CreatedAt   time.Time   `json:"createdAt"`
	Products    []OrderLine `json:"products"`
}

// Editable reports whether the order may still be updated or cancelled.
func (o Order) Editable() bool {
	return o.Status == OrderPending
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is the body of an order creation. Total is sent as given.
type NewOrder struct {
	Items   []OrderItem `json:"items"`
	Address string      `json:"address"`
	Comment string      `json:"comment"`
	Total   int64       `json:"total"`
}

type OrderUpdate struct {
	Address string `json:"address"`
	Comment string `json:"comment"`
}
