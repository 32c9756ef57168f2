package order

import (
	"context"
	"errors"
	"time"

	"MonoStore/internal/cart"
)

const StatusPending = "pending"

var ErrEmptyCart = errors.New("cart is empty")

type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Order is immutable once stored. CancelledAt exists for the wire shape but
// is never set; there is no status machine.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []cart.LineItem `json:"items"`
	Total           float64         `json:"total"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
}

type Store interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// CartSource is the slice of the cart store checkout needs.
type CartSource interface {
	Take(ctx context.Context, userID string) (cart.Cart, error)
}
