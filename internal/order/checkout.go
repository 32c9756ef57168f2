package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Checkout converts the user's cart into an order. The cart snapshot and the
// clear happen in one step on the cart store, so the order always matches
// what the user saw. Stock is not decremented and no payment runs.
func (s *Server) Checkout(ctx context.Context, userID string, addr Address, paymentMethod string) (Order, error) {
	c, err := s.Carts.Take(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	o := Order{
		ID:              "o_" + uuid.NewString(),
		UserID:          userID,
		Items:           c.Items,
		Total:           c.Total,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.Orders.Create(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}
