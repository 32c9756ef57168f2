package cart

import (
	"context"
	"errors"

	"MonoStore/internal/catalog"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrOutOfStock      = errors.New("not enough stock available")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ProductRef is the product snapshot captured when an item enters the cart.
// Later catalog edits do not rewrite it.
type ProductRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

type LineItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	Subtotal float64    `json:"subtotal"`
}

type Cart struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

// ProductSource resolves current catalog state for stock checks and pricing.
type ProductSource interface {
	Get(ctx context.Context, id string) (catalog.Product, bool, error)
}

func (c *Cart) recalcTotal() {
	total := 0.0
	for _, it := range c.Items {
		total += it.Subtotal
	}
	c.Total = total
}

func (c Cart) clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, Total: c.Total}
}

func findItem(items []LineItem, productID string) int {
	for i, it := range items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
