package catalog

import (
	"context"
	"time"
)

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Image       string     `json:"image,omitempty"`
	Category    string     `json:"category"`
	Stock       int        `json:"stock"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Sort orders accepted by List. Anything else keeps insertion order.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortLatest    = "latest"
)

type Filter struct {
	Category string
	Sort     string
}

type Store interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) (Product, bool, error)
	Delete(ctx context.Context, id string) (Product, bool, error)
	Ping(ctx context.Context) error
}
