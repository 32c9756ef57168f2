package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemStore struct {
	mu    sync.RWMutex
	m     map[string]Product
	order []string // ids in insertion order
}

// NewMemStore seeds the demo catalog.
func NewMemStore() *MemStore {
	s := &MemStore{m: map[string]Product{}}
	now := time.Now().UTC()

	seed := []Product{
		{ID: "1", Name: "Premium Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation", Price: 299.99, Image: "https://images.pexels.com/photos/3394651/pexels-photo-3394651.jpeg", Category: "electronics", Stock: 50},
		{ID: "2", Name: "Smartphone 13 Pro", Description: "Latest smartphone with advanced camera features", Price: 999.99, Image: "https://images.pexels.com/photos/404280/pexels-photo-404280.jpeg", Category: "electronics", Stock: 20},
		{ID: "3", Name: "Designer Watch", Description: "Elegant designer watch with leather strap", Price: 299.99, Image: "https://images.pexels.com/photos/277390/pexels-photo-277390.jpeg", Category: "accessories", Stock: 15},
		{ID: "4", Name: "Premium Cotton T-Shirt", Description: "Soft and comfortable cotton t-shirt", Price: 29.99, Image: "https://images.pexels.com/photos/5698851/pexels-photo-5698851.jpeg", Category: "clothing", Stock: 100},
		{ID: "5", Name: "Wireless Gaming Mouse", Description: "High-performance wireless gaming mouse", Price: 79.99, Image: "https://images.pexels.com/photos/5082581/pexels-photo-5082581.jpeg", Category: "electronics", Stock: 30},
	}

	for _, p := range seed {
		p.CreatedAt = now
		s.m[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context, f Filter) ([]Product, error) {
	s.mu.RLock()
	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.m[id]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortLatest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

func (s *MemStore) Create(ctx context.Context, p Product) (Product, error) {
	p.ID = "p_" + uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = nil

	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[p.ID] = p
	s.order = append(s.order, p.ID)
	return p, nil
}

func (s *MemStore) Update(ctx context.Context, id string, p Product) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}

	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.Category = p.Category
	cur.Stock = p.Stock
	if p.Image != "" {
		cur.Image = p.Image
	}
	now := time.Now().UTC()
	cur.UpdatedAt = &now

	s.m[id] = cur
	return cur, true, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}

	delete(s.m, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p, true, nil
}
