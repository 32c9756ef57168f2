package cart

import (
	"context"
	"sync"
)

// Store keeps one cart per user. Every mutation of a user's cart runs under
// that user's lock, so concurrent requests for the same user are linearized
// while different users never contend.
type Store struct {
	products ProductSource

	mu    sync.Mutex
	carts map[string]*userCart
}

type userCart struct {
	mu   sync.Mutex
	cart Cart
}

func NewStore(products ProductSource) *Store {
	return &Store{
		products: products,
		carts:    make(map[string]*userCart),
	}
}

// forUser returns the user's cart entry, creating an empty one on first access.
func (s *Store) forUser(userID string) *userCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc, ok := s.carts[userID]
	if !ok {
		uc = &userCart{cart: Cart{Items: []LineItem{}}}
		s.carts[userID] = uc
	}
	return uc
}

func (s *Store) Get(ctx context.Context, userID string) (Cart, error) {
	uc := s.forUser(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.cart.clone(), nil
}

// AddItem puts quantity units of a product into the cart, merging with an
// existing line item. Stock is checked against the current catalog value but
// never reserved. On any failure the cart is left untouched.
func (s *Store) AddItem(ctx context.Context, userID, productID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	p, ok, err := s.products.Get(ctx, productID)
	if err != nil {
		return Cart{}, err
	}
	if !ok {
		return Cart{}, ErrProductNotFound
	}
	if quantity > p.Stock {
		return Cart{}, ErrOutOfStock
	}

	uc := s.forUser(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if i := findItem(uc.cart.Items, productID); i >= 0 {
		combined := uc.cart.Items[i].Quantity + quantity
		if combined > p.Stock {
			return Cart{}, ErrOutOfStock
		}
		uc.cart.Items[i].Quantity = combined
		uc.cart.Items[i].Subtotal = float64(combined) * p.Price
	} else {
		uc.cart.Items = append(uc.cart.Items, LineItem{
			Product:  ProductRef{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image},
			Quantity: quantity,
			Subtotal: float64(quantity) * p.Price,
		})
	}

	uc.cart.recalcTotal()
	return uc.cart.clone(), nil
}

// UpdateItem sets the quantity of an existing line item. The subtotal is
// recomputed from the price snapshot held in the line.
func (s *Store) UpdateItem(ctx context.Context, userID, productID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	uc := s.forUser(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := findItem(uc.cart.Items, productID)
	if i < 0 {
		return Cart{}, ErrItemNotFound
	}

	p, ok, err := s.products.Get(ctx, productID)
	if err != nil {
		return Cart{}, err
	}
	if !ok {
		return Cart{}, ErrProductNotFound
	}
	if quantity > p.Stock {
		return Cart{}, ErrOutOfStock
	}

	uc.cart.Items[i].Quantity = quantity
	uc.cart.Items[i].Subtotal = float64(quantity) * uc.cart.Items[i].Product.Price

	uc.cart.recalcTotal()
	return uc.cart.clone(), nil
}

func (s *Store) RemoveItem(ctx context.Context, userID, productID string) (Cart, error) {
	uc := s.forUser(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := findItem(uc.cart.Items, productID)
	if i < 0 {
		return Cart{}, ErrItemNotFound
	}

	uc.cart.Items = append(uc.cart.Items[:i], uc.cart.Items[i+1:]...)
	uc.cart.recalcTotal()
	return uc.cart.clone(), nil
}

// Clear resets the cart to its empty state. The cart itself survives.
func (s *Store) Clear(ctx context.Context, userID string) (Cart, error) {
	uc := s.forUser(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cart = Cart{Items: []LineItem{}}
	return uc.cart.clone(), nil
}

// Take returns the current cart snapshot and clears it in one critical
// section, so checkout observes and consumes a consistent cart.
func (s *Store) Take(ctx context.Context, userID string) (Cart, error) {
	uc := s.forUser(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap := uc.cart.clone()
	uc.cart = Cart{Items: []LineItem{}}
	return snap, nil
}
