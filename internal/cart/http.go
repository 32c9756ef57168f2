package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MonoStore/internal/auth"
	"MonoStore/pkg/kit"
)

type Server struct {
	Store *Store
	Log   *zap.Logger
}

func (s *Server) GetHandler() http.HandlerFunc        { return s.get }
func (s *Server) AddItemHandler() http.HandlerFunc    { return s.addItem }
func (s *Server) UpdateItemHandler() http.HandlerFunc { return s.updateItem }
func (s *Server) RemoveItemHandler() http.HandlerFunc { return s.removeItem }
func (s *Server) ClearHandler() http.HandlerFunc      { return s.clear }

type addItemReq struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type updateItemReq struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type cartResp struct {
	Message string `json:"message,omitempty"`
	Cart    Cart   `json:"cart"`
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	c, err := s.Store.Get(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "get cart failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Cart: c})
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req addItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if violations := kit.ValidateStruct(req); violations != nil {
		kit.WriteValidationError(w, r, violations)
		return
	}

	c, err := s.Store.AddItem(r.Context(), u.ID, req.ProductID, req.Quantity)
	if err != nil {
		s.writeCartError(w, r, "add item failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Item added to cart", Cart: c})
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	productID := chi.URLParam(r, "productId")

	var req updateItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if violations := kit.ValidateStruct(req); violations != nil {
		kit.WriteValidationError(w, r, violations)
		return
	}

	c, err := s.Store.UpdateItem(r.Context(), u.ID, productID, req.Quantity)
	if err != nil {
		s.writeCartError(w, r, "update item failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Cart item updated", Cart: c})
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	c, err := s.Store.RemoveItem(r.Context(), u.ID, chi.URLParam(r, "productId"))
	if err != nil {
		s.writeCartError(w, r, "remove item failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Item removed from cart", Cart: c})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	c, err := s.Store.Clear(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "clear cart failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Cart cleared", Cart: c})
}

func (s *Server) writeCartError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", nil)
	case errors.Is(err, ErrItemNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Item not found in cart", nil)
	case errors.Is(err, ErrOutOfStock):
		kit.WriteError(w, r, http.StatusBadRequest, "Not enough stock available", nil)
	case errors.Is(err, ErrInvalidQuantity):
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid quantity", nil)
	default:
		s.serverError(w, r, op, err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
