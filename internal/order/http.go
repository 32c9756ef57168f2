package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MonoStore/internal/auth"
	"MonoStore/pkg/kit"
)

type Server struct {
	Orders Store
	Carts  CartSource
	Log    *zap.Logger
}

func (s *Server) CreateHandler() http.HandlerFunc { return s.create }
func (s *Server) ListHandler() http.HandlerFunc   { return s.list }
func (s *Server) GetHandler() http.HandlerFunc    { return s.get }

type createReq struct {
	ShippingAddress Address `json:"shippingAddress" validate:"required"`
	PaymentMethod   string  `json:"paymentMethod" validate:"required"`
}

type createResp struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req createReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if violations := kit.ValidateStruct(req); violations != nil {
		kit.WriteValidationError(w, r, violations)
		return
	}

	o, err := s.Checkout(r.Context(), u.ID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			kit.WriteError(w, r, http.StatusBadRequest, "Cart is empty", nil)
			return
		}
		s.serverError(w, r, "checkout failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, createResp{
		OrderID: o.ID,
		Message: "Order created successfully",
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	orders, err := s.Orders.ListByUser(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "list orders failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")
	o, found, err := s.Orders.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get order failed", zap.Error(err), zap.String("order_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", nil)
		return
	}
	if o.UserID != u.ID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
