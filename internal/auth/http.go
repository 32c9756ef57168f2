package auth

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"MonoStore/pkg/kit"
)

type Server struct {
	Log      *zap.Logger
	Store    UserStore
	JWT      *TokenMaker
	TokenTTL time.Duration
}

func (s *Server) RegisterHandler() http.HandlerFunc { return s.register }
func (s *Server) LoginHandler() http.HandlerFunc    { return s.login }
func (s *Server) LogoutHandler() http.HandlerFunc   { return s.logout }
func (s *Server) ProfileHandler() http.HandlerFunc  { return s.profile }

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResp struct {
	Message string     `json:"message,omitempty"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token,omitempty"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if violations := kit.ValidateStruct(req); violations != nil {
		kit.WriteValidationError(w, r, violations)
		return
	}

	u, err := s.Store.Create(r.Context(), req.Username, req.Email, req.Password, RoleCustomer)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			kit.WriteError(w, r, http.StatusBadRequest, "Email already in use", nil)
			return
		}
		s.serverError(w, r, "create user failed", err)
		return
	}

	tok, err := s.JWT.New(u.ID, u.Email, u.Role, s.TokenTTL)
	if err != nil {
		s.serverError(w, r, "token issue", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, userResp{
		Message: "User registered successfully",
		User:    u.Public(),
		Token:   tok,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if violations := kit.ValidateStruct(req); violations != nil {
		kit.WriteValidationError(w, r, violations)
		return
	}

	u, err := s.Store.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	tok, err := s.JWT.New(u.ID, u.Email, u.Role, s.TokenTTL)
	if err != nil {
		s.serverError(w, r, "token issue", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, userResp{
		Message: "Login successful",
		User:    u.Public(),
		Token:   tok,
	})
}

// logout exists for API symmetry; bearer tokens simply expire.
func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	id, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	u, found, err := s.Store.Get(r.Context(), id.ID)
	if err != nil {
		s.serverError(w, r, "get user failed", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{"user": u.Public()})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
