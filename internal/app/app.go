package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MonoStore/internal/auth"
	"MonoStore/internal/cart"
	"MonoStore/internal/catalog"
	"MonoStore/internal/config"
	"MonoStore/internal/order"
	"MonoStore/pkg/kit"
)

const (
	loginLimitPerMin    = 5
	registerLimitPerMin = 3
	limitWindowSeconds  = 60
)

type Deps struct {
	Log      *zap.Logger
	Config   *config.Config
	Registry *prometheus.Registry

	Users   auth.UserStore
	JWT     *auth.TokenMaker
	Catalog catalog.Store
	Carts   *cart.Store
	Orders  order.Store
}

// NewHandler assembles the public API router.
func NewHandler(d Deps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, d)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "Not Found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
	})

	r.Get("/", index)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(d))

	if d.Config.Metrics.Enabled && d.Registry != nil {
		r.With(kit.MetricsAuth(d.Config.Metrics.Token)).Handle(
			"/metrics",
			promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}),
		)
	}

	setupRoutes(r, d)
	return r
}

func setupMiddleware(r *chi.Mux, d Deps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(d.Log))

	if d.Registry != nil {
		metrics := kit.NewMetrics(d.Registry)
		r.Use(metrics.Middleware("api", kit.ChiRoutePatternOrPath))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
}

func setupRoutes(r *chi.Mux, d Deps) {
	users := &auth.Server{Log: d.Log, Store: d.Users, JWT: d.JWT, TokenTTL: d.Config.JWT.TokenTTL}
	products := &catalog.Server{Store: d.Catalog, Log: d.Log}
	carts := &cart.Server{Store: d.Carts, Log: d.Log}
	orders := &order.Server{Orders: d.Orders, Carts: d.Carts, Log: d.Log}

	requireAuth := auth.RequireAuth(d.JWT)

	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindowSeconds)
	registerLimiter := kit.NewIPRateLimiter(registerLimitPerMin, limitWindowSeconds)

	r.Route("/api/users", func(ur chi.Router) {
		ur.With(registerLimiter.Middleware).Post("/register", users.RegisterHandler())
		ur.With(loginLimiter.Middleware).Post("/login", users.LoginHandler())
		ur.Post("/logout", users.LogoutHandler())
		ur.With(requireAuth).Get("/profile", users.ProfileHandler())
	})

	r.Route("/api/products", func(pr chi.Router) {
		pr.Get("/", products.ListHandler())
		pr.Get("/{id}", products.GetHandler())

		pr.Group(func(ar chi.Router) {
			ar.Use(requireAuth)
			ar.Use(auth.RequireAdmin)
			ar.Post("/", products.CreateHandler())
			ar.Put("/{id}", products.UpdateHandler())
			ar.Delete("/{id}", products.DeleteHandler())
		})
	})

	r.Route("/api/cart", func(cr chi.Router) {
		cr.Use(requireAuth)
		cr.Get("/", carts.GetHandler())
		cr.Post("/items", carts.AddItemHandler())
		cr.Put("/items/{productId}", carts.UpdateItemHandler())
		cr.Delete("/items/{productId}", carts.RemoveItemHandler())
		cr.Delete("/", carts.ClearHandler())
	})

	r.Route("/api/orders", func(or chi.Router) {
		or.Use(requireAuth)
		or.Post("/", orders.CreateHandler())
		or.Get("/", orders.ListHandler())
		or.Get("/{id}", orders.GetHandler())
	})
}

func index(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "E-commerce API is running",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"products": "/api/products",
			"users":    "/api/users",
			"cart":     "/api/cart",
			"orders":   "/api/orders",
		},
	})
}

func readyz(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := d.Catalog.Ping(ctx); err != nil {
			if d.Log != nil {
				d.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
