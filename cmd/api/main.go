package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MonoStore/internal/app"
	"MonoStore/internal/auth"
	"MonoStore/internal/cart"
	"MonoStore/internal/catalog"
	"MonoStore/internal/config"
	"MonoStore/internal/order"
	"MonoStore/pkg/kit"
)

func main() {
	cfg := config.MustLoad()

	log := kit.NewLogger("api", cfg.Env)
	defer func() { _ = log.Sync() }()

	users := auth.NewMemStore()
	products := catalog.NewMemStore()
	carts := cart.NewStore(products)
	orders := order.NewMemStore()

	seedAdmin(cfg, users, log)

	h := app.NewHandler(app.Deps{
		Log:      log,
		Config:   cfg,
		Registry: prometheus.NewRegistry(),

		Users:   users,
		JWT:     auth.NewTokenMaker(cfg.JWT.Secret),
		Catalog: products,
		Carts:   carts,
		Orders:  orders,
	})

	if err := kit.RunHTTPServer(cfg.HTTPServer.Address, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func seedAdmin(cfg *config.Config, users auth.UserStore, log *zap.Logger) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return
	}

	_, err := users.Create(context.Background(), "admin", cfg.Admin.Email, cfg.Admin.Password, auth.RoleAdmin)
	if err != nil && !errors.Is(err, auth.ErrEmailExists) {
		log.Fatal("seed admin failed", zap.Error(err))
	}
	log.Info("admin account seeded", zap.String("email", cfg.Admin.Email))
}
