package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"pizzabot/internal/api"
	"pizzabot/internal/config"
	"pizzabot/internal/service"
	"pizzabot/internal/session"
)

// app is the wired service behind its HTTP server.
type app struct {
	svc    *service.Service
	server *api.Server
}

func newApp(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*app, error) {
	svc, err := service.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{
		svc: svc,
		server: api.NewServer(api.Options{
			Engine:   svc.Engine,
			Sessions: session.NewRegistry(cfg.Session.Secret, cfg.Session.TTL),
			Orders:   svc.Orders,
			Menu:     svc.Catalog,
			Metrics:  svc.Metrics,
			Logger:   log,
			Currency: cfg.Currency,
		}),
	}, nil
}

// Close releases the database.
func (a *app) Close() error {
	return a.svc.Close()
}
