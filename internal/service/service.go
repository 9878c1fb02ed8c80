package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"pizzabot/internal/chat"
	"pizzabot/internal/config"
	"pizzabot/internal/database"
	"pizzabot/internal/generation"
	"pizzabot/internal/i18n"
	"pizzabot/internal/intent"
	"pizzabot/internal/menu"
	"pizzabot/internal/monitoring"
	"pizzabot/internal/orders"
)

// Service holds the wired ordering components shared by the HTTP server and
// the local terminal client.
type Service struct {
	DB      *gorm.DB
	Table   *i18n.Table
	Catalog *menu.Catalog
	Orders  *orders.Store
	Metrics *monitoring.Metrics
	Engine  *chat.Engine
}

// New opens the database, loads the menu and localization and builds the
// chat engine. Menu and localization problems come back as
// models.ConfigurationError.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Service, error) {
	table, err := i18n.Load(cfg.Localization.Path)
	if err != nil {
		return nil, err
	}

	db, err := database.OpenAndMigrate(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	catalog, err := menu.Load(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	client, err := generation.New(cfg.Generation)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize text generation: %w", err)
	}

	metrics := monitoring.NewMetrics()
	store := orders.NewStore(db, orders.WithStrictTransitions(cfg.Orders.StrictTransitions))
	resolver := intent.New(
		intent.WithNameBoost(cfg.Resolver.NameBoost),
		intent.WithPaymentKeywords(cfg.Resolver.PaymentKeywords...),
	)
	engine := chat.NewEngine(
		catalog,
		resolver,
		chat.NewResponseBuilder(table, catalog, cfg.Currency),
		store,
		monitoring.InstrumentGenerator(client, metrics),
		chat.WithPaymentMethods(cfg.Orders.PaymentMethods...),
	)

	log.WithFields(logrus.Fields{
		"menu_items": catalog.Len(),
		"provider":   client.Provider().Name(),
		"driver":     cfg.Database.Driver,
		"strict":     store.Strict(),
	}).Info("Service initialized")

	return &Service{
		DB:      db,
		Table:   table,
		Catalog: catalog,
		Orders:  store,
		Metrics: metrics,
		Engine:  engine,
	}, nil
}

// Close releases the database.
func (s *Service) Close() error {
	return s.DB.Close()
}
