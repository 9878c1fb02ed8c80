package main

import (
	"context"

	"pizzabot/internal/chat"
	"pizzabot/internal/models"
	"pizzabot/internal/service"
)

// Backend is what the terminal views drive: the HTTP API or an in-process
// service.
type Backend interface {
	Send(ctx context.Context, message string) (chat.Reply, error)
	AddItem(ctx context.Context, name string) (chat.Reply, error)
	ClearCart(ctx context.Context) (chat.Reply, error)
	Checkout(ctx context.Context, form chat.CheckoutForm) (*chat.Receipt, error)
	GetOrders(ctx context.Context, name string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
}

// localBackend runs one session against an in-process service.
type localBackend struct {
	svc  *service.Service
	sess *chat.Session
}

func newLocalBackend(svc *service.Service, language string) *localBackend {
	return &localBackend{svc: svc, sess: chat.NewSession("local", language)}
}

func (b *localBackend) Welcome() (chat.Reply, error) {
	return b.svc.Engine.Welcome(b.sess)
}

func (b *localBackend) Send(ctx context.Context, message string) (chat.Reply, error) {
	return b.svc.Engine.Handle(ctx, b.sess, message)
}

func (b *localBackend) AddItem(ctx context.Context, name string) (chat.Reply, error) {
	if name == "" {
		return b.svc.Engine.AddCurrentItem(b.sess)
	}
	return b.svc.Engine.AddItem(b.sess, name)
}

func (b *localBackend) ClearCart(ctx context.Context) (chat.Reply, error) {
	return b.svc.Engine.ClearCart(b.sess)
}

func (b *localBackend) Checkout(ctx context.Context, form chat.CheckoutForm) (*chat.Receipt, error) {
	receipt, err := b.svc.Engine.Checkout(ctx, b.sess, form)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (b *localBackend) GetOrders(ctx context.Context, name string) ([]models.Order, error) {
	if name == "" {
		return b.svc.Orders.ListAll(ctx)
	}
	return b.svc.Orders.FindByNameFuzzy(ctx, name)
}

func (b *localBackend) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if err := b.svc.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order, err := b.svc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
