package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"pizzabot/internal/cart"
	"pizzabot/internal/generation"
	"pizzabot/internal/i18n"
	"pizzabot/internal/intent"
	"pizzabot/internal/logger"
	"pizzabot/internal/models"
	"pizzabot/internal/orders"
)

// Items shown when the text names a category but no specific item.
const (
	fallbackBurger = "Zinger Burger"
	fallbackPizza  = "Large Pizza"
)

// OrderStore is the part of the order store the chat engine uses.
type OrderStore interface {
	Create(ctx context.Context, o orders.NewOrder) (uint, error)
	FindByID(ctx context.Context, id uint) (models.Order, error)
	FindByNameFuzzy(ctx context.Context, query string) ([]models.Order, error)
}

// Image is the picture attached to a reply.
type Image struct {
	Ref     string `json:"ref"`
	Caption string `json:"caption"`
}

// Reply is the engine's answer to one user action.
type Reply struct {
	Text   string        `json:"text"`
	Intent intent.Intent `json:"intent,omitempty"`
	Image  *Image        `json:"image,omitempty"`
}

// CheckoutForm is what the customer fills in to place an order.
type CheckoutForm struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// Receipt confirms a placed order.
type Receipt struct {
	OrderID       uint              `json:"order_id"`
	Customer      string            `json:"customer"`
	Address       string            `json:"address"`
	PaymentMethod string            `json:"payment_method"`
	Items         models.OrderItems `json:"items"`
	Total         int64             `json:"total"`
	Message       string            `json:"message"`
	Text          string            `json:"text"`
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithPaymentMethods sets the accepted payment methods; the first is the default.
func WithPaymentMethods(methods ...string) EngineOption {
	return func(e *Engine) {
		var accepted []string
		for _, m := range methods {
			if m = strings.TrimSpace(m); m != "" {
				accepted = append(accepted, m)
			}
		}
		if len(accepted) > 0 {
			e.paymentMethods = accepted
		}
	}
}

// Engine runs the conversation: it resolves messages, builds replies, keeps
// the session cart and places orders.
type Engine struct {
	menu           Menu
	resolver       *intent.Resolver
	builder        *ResponseBuilder
	orders         OrderStore
	generator      generation.Generator
	paymentMethods []string
}

// NewEngine wires the chat collaborators together.
func NewEngine(m Menu, resolver *intent.Resolver, builder *ResponseBuilder, store OrderStore, generator generation.Generator, opts ...EngineOption) *Engine {
	e := &Engine{
		menu:           m,
		resolver:       resolver,
		builder:        builder,
		orders:         store,
		generator:      generator,
		paymentMethods: []string{"Cash on Delivery"},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PaymentMethods returns the accepted payment methods.
func (e *Engine) PaymentMethods() []string {
	return append([]string(nil), e.paymentMethods...)
}

// Welcome greets a new session and logs the greeting.
func (e *Engine) Welcome(s *Session) (Reply, error) {
	text, err := e.builder.Table().Get(i18n.KeyWelcome, s.Language)
	if err != nil {
		return Reply{}, err
	}
	s.record(RoleAssistant, text)
	return Reply{Text: text}, nil
}

// Handle answers one chat message.
func (e *Engine) Handle(ctx context.Context, s *Session, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, models.NewValidationError("text", "message is empty")
	}
	s.record(RoleUser, text)

	res := e.resolver.Resolve(text, e.menu)
	e.updateCurrentItem(s, res, strings.ToLower(text))

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"session": s.ID,
		"intent":  res.Intent,
	})

	var (
		reply string
		err   error
	)
	switch res.Intent {
	case intent.Track:
		var found []models.Order
		if NeedsLookup(res.TrackQuery) {
			found, err = e.lookupOrders(ctx, res.TrackQuery)
			if err != nil {
				return Reply{}, err
			}
		}
		reply, err = e.builder.Build(res, s.Language, found)
	case intent.General:
		reply, err = e.generalReply(ctx, s.Language, text)
	default:
		reply, err = e.builder.Build(res, s.Language, nil)
	}
	if err != nil {
		return Reply{}, err
	}

	log.Debug("Message handled")
	s.record(RoleAssistant, reply)

	out := Reply{Text: reply, Intent: res.Intent}
	out.Image, err = e.image(s)
	if err != nil {
		return Reply{}, err
	}
	return out, nil
}

// updateCurrentItem keeps the displayed item: a matched item wins, otherwise
// a bare category word shows that category's signature item.
func (e *Engine) updateCurrentItem(s *Session, res intent.Resolution, lower string) {
	if res.Item != nil {
		item := *res.Item
		s.CurrentItem = &item
		return
	}
	var name string
	switch {
	case strings.Contains(lower, "burger"):
		name = fallbackBurger
	case strings.Contains(lower, "pizza"):
		name = fallbackPizza
	default:
		return
	}
	if item, ok := e.menu.LookupByName(name); ok {
		s.CurrentItem = &item
	}
}

func (e *Engine) lookupOrders(ctx context.Context, query string) ([]models.Order, error) {
	if id, ok := ParseOrderID(query); ok {
		order, err := e.orders.FindByID(ctx, id)
		switch {
		case err == nil:
			return []models.Order{order}, nil
		case !errors.Is(err, models.ErrNotFound):
			return nil, fmt.Errorf("failed to look up order %d: %w", id, err)
		}
		// short numbers only ever name an order id
		if len([]rune(strings.TrimSpace(query))) < minTrackQuery {
			return nil, nil
		}
	}
	found, err := e.orders.FindByNameFuzzy(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	return found, nil
}

func (e *Engine) generalReply(ctx context.Context, language, text string) (string, error) {
	if e.generator == nil {
		return e.builder.General(language, generation.Result{Outcome: generation.OutcomeFailure, Err: generation.ErrDisabled})
	}
	prompt, err := e.builder.WaiterPrompt(language, text)
	if err != nil {
		return "", err
	}
	return e.builder.General(language, e.generator.Generate(ctx, prompt, language))
}

func (e *Engine) image(s *Session) (*Image, error) {
	if s.CurrentItem == nil {
		return nil, nil
	}
	caption, err := e.builder.ImageCaption(*s.CurrentItem, s.Language)
	if err != nil {
		return nil, err
	}
	return &Image{Ref: s.CurrentItem.ImagePath, Caption: caption}, nil
}

// AddCurrentItem puts the displayed item into the cart.
func (e *Engine) AddCurrentItem(s *Session) (Reply, error) {
	if s.CurrentItem == nil {
		text, err := e.builder.Table().Get(i18n.KeyNothingToAdd, s.Language)
		if err != nil {
			return Reply{}, err
		}
		return Reply{}, models.NewValidationError("item", text)
	}
	return e.addToCart(s, *s.CurrentItem)
}

// AddItem puts the named menu item into the cart and makes it current.
func (e *Engine) AddItem(s *Session, name string) (Reply, error) {
	item, ok := e.menu.LookupByName(name)
	if !ok {
		return Reply{}, models.NewValidationError("name", fmt.Sprintf("unknown menu item %q", name))
	}
	s.CurrentItem = &item
	return e.addToCart(s, item)
}

func (e *Engine) addToCart(s *Session, item models.MenuItem) (Reply, error) {
	s.Cart.Add(cart.FromMenuItem(item))
	text, err := e.builder.Table().Format(i18n.KeyItemAdded, s.Language, "name", item.Name)
	if err != nil {
		return Reply{}, err
	}
	img, err := e.image(s)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Image: img}, nil
}

// ClearCart empties the session cart.
func (e *Engine) ClearCart(s *Session) (Reply, error) {
	s.Cart.Clear()
	text, err := e.builder.Table().Get(i18n.KeyCartCleared, s.Language)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text}, nil
}

// Checkout places the cart as an order. Name and address are required and
// the payment method must be one of the accepted ones; an empty payment
// method picks the default. The cart is cleared only when the order is stored.
func (e *Engine) Checkout(ctx context.Context, s *Session, form CheckoutForm) (Receipt, error) {
	table := e.builder.Table()

	if s.Cart.IsEmpty() {
		text, err := table.Get(i18n.KeyCartEmpty, s.Language)
		if err != nil {
			return Receipt{}, err
		}
		return Receipt{}, models.NewValidationError("cart", text)
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Address = strings.TrimSpace(form.Address)
	if form.Name == "" || form.Address == "" {
		text, err := table.Get(i18n.KeyMissingFields, s.Language)
		if err != nil {
			return Receipt{}, err
		}
		field := "name"
		if form.Name != "" {
			field = "address"
		}
		return Receipt{}, models.NewValidationError(field, text)
	}

	method, ok := e.paymentMethod(form.PaymentMethod)
	if !ok {
		return Receipt{}, models.NewValidationError("payment_method", fmt.Sprintf("unsupported payment method %q", form.PaymentMethod))
	}

	items := s.Cart.OrderItems()
	total := s.Cart.Total()
	id, err := e.orders.Create(ctx, orders.NewOrder{
		CustomerName:  form.Name,
		Address:       form.Address,
		Items:         items,
		Total:         total,
		PaymentMethod: method,
	})
	if err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		OrderID:       id,
		Customer:      form.Name,
		Address:       form.Address,
		PaymentMethod: method,
		Items:         items,
		Total:         total,
	}
	receipt.Message, err = table.Format(i18n.KeyOrderPlaced, s.Language, "id", fmt.Sprint(id))
	if err != nil {
		return Receipt{}, err
	}
	receipt.Text, err = e.renderReceipt(receipt, s.Language)
	if err != nil {
		return Receipt{}, err
	}

	s.Cart.Clear()
	s.record(RoleAssistant, receipt.Message)
	return receipt, nil
}

func (e *Engine) paymentMethod(requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return e.paymentMethods[0], true
	}
	for _, m := range e.paymentMethods {
		if strings.EqualFold(m, requested) {
			return m, true
		}
	}
	return "", false
}

const receiptRule = "--------------------------------"

func (e *Engine) renderReceipt(r Receipt, language string) (string, error) {
	table := e.builder.Table()
	header, err := table.Get(i18n.KeyReceiptHeader, language)
	if err != nil {
		return "", err
	}
	footer, err := table.Get(i18n.KeyReceiptFooter, language)
	if err != nil {
		return "", err
	}
	currency := e.builder.Currency()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s #%d\n%s\n", header, r.OrderID, receiptRule)
	fmt.Fprintf(&sb, "Customer: %s\nAddress: %s\nPayment: %s\n%s\n", r.Customer, r.Address, r.PaymentMethod, receiptRule)
	sb.WriteString("Items:\n")
	for _, item := range r.Items {
		fmt.Fprintf(&sb, "- %s: %d %s\n", item.Name, item.Price, currency)
	}
	fmt.Fprintf(&sb, "%s\nTOTAL AMOUNT: %d %s\n%s\n%s", receiptRule, r.Total, currency, receiptRule, footer)
	return sb.String(), nil
}
