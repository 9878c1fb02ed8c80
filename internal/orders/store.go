package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/gorm"

	"pizzabot/internal/logger"
	"pizzabot/internal/models"
)

// NewOrder carries the fields a customer supplies at checkout.
type NewOrder struct {
	CustomerName  string
	Address       string
	Items         models.OrderItems
	Total         int64
	PaymentMethod string
}

// Store persists orders. Orders are never deleted; only their status changes.
type Store struct {
	db     *gorm.DB
	strict bool
	now    func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithStrictTransitions enforces the Pending → Cooking → Delivered lifecycle
// (with Cancelled reachable from both non-terminal states). Without it any
// status may be set from any other.
func WithStrictTransitions(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an order store over db. Transitions are strict by default.
func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, strict: true, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strict reports whether status transitions are validated.
func (s *Store) Strict() bool {
	return s.strict
}

// Validate checks a new order without persisting it.
func Validate(o NewOrder) error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return models.NewValidationError("customer_name", "is required")
	}
	if sum := o.Items.Total(); sum != o.Total {
		return models.NewValidationError("total", fmt.Sprintf("must equal the sum of item prices (%d), got %d", sum, o.Total))
	}
	return nil
}

// Create persists a new Pending order and returns its id.
func (s *Store) Create(ctx context.Context, o NewOrder) (uint, error) {
	if err := Validate(o); err != nil {
		return 0, err
	}

	items := make(models.OrderItems, len(o.Items))
	copy(items, o.Items)

	order := models.Order{
		CustomerName:  strings.TrimSpace(o.CustomerName),
		Address:       strings.TrimSpace(o.Address),
		Items:         items,
		TotalAmount:   o.Total,
		Status:        models.OrderStatusPending,
		PaymentMethod: o.PaymentMethod,
		Timestamp:     s.now().UTC(),
	}
	if err := s.db.Create(&order).Error; err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"order_id": order.ID,
		"total":    order.TotalAmount,
		"items":    len(order.Items),
	}).Info("Order created")
	return order.ID, nil
}

// ListAll returns every order, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.newestFirst().Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByID returns the order with id, or models.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := s.db.Where("id = ?", id).First(&order).Error
	if gorm.IsRecordNotFoundError(err) {
		return models.Order{}, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return order, nil
}

// FindByNameFuzzy returns orders whose customer name contains query, ignoring
// case, newest first. An empty query matches every order; no match is an
// empty slice, not an error.
//
// Names are folded in Go: SQLite's LOWER only folds ASCII, so a LIKE would
// miss "ÄLI" for "äli".
func (s *Store) FindByNameFuzzy(ctx context.Context, query string) ([]models.Order, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}

	needle := strings.ToLower(query)
	orders := make([]models.Order, 0, len(all))
	for _, order := range all {
		if strings.Contains(strings.ToLower(order.CustomerName), needle) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// UpdateStatus sets the status of order id in one statement. A missing id
// returns models.ErrNotFound; in strict mode a move the lifecycle does not
// allow returns models.ErrInvalidTransition.
func (s *Store) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	if _, ok := models.ParseOrderStatus(string(status)); !ok {
		return models.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	query := s.db.Model(&models.Order{}).Where("id = ?", id)
	if s.strict {
		from := status.Predecessors()
		if len(from) == 0 {
			// nothing may move into this status; only report whether the order exists
			current, err := s.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if current.Status == status {
				return nil
			}
			return fmt.Errorf("order %d from %s to %s: %w", id, current.Status, status, models.ErrInvalidTransition)
		}
		query = query.Where("status IN (?)", statusStrings(from))
	}

	result := query.Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := s.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == status {
			// setting the current status again is a no-op
			return nil
		}
		return fmt.Errorf("order %d from %s to %s: %w", id, current.Status, status, models.ErrInvalidTransition)
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"order_id": id,
		"status":   status,
	}).Info("Order status updated")
	return nil
}

func (s *Store) newestFirst() *gorm.DB {
	return s.db.Order(`"timestamp" desc`).Order("id desc")
}

func statusStrings(statuses []models.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}
