package models

import (
	"strings"
	"time"
)

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCooking   OrderStatus = "Cooking"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCooking,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// transitions holds the statuses reachable from each non-terminal status.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusCooking, OrderStatusCancelled},
	OrderStatusCooking: {OrderStatusDelivered, OrderStatusCancelled},
}

// ParseOrderStatus matches s case-insensitively against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, status := range OrderStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Predecessors returns the statuses that may move to s.
func (s OrderStatus) Predecessors() []OrderStatus {
	var from []OrderStatus
	for _, status := range OrderStatuses {
		if status.CanTransitionTo(s) {
			from = append(from, status)
		}
	}
	return from
}

// Order represents a customer order
type Order struct {
	ID            uint        `gorm:"primary_key" json:"id"`
	CustomerName  string      `gorm:"column:customer_name;not null" json:"customer_name"`
	Address       string      `gorm:"column:address" json:"address"`
	Items         OrderItems  `gorm:"column:items;type:text;not null" json:"items"`
	TotalAmount   int64       `gorm:"column:total_amount;not null" json:"total_amount"`
	Status        OrderStatus `gorm:"column:status;default:'Pending'" json:"status"`
	PaymentMethod string      `gorm:"column:payment_method" json:"payment_method"`
	Timestamp     time.Time   `gorm:"column:timestamp" json:"timestamp"`
}

// TableName sets the table name for Order
func (Order) TableName() string {
	return "orders"
}
