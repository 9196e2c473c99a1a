package model

import "fmt"

// OrderStatus describes the order lifecycle as reported by the order service.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusWaitingPickup OrderStatus = "waitingPickup"
	OrderStatusCompleted     OrderStatus = "completed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusWaitingPickup,
	OrderStatusCompleted,
}

// PublicStatuses lists the statuses shown on the customer-facing board.
var PublicStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusWaitingPickup,
}

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:       "準備中",
	OrderStatusWaitingPickup: "呼出中",
	OrderStatusCompleted:     "受渡完了",
}

// Label returns the display label used on the boards.
func (s OrderStatus) Label() string {
	return statusLabels[s]
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Next returns the status that follows s, if any.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusWaitingPickup, true
	case OrderStatusWaitingPickup:
		return OrderStatusCompleted, true
	default:
		return "", false
	}
}

// ParseOrderStatus converts raw input into a known status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// CanTransition reports whether an order may move from one status to another.
// Orders only advance one step at a time and never move backwards.
func CanTransition(from, to OrderStatus) bool {
	next, ok := from.Next()
	return ok && next == to
}

// Order describes a single customer order tracked by the order service.
type Order struct {
	ID          string
	MenuItemID  string
	MenuName    string
	OrderNumber int
	Status      OrderStatus
}
