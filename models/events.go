package models

import "time"

// OrderEvent is the payload published to the order events topic.
type OrderEvent struct {
	Event     string      `json:"event"` // e.g. "order.created"
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// InteractionResult is the advisory output of the drug-interaction
// checker. It never gates checkout.
type InteractionResult struct {
	HasInteraction bool     `json:"hasInteraction"`
	Warnings       []string `json:"warnings"`
	Recommendation string   `json:"recommendation"`
}
