package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderUpdated       = "order_updated"
	EventOrderDeleted       = "order_deleted"
)

// OrderEvent is the journal record emitted after an order mutation.
type OrderEvent struct {
	Type      string          `json:"type"`
	OrderID   string          `json:"order_id"`
	Status    Status          `json:"status,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Items     []EventItem     `json:"items,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type EventItem struct {
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func NewOrderEvent(eventType string, order Order, at time.Time) OrderEvent {
	event := OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.Total,
		Timestamp: at,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, EventItem{
			Name:      item.Name,
			Kind:      item.Kind(),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return event
}
