package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated = "order_created"
	EventOrderDeleted = "order_deleted"
)

// OrderMessage is the order event published by pos-svc.
type OrderMessage struct {
	Type      string          `json:"type"`
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Items     []MessageItem   `json:"items,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type MessageItem struct {
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type ItemSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Revenue struct {
	Day    string          `json:"day"`
	Total  decimal.Decimal `json:"total"`
	Orders int             `json:"orders"`
}
