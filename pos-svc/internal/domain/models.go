package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

var sizeLabels = map[Size]string{
	SizeSmall:  "Broto",
	SizeMedium: "Média",
	SizeLarge:  "Grande",
}

func (s Size) Valid() bool {
	_, ok := sizeLabels[s]
	return ok
}

func (s Size) Label() string {
	return sizeLabels[s]
}

// Option is a priced modifier: a crust or an add-on.
type Option struct {
	Name      string          `json:"name"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// Half describes the second flavor of a half-and-half pizza.
type Half struct {
	PizzaID     string `json:"pizza_id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

type Order struct {
	ID        string          `json:"id"`
	Table     string          `json:"table,omitempty"`
	Customer  string          `json:"customer,omitempty"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (o Order) Clone() Order {
	clone := o
	clone.Items = CloneItems(o.Items)
	return clone
}

// SumTotal adds up the line totals of items.
func SumTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total
}

func CloneItems(items []LineItem) []LineItem {
	clone := make([]LineItem, 0, len(items))
	for _, item := range items {
		clone = append(clone, item.Clone())
	}
	return clone
}
