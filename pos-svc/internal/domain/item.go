package domain

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownKind = errors.New("unknown item kind")

type Kind string

const (
	KindPizza      Kind = "pizza"
	KindPancake    Kind = "pancake"
	KindDrink      Kind = "drink"
	KindCaipirinha Kind = "caipirinha"
)

// ItemConfig is the per-kind configuration of a line item. Only the pizza
// variant carries size, crust and add-ons.
type ItemConfig interface {
	Kind() Kind
	cloneConfig() ItemConfig
}

type PizzaConfig struct {
	PizzaID    string   `json:"pizza_id"`
	Size       Size     `json:"size"`
	Crust      *Option  `json:"crust,omitempty"`
	AddOns     []Option `json:"add_ons,omitempty"`
	SecondHalf *Half    `json:"second_half,omitempty"`
}

func (PizzaConfig) Kind() Kind { return KindPizza }

func (c PizzaConfig) HalfAndHalf() bool { return c.SecondHalf != nil }

func (c PizzaConfig) cloneConfig() ItemConfig {
	clone := c
	if c.Crust != nil {
		crust := *c.Crust
		clone.Crust = &crust
	}
	if c.AddOns != nil {
		clone.AddOns = append([]Option(nil), c.AddOns...)
	}
	if c.SecondHalf != nil {
		half := *c.SecondHalf
		clone.SecondHalf = &half
	}
	return clone
}

// PancakeConfig references a fixed-price pancake. Flavor is only used by
// the pizza-flavored pancake.
type PancakeConfig struct {
	CatalogID string `json:"catalog_id"`
	Flavor    string `json:"flavor,omitempty"`
}

func (PancakeConfig) Kind() Kind { return KindPancake }
func (c PancakeConfig) cloneConfig() ItemConfig { return c }

type DrinkConfig struct {
	CatalogID string `json:"catalog_id"`
	Flavor    string `json:"flavor,omitempty"`
}

func (DrinkConfig) Kind() Kind { return KindDrink }
func (c DrinkConfig) cloneConfig() ItemConfig { return c }

type CaipirinhaConfig struct {
	Base  string `json:"base"`
	Fruit string `json:"fruit"`
}

func (CaipirinhaConfig) Kind() Kind { return KindCaipirinha }
func (c CaipirinhaConfig) cloneConfig() ItemConfig { return c }

// LineItem is one priced entry of a cart or an order. LineTotal always
// equals UnitPrice times Quantity once the item is held by a store.
type LineItem struct {
	ID        string
	Name      string
	Notes     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Config    ItemConfig
}

func NewLineItemID(kind Kind) string {
	return string(kind) + "-" + uuid.NewString()
}

func (i LineItem) Kind() Kind {
	if i.Config == nil {
		return ""
	}
	return i.Config.Kind()
}

// Pizza returns the pizza configuration when the item is a pizza.
func (i LineItem) Pizza() (PizzaConfig, bool) {
	cfg, ok := i.Config.(PizzaConfig)
	return cfg, ok
}

func (i LineItem) Clone() LineItem {
	clone := i
	if i.Config != nil {
		clone.Config = i.Config.cloneConfig()
	}
	return clone
}

// Recalculate restores the line total invariant.
func (i *LineItem) Recalculate() {
	i.LineTotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type lineItemJSON struct {
	ID         string            `json:"id"`
	Kind       Kind              `json:"kind"`
	Name       string            `json:"name"`
	Notes      string            `json:"notes,omitempty"`
	Quantity   int               `json:"quantity"`
	UnitPrice  decimal.Decimal   `json:"unit_price"`
	LineTotal  decimal.Decimal   `json:"line_total"`
	Pizza      *PizzaConfig      `json:"pizza,omitempty"`
	Pancake    *PancakeConfig    `json:"pancake,omitempty"`
	Drink      *DrinkConfig      `json:"drink,omitempty"`
	Caipirinha *CaipirinhaConfig `json:"caipirinha,omitempty"`
}

func (i LineItem) MarshalJSON() ([]byte, error) {
	wire := lineItemJSON{
		ID:        i.ID,
		Kind:      i.Kind(),
		Name:      i.Name,
		Notes:     i.Notes,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		LineTotal: i.LineTotal,
	}
	switch cfg := i.Config.(type) {
	case PizzaConfig:
		wire.Pizza = &cfg
	case PancakeConfig:
		wire.Pancake = &cfg
	case DrinkConfig:
		wire.Drink = &cfg
	case CaipirinhaConfig:
		wire.Caipirinha = &cfg
	default:
		return nil, ErrUnknownKind
	}
	return json.Marshal(wire)
}

func (i *LineItem) UnmarshalJSON(data []byte) error {
	var wire lineItemJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var cfg ItemConfig
	switch {
	case wire.Kind == KindPizza && wire.Pizza != nil:
		cfg = *wire.Pizza
	case wire.Kind == KindPancake && wire.Pancake != nil:
		cfg = *wire.Pancake
	case wire.Kind == KindDrink && wire.Drink != nil:
		cfg = *wire.Drink
	case wire.Kind == KindCaipirinha && wire.Caipirinha != nil:
		cfg = *wire.Caipirinha
	default:
		return ErrUnknownKind
	}

	*i = LineItem{
		ID:        wire.ID,
		Name:      wire.Name,
		Notes:     wire.Notes,
		Quantity:  wire.Quantity,
		UnitPrice: wire.UnitPrice,
		LineTotal: wire.LineTotal,
		Config:    cfg,
	}
	return nil
}
