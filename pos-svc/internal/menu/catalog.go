package menu

import (
	"slices"

	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type Pizza struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"name"`
	Ingredients string                          `json:"ingredients"`
	Prices      map[domain.Size]decimal.Decimal `json:"prices"`
}

// Price returns the price for size. ok is false for an unknown size.
func (p Pizza) Price(size domain.Size) (decimal.Decimal, bool) {
	price, ok := p.Prices[size]
	return price, ok
}

type Category struct {
	Name   string  `json:"name"`
	Pizzas []Pizza `json:"pizzas"`
}

// FixedItem is a menu entry sold at one price regardless of configuration.
type FixedItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	// Flavors lists the choices offered for this entry, if any.
	Flavors []string `json:"flavors,omitempty"`
	// PizzaFlavored entries take any pizza as their flavor.
	PizzaFlavored bool `json:"pizza_flavored,omitempty"`
}

type DrinkGroup struct {
	Name  string      `json:"name"`
	Items []FixedItem `json:"items"`
}

type CaipirinhaMenu struct {
	Price  decimal.Decimal `json:"price"`
	Bases  []string        `json:"bases"`
	Fruits []string        `json:"fruits"`
}

// Catalog is the immutable menu. Build it once with Default and share it.
type Catalog struct {
	Establishment string          `json:"establishment"`
	Categories    []Category      `json:"categories"`
	Crusts        []domain.Option `json:"crusts"`
	AddOns        []domain.Option `json:"add_ons"`
	Pancakes      []FixedItem     `json:"pancakes"`
	Drinks        []DrinkGroup    `json:"drinks"`
	Caipirinha    CaipirinhaMenu  `json:"caipirinha"`

	pizzas   map[string]Pizza
	crusts   map[string]domain.Option
	addOns   map[string]domain.Option
	pancakes map[string]FixedItem
	drinks   map[string]FixedItem
}

// New indexes c for lookups. Default builds the house menu with it.
func New(c Catalog) *Catalog {
	c.pizzas = make(map[string]Pizza)
	c.crusts = make(map[string]domain.Option)
	c.addOns = make(map[string]domain.Option)
	c.pancakes = make(map[string]FixedItem)
	c.drinks = make(map[string]FixedItem)

	for _, category := range c.Categories {
		for _, pizza := range category.Pizzas {
			c.pizzas[pizza.ID] = pizza
		}
	}
	for _, crust := range c.Crusts {
		c.crusts[crust.Name] = crust
	}
	for _, addOn := range c.AddOns {
		c.addOns[addOn.Name] = addOn
	}
	for _, pancake := range c.Pancakes {
		c.pancakes[pancake.ID] = pancake
	}
	for _, group := range c.Drinks {
		for _, drink := range group.Items {
			c.drinks[drink.ID] = drink
		}
	}
	return &c
}

func (c *Catalog) Pizza(id string) (Pizza, bool) {
	pizza, ok := c.pizzas[id]
	return pizza, ok
}

// Pizzas returns every pizza in menu order.
func (c *Catalog) Pizzas() []Pizza {
	var pizzas []Pizza
	for _, category := range c.Categories {
		pizzas = append(pizzas, category.Pizzas...)
	}
	return pizzas
}

func (c *Catalog) Crust(name string) (domain.Option, bool) {
	crust, ok := c.crusts[name]
	return crust, ok
}

// PlainCrust is the free default crust.
func (c *Catalog) PlainCrust() domain.Option {
	return c.Crusts[0]
}

func (c *Catalog) AddOn(name string) (domain.Option, bool) {
	addOn, ok := c.addOns[name]
	return addOn, ok
}

func (c *Catalog) Pancake(id string) (FixedItem, bool) {
	pancake, ok := c.pancakes[id]
	return pancake, ok
}

func (c *Catalog) Drink(id string) (FixedItem, bool) {
	drink, ok := c.drinks[id]
	return drink, ok
}

func (c *Catalog) HasCaipirinhaBase(base string) bool {
	return slices.Contains(c.Caipirinha.Bases, base)
}

func (c *Catalog) HasCaipirinhaFruit(fruit string) bool {
	return slices.Contains(c.Caipirinha.Fruits, fruit)
}
