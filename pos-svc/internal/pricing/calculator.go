package pricing

import (
	"errors"
	"fmt"
	"slices"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/menu"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownPizza     = errors.New("unknown pizza")
	ErrUnknownSize      = errors.New("unknown pizza size")
	ErrUnknownCrust     = errors.New("unknown crust")
	ErrUnknownAddOn     = errors.New("unknown add-on")
	ErrDuplicateAddOn   = errors.New("add-on selected more than once")
	ErrUnknownItem      = errors.New("unknown menu item")
	ErrUnknownFlavor    = errors.New("unknown flavor")
	ErrNotCustomizable  = errors.New("item does not take size, crust, add-ons or a second half")
	ErrUnknownSelection = errors.New("unknown selection kind")
)

// Priced is a configuration resolved against the catalog.
type Priced struct {
	Config    domain.ItemConfig
	Name      string
	UnitPrice decimal.Decimal
}

// Calculator derives unit prices from the catalog. Crust and add-on
// surcharges are always looked up by name; surcharges carried by the
// incoming configuration are ignored.
type Calculator struct {
	catalog *menu.Catalog
}

func NewCalculator(catalog *menu.Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

func (c *Calculator) Catalog() *menu.Catalog {
	return c.catalog
}

func (c *Calculator) UnitPrice(cfg domain.ItemConfig) (decimal.Decimal, error) {
	priced, err := c.Price(cfg)
	if err != nil {
		return decimal.Zero, err
	}
	return priced.UnitPrice, nil
}

func (c *Calculator) DisplayName(cfg domain.ItemConfig) (string, error) {
	priced, err := c.Price(cfg)
	if err != nil {
		return "", err
	}
	return priced.Name, nil
}

func (c *Calculator) Price(cfg domain.ItemConfig) (Priced, error) {
	switch typed := cfg.(type) {
	case domain.PizzaConfig:
		return c.pricePizza(typed)
	case domain.PancakeConfig:
		return c.pricePancake(typed)
	case domain.DrinkConfig:
		return c.priceDrink(typed)
	case domain.CaipirinhaConfig:
		return c.priceCaipirinha(typed)
	default:
		return Priced{}, domain.ErrUnknownKind
	}
}

func (c *Calculator) pricePizza(cfg domain.PizzaConfig) (Priced, error) {
	first, ok := c.catalog.Pizza(cfg.PizzaID)
	if !ok {
		return Priced{}, fmt.Errorf("%w: %q", ErrUnknownPizza, cfg.PizzaID)
	}
	base, ok := first.Price(cfg.Size)
	if !ok {
		return Priced{}, fmt.Errorf("%w: %q", ErrUnknownSize, cfg.Size)
	}

	name := first.Name
	normalized := domain.PizzaConfig{PizzaID: first.ID, Size: cfg.Size}

	if cfg.SecondHalf != nil {
		if cfg.SecondHalf.PizzaID == first.ID {
			return Priced{}, fmt.Errorf("%w: second half repeats %q", ErrUnknownFlavor, first.ID)
		}
		second, ok := c.catalog.Pizza(cfg.SecondHalf.PizzaID)
		if !ok {
			return Priced{}, fmt.Errorf("%w: %q", ErrUnknownPizza, cfg.SecondHalf.PizzaID)
		}
		secondPrice, ok := second.Price(cfg.Size)
		if !ok {
			return Priced{}, fmt.Errorf("%w: %q for %q", ErrUnknownSize, cfg.Size, second.ID)
		}
		// The customer pays the more expensive half.
		base = decimal.Max(base, secondPrice)
		name = first.Name + " / " + second.Name
		normalized.SecondHalf = &domain.Half{
			PizzaID:     second.ID,
			Name:        second.Name,
			Ingredients: second.Ingredients,
		}
	}

	unit := base
	if cfg.Crust != nil {
		crust, ok := c.catalog.Crust(cfg.Crust.Name)
		if !ok {
			return Priced{}, fmt.Errorf("%w: %q", ErrUnknownCrust, cfg.Crust.Name)
		}
		if crust.Surcharge.IsPositive() {
			normalized.Crust = &crust
			unit = unit.Add(crust.Surcharge)
		}
	}

	seen := make(map[string]bool, len(cfg.AddOns))
	for _, selected := range cfg.AddOns {
		if seen[selected.Name] {
			return Priced{}, fmt.Errorf("%w: %q", ErrDuplicateAddOn, selected.Name)
		}
		seen[selected.Name] = true

		addOn, ok := c.catalog.AddOn(selected.Name)
		if !ok {
			return Priced{}, fmt.Errorf("%w: %q", ErrUnknownAddOn, selected.Name)
		}
		normalized.AddOns = append(normalized.AddOns, addOn)
		unit = unit.Add(addOn.Surcharge)
	}

	return Priced{Config: normalized, Name: name, UnitPrice: unit}, nil
}

func (c *Calculator) pricePancake(cfg domain.PancakeConfig) (Priced, error) {
	pancake, ok := c.catalog.Pancake(cfg.CatalogID)
	if !ok {
		return Priced{}, fmt.Errorf("%w: pancake %q", ErrUnknownItem, cfg.CatalogID)
	}
	name := pancake.Name
	if cfg.Flavor != "" {
		if !pancake.PizzaFlavored {
			return Priced{}, fmt.Errorf("%w: %q", ErrUnknownFlavor, cfg.Flavor)
		}
		flavor, ok := c.catalog.Pizza(cfg.Flavor)
		if !ok {
			return Priced{}, fmt.Errorf("%w: %q", ErrUnknownFlavor, cfg.Flavor)
		}
		name = "Panqueca sabor " + flavor.Name
	}
	return Priced{Config: cfg, Name: name, UnitPrice: pancake.Price}, nil
}

func (c *Calculator) priceDrink(cfg domain.DrinkConfig) (Priced, error) {
	drink, ok := c.catalog.Drink(cfg.CatalogID)
	if !ok {
		return Priced{}, fmt.Errorf("%w: drink %q", ErrUnknownItem, cfg.CatalogID)
	}
	name := drink.Name
	if cfg.Flavor != "" {
		if !slices.Contains(drink.Flavors, cfg.Flavor) {
			return Priced{}, fmt.Errorf("%w: %q", ErrUnknownFlavor, cfg.Flavor)
		}
		name = fmt.Sprintf("Del Valle %s (450ml)", cfg.Flavor)
	}
	return Priced{Config: cfg, Name: name, UnitPrice: drink.Price}, nil
}

func (c *Calculator) priceCaipirinha(cfg domain.CaipirinhaConfig) (Priced, error) {
	if !c.catalog.HasCaipirinhaBase(cfg.Base) {
		return Priced{}, fmt.Errorf("%w: caipirinha base %q", ErrUnknownItem, cfg.Base)
	}
	if !c.catalog.HasCaipirinhaFruit(cfg.Fruit) {
		return Priced{}, fmt.Errorf("%w: caipirinha fruit %q", ErrUnknownFlavor, cfg.Fruit)
	}
	name := fmt.Sprintf("Caipirinha de %s (%s)", cfg.Fruit, cfg.Base)
	return Priced{Config: cfg, Name: name, UnitPrice: c.catalog.Caipirinha.Price}, nil
}

// LineTotal is unit times quantity.
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// ToggleAddOn removes name when already selected and appends it otherwise.
func ToggleAddOn(selected []string, name string) []string {
	if i := slices.Index(selected, name); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), name)
}
