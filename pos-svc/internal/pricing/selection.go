package pricing

import (
	"fmt"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/menu"
)

// Selection is what a menu card submits: a flat description of one item
// before it is priced.
type Selection struct {
	Kind         domain.Kind `json:"kind"`
	PizzaID      string      `json:"pizza_id,omitempty"`
	SecondHalfID string      `json:"second_half_id,omitempty"`
	Size         domain.Size `json:"size,omitempty"`
	Crust        string      `json:"crust,omitempty"`
	AddOns       []string    `json:"add_ons,omitempty"`
	CatalogID    string      `json:"catalog_id,omitempty"`
	Flavor       string      `json:"flavor,omitempty"`
	Base         string      `json:"base,omitempty"`
	Fruit        string      `json:"fruit,omitempty"`
	Quantity     int         `json:"quantity"`
	Notes        string      `json:"notes,omitempty"`
}

func (s Selection) Config() (domain.ItemConfig, error) {
	if s.Kind != domain.KindPizza && (s.Size != "" || s.Crust != "" || len(s.AddOns) > 0 || s.SecondHalfID != "") {
		return nil, ErrNotCustomizable
	}

	switch s.Kind {
	case domain.KindPizza:
		cfg := domain.PizzaConfig{PizzaID: s.PizzaID, Size: s.Size}
		if s.Crust != "" {
			cfg.Crust = &domain.Option{Name: s.Crust}
		}
		for _, name := range s.AddOns {
			cfg.AddOns = append(cfg.AddOns, domain.Option{Name: name})
		}
		if s.SecondHalfID != "" {
			cfg.SecondHalf = &domain.Half{PizzaID: s.SecondHalfID}
		}
		return cfg, nil
	case domain.KindPancake:
		return domain.PancakeConfig{CatalogID: s.CatalogID, Flavor: s.Flavor}, nil
	case domain.KindDrink:
		return domain.DrinkConfig{CatalogID: s.CatalogID, Flavor: s.Flavor}, nil
	case domain.KindCaipirinha:
		return domain.CaipirinhaConfig{Base: s.Base, Fruit: s.Fruit}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelection, s.Kind)
	}
}

// Quote prices a selection without assigning an id.
func (c *Calculator) Quote(sel Selection) (domain.LineItem, error) {
	cfg, err := sel.Config()
	if err != nil {
		return domain.LineItem{}, err
	}
	priced, err := c.Price(cfg)
	if err != nil {
		return domain.LineItem{}, err
	}

	quantity := sel.Quantity
	if quantity < 1 {
		quantity = 1
	}

	notes := sel.Notes
	if pancake, ok := priced.Config.(domain.PancakeConfig); ok && pancake.CatalogID == menu.GeneralPancakeID && pancake.Flavor != "" {
		flavor, _ := c.catalog.Pizza(pancake.Flavor)
		if notes == "" {
			notes = flavor.Ingredients
		} else {
			notes = flavor.Ingredients + " | " + notes
		}
	}

	item := domain.LineItem{
		Name:      priced.Name,
		Notes:     notes,
		Quantity:  quantity,
		UnitPrice: priced.UnitPrice,
		Config:    priced.Config,
	}
	item.Recalculate()
	return item, nil
}

// Build prices a selection into a new line item with a fresh id.
func (c *Calculator) Build(sel Selection) (domain.LineItem, error) {
	item, err := c.Quote(sel)
	if err != nil {
		return domain.LineItem{}, err
	}
	item.ID = domain.NewLineItemID(item.Kind())
	return item, nil
}
