package service

import (
	"errors"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/pricing"

	"github.com/shopspring/decimal"
)

var ErrNegativePrice = errors.New("unit price cannot be negative")

// ItemUpdate lists the fields to change on a line item; nil means keep.
// Size, Crust, AddOns and SecondHalfID only apply to pizzas and trigger a
// full reprice. An empty Crust or SecondHalfID clears it.
type ItemUpdate struct {
	Size         *domain.Size     `json:"size,omitempty"`
	Crust        *string          `json:"crust,omitempty"`
	AddOns       *[]string        `json:"add_ons,omitempty"`
	SecondHalfID *string          `json:"second_half_id,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Quantity     *int             `json:"quantity,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
}

func (u ItemUpdate) touchesPizza() bool {
	return u.Size != nil || u.Crust != nil || u.AddOns != nil || u.SecondHalfID != nil
}

// applyItemUpdate returns the updated copy of item. removed reports that
// the update brought the quantity to zero or below.
func applyItemUpdate(item domain.LineItem, update ItemUpdate, pricer Pricer) (updated domain.LineItem, removed bool, err error) {
	if update.Quantity != nil && *update.Quantity <= 0 {
		return item, true, nil
	}
	if update.UnitPrice != nil && update.UnitPrice.IsNegative() {
		return item, false, ErrNegativePrice
	}

	updated = item.Clone()

	if update.touchesPizza() {
		cfg, ok := updated.Pizza()
		if !ok {
			return item, false, pricing.ErrNotCustomizable
		}
		if update.Size != nil {
			cfg.Size = *update.Size
		}
		if update.Crust != nil {
			cfg.Crust = nil
			if *update.Crust != "" {
				cfg.Crust = &domain.Option{Name: *update.Crust}
			}
		}
		if update.AddOns != nil {
			cfg.AddOns = nil
			for _, name := range *update.AddOns {
				cfg.AddOns = append(cfg.AddOns, domain.Option{Name: name})
			}
		}
		if update.SecondHalfID != nil {
			cfg.SecondHalf = nil
			if *update.SecondHalfID != "" {
				cfg.SecondHalf = &domain.Half{PizzaID: *update.SecondHalfID}
			}
		}

		priced, err := pricer.Price(cfg)
		if err != nil {
			return item, false, err
		}
		updated.Config = priced.Config
		updated.Name = priced.Name
		updated.UnitPrice = priced.UnitPrice
	}

	if update.UnitPrice != nil {
		updated.UnitPrice = *update.UnitPrice
	}
	if update.Notes != nil {
		updated.Notes = *update.Notes
	}
	if update.Quantity != nil {
		updated.Quantity = *update.Quantity
	}

	updated.Recalculate()
	return updated, false, nil
}

// normalizeItem prepares an incoming item for storage in a list holding
// existing: it gets a fresh id when it has none or its id is already taken
// there, a quantity of at least one and a consistent line total.
func normalizeItem(item domain.LineItem, existing []domain.LineItem) (domain.LineItem, error) {
	if item.Config == nil {
		return item, domain.ErrUnknownKind
	}
	if item.UnitPrice.IsNegative() {
		return item, ErrNegativePrice
	}

	normalized := item.Clone()
	if normalized.ID == "" || itemIndex(existing, normalized.ID) >= 0 {
		normalized.ID = domain.NewLineItemID(normalized.Kind())
	}
	if normalized.Quantity < 1 {
		normalized.Quantity = 1
	}
	normalized.Recalculate()
	return normalized, nil
}
