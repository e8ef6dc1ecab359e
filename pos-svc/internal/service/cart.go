package service

import (
	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Cart is the order being assembled. It is not safe for concurrent use;
// callers serialize access the way a single UI event loop would.
type Cart struct {
	items    []domain.LineItem
	table    string
	customer string

	pricer    Pricer
	persister CartPersister
	log       logrus.FieldLogger
}

func NewCart(pricer Pricer, persister CartPersister, log logrus.FieldLogger) *Cart {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cart{pricer: pricer, persister: persister, log: log}
}

// AddItem appends item as a new line. Identical configurations are not
// merged.
func (c *Cart) AddItem(item domain.LineItem) (domain.LineItem, error) {
	normalized, err := normalizeItem(item, c.items)
	if err != nil {
		return domain.LineItem{}, err
	}
	c.items = append(c.items, normalized)
	c.persist()
	return normalized.Clone(), nil
}

func (c *Cart) RemoveItem(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.persist()
	return true
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(id string, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(id)
	}
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items[i].Quantity = quantity
	c.items[i].Recalculate()
	c.persist()
	return true
}

func (c *Cart) UpdateItem(id string, update ItemUpdate) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}

	updated, removed, err := applyItemUpdate(c.items[i], update, c.pricer)
	if err != nil {
		return true, err
	}
	if removed {
		return c.RemoveItem(id), nil
	}
	c.items[i] = updated
	c.persist()
	return true, nil
}

func (c *Cart) SetIdentification(table, customer string) {
	c.table = table
	c.customer = customer
	c.persist()
}

func (c *Cart) Identification() (table, customer string) {
	return c.table, c.customer
}

// Clear empties the lines and the identification fields.
func (c *Cart) Clear() {
	c.items = nil
	c.table = ""
	c.customer = ""
	c.persist()
}

func (c *Cart) Total() decimal.Decimal {
	return domain.SumTotal(c.items)
}

// ItemCount is the sum of quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Items() []domain.LineItem {
	return domain.CloneItems(c.items)
}

func (c *Cart) Item(id string) (domain.LineItem, bool) {
	i := c.index(id)
	if i < 0 {
		return domain.LineItem{}, false
	}
	return c.items[i].Clone(), true
}

func (c *Cart) Len() int {
	return len(c.items)
}

// restore replaces the lines with a loaded snapshot without saving it back.
func (c *Cart) restore(items []domain.LineItem) {
	c.items = nil
	for _, item := range items {
		normalized, err := normalizeItem(item, c.items)
		if err != nil {
			c.log.WithError(err).WithField("item_id", item.ID).Warn("dropping unreadable cart item")
			continue
		}
		c.items = append(c.items, normalized)
	}
}

func (c *Cart) index(id string) int {
	return itemIndex(c.items, id)
}

func (c *Cart) persist() {
	if c.persister == nil {
		return
	}
	if err := c.persister.SaveCart(domain.CloneItems(c.items)); err != nil {
		c.log.WithError(err).Error("cart snapshot not saved")
	}
}
