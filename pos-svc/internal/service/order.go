package service

import (
	"strconv"
	"strings"
	"time"

	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const orderIDPrefix = "PED-"

// OrderUpdate lists the order fields to change; nil means keep. The total
// is never taken from the caller: it is recomputed from the items.
type OrderUpdate struct {
	Table    *string            `json:"table,omitempty"`
	Customer *string            `json:"customer,omitempty"`
	Status   *domain.Status     `json:"status,omitempty"`
	Items    *[]domain.LineItem `json:"items,omitempty"`
}

// Column is one lane of the kitchen board.
type Column struct {
	Status domain.Status  `json:"status"`
	Label  string         `json:"label"`
	Orders []domain.Order `json:"orders"`
}

type OrderStoreOption func(*OrderStore)

func WithObserver(observer OrderObserver) OrderStoreOption {
	return func(s *OrderStore) { s.observer = observer }
}

// WithClock replaces time.Now for order timestamps and ids.
func WithClock(now func() time.Time) OrderStoreOption {
	return func(s *OrderStore) { s.now = now }
}

// OrderStore keeps placed orders in creation order. Like Cart it expects
// serialized access.
type OrderStore struct {
	orders    []domain.Order
	lastStamp int64

	pricer    Pricer
	persister OrderPersister
	observer  OrderObserver
	now       func() time.Time
	log       logrus.FieldLogger
}

func NewOrderStore(pricer Pricer, persister OrderPersister, log logrus.FieldLogger, opts ...OrderStoreOption) *OrderStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &OrderStore{
		pricer:    pricer,
		persister: persister,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFromCart turns the cart into a pending order and clears the cart.
// An empty cart creates nothing.
func (s *OrderStore) CreateFromCart(cart *Cart) (domain.Order, bool) {
	if cart.Len() == 0 {
		return domain.Order{}, false
	}

	now := s.now()
	table, customer := cart.Identification()
	order := domain.Order{
		ID:        s.nextID(now),
		Table:     table,
		Customer:  customer,
		Items:     cart.Items(),
		Total:     cart.Total(),
		Status:    domain.StatusPending,
		CreatedAt: now,
	}

	s.orders = append(s.orders, order)
	s.persist()
	cart.Clear()

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total.StringFixed(2),
		"items":    len(order.Items),
	}).Info("order created")
	s.notify(domain.EventOrderCreated, order)

	return order.Clone(), true
}

// SetStatus moves an order to any valid status, in either direction.
func (s *OrderStore) SetStatus(id string, status domain.Status) (bool, error) {
	if !status.Valid() {
		return false, domain.ErrUnknownStatus
	}
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.orders[i].Status = status
	s.persist()
	s.notify(domain.EventOrderStatusChanged, s.orders[i])
	return true, nil
}

// AdvanceStatus moves an order one step along the pipeline. A delivered
// order stays delivered.
func (s *OrderStore) AdvanceStatus(id string) (domain.Status, bool) {
	i := s.index(id)
	if i < 0 {
		return "", false
	}
	next, ok := s.orders[i].Status.Next()
	if !ok {
		return s.orders[i].Status, true
	}
	s.orders[i].Status = next
	s.persist()
	s.notify(domain.EventOrderStatusChanged, s.orders[i])
	return next, true
}

func (s *OrderStore) UpdateOrder(id string, update OrderUpdate) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	if update.Status != nil && !update.Status.Valid() {
		return true, domain.ErrUnknownStatus
	}

	var items []domain.LineItem
	if update.Items != nil {
		items = make([]domain.LineItem, 0, len(*update.Items))
		for _, item := range *update.Items {
			normalized, err := normalizeItem(item, items)
			if err != nil {
				return true, err
			}
			items = append(items, normalized)
		}
	}

	order := &s.orders[i]
	if update.Table != nil {
		order.Table = *update.Table
	}
	if update.Customer != nil {
		order.Customer = *update.Customer
	}
	if update.Status != nil {
		order.Status = *update.Status
	}
	if update.Items != nil {
		order.Items = items
	}
	order.Total = domain.SumTotal(order.Items)

	s.persist()
	s.notify(domain.EventOrderUpdated, *order)
	return true, nil
}

func (s *OrderStore) DeleteOrder(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	deleted := s.orders[i]
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	s.persist()
	s.notify(domain.EventOrderDeleted, deleted)
	return true
}

// AddOrderItem appends a line to a placed order. found is false when the
// order does not exist.
func (s *OrderStore) AddOrderItem(orderID string, item domain.LineItem) (added domain.LineItem, found bool, err error) {
	i := s.index(orderID)
	if i < 0 {
		return domain.LineItem{}, false, nil
	}
	order := &s.orders[i]
	normalized, err := normalizeItem(item, order.Items)
	if err != nil {
		return domain.LineItem{}, true, err
	}

	order.Items = append(order.Items, normalized)
	order.Total = domain.SumTotal(order.Items)
	s.persist()
	s.notify(domain.EventOrderUpdated, *order)
	return normalized.Clone(), true, nil
}

// DeleteOrderItem reports whether a line was removed. The order itself is
// kept even when its last line goes.
func (s *OrderStore) DeleteOrderItem(orderID, itemID string) bool {
	i := s.index(orderID)
	if i < 0 {
		return false
	}
	order := &s.orders[i]
	j := itemIndex(order.Items, itemID)
	if j < 0 {
		return false
	}
	order.Items = append(order.Items[:j], order.Items[j+1:]...)
	order.Total = domain.SumTotal(order.Items)
	s.persist()
	s.notify(domain.EventOrderUpdated, *order)
	return true
}

func (s *OrderStore) UpdateOrderItem(orderID, itemID string, update ItemUpdate) (bool, error) {
	i := s.index(orderID)
	if i < 0 {
		return false, nil
	}
	order := &s.orders[i]
	j := itemIndex(order.Items, itemID)
	if j < 0 {
		return false, nil
	}

	updated, removed, err := applyItemUpdate(order.Items[j], update, s.pricer)
	if err != nil {
		return true, err
	}
	if removed {
		order.Items = append(order.Items[:j], order.Items[j+1:]...)
	} else {
		order.Items[j] = updated
	}
	order.Total = domain.SumTotal(order.Items)
	s.persist()
	s.notify(domain.EventOrderUpdated, *order)
	return true, nil
}

func (s *OrderStore) GetByID(id string) (domain.Order, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Order{}, false
	}
	return s.orders[i].Clone(), true
}

func (s *OrderStore) Orders() []domain.Order {
	orders := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order.Clone())
	}
	return orders
}

func (s *OrderStore) ByStatus(status domain.Status) []domain.Order {
	orders := make([]domain.Order, 0)
	for _, order := range s.orders {
		if order.Status == status {
			orders = append(orders, order.Clone())
		}
	}
	return orders
}

// Board groups orders by status, one column per pipeline stage.
func (s *OrderStore) Board() []Column {
	columns := make([]Column, 0, len(domain.Statuses))
	for _, status := range domain.Statuses {
		columns = append(columns, Column{
			Status: status,
			Label:  status.Label(),
			Orders: s.ByStatus(status),
		})
	}
	return columns
}

func (s *OrderStore) Len() int {
	return len(s.orders)
}

// restore replaces the orders with a loaded snapshot without saving it
// back. Line and order totals are recomputed from the stored prices.
func (s *OrderStore) restore(orders []domain.Order) {
	s.orders = make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.ID == "" {
			s.log.Warn("dropping stored order without id")
			continue
		}
		if !order.Status.Valid() {
			s.log.WithField("order_id", order.ID).Warnf("unknown status %q, resetting to pending", order.Status)
			order.Status = domain.StatusPending
		}

		restored := order.Clone()
		restored.Items = restored.Items[:0]
		for _, item := range order.Items {
			normalized, err := normalizeItem(item, restored.Items)
			if err != nil {
				s.log.WithError(err).WithField("order_id", order.ID).Warn("dropping unreadable order item")
				continue
			}
			restored.Items = append(restored.Items, normalized)
		}
		restored.Total = domain.SumTotal(restored.Items)
		s.orders = append(s.orders, restored)
	}
}

// nextID derives an id from the creation time in base 36. Ids only move
// forward, so two orders placed within the same millisecond still differ.
func (s *OrderStore) nextID(now time.Time) string {
	stamp := now.UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	for {
		id := formatOrderID(stamp)
		if s.index(id) < 0 {
			s.lastStamp = stamp
			return id
		}
		stamp++
	}
}

func formatOrderID(stamp int64) string {
	return orderIDPrefix + strings.ToUpper(strconv.FormatInt(stamp, 36))
}

func (s *OrderStore) index(id string) int {
	for i, order := range s.orders {
		if order.ID == id {
			return i
		}
	}
	return -1
}

func itemIndex(items []domain.LineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *OrderStore) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveOrders(s.Orders()); err != nil {
		s.log.WithError(err).Error("orders snapshot not saved")
	}
}

func (s *OrderStore) notify(eventType string, order domain.Order) {
	if s.observer == nil {
		return
	}
	s.observer.OrderChanged(domain.NewOrderEvent(eventType, order.Clone(), s.now()))
}
