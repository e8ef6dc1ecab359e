package service

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Session owns the cart and the order store of one point of sale and
// loads both from the persister once at startup.
type Session struct {
	Cart   *Cart
	Orders *OrderStore

	loader SnapshotLoader
	ready  atomic.Bool
	log    logrus.FieldLogger
}

func NewSession(pricer Pricer, persister Persister, log logrus.FieldLogger, opts ...OrderStoreOption) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Session{
		Orders: NewOrderStore(pricer, persister, log, opts...),
		log:    log,
	}
	s.Cart = NewCart(pricer, persister, log)
	if persister != nil {
		s.loader = persister
	}
	return s
}

// Load restores the stored cart and orders. Unreadable snapshots are
// logged and replaced by empty state; Load never fails.
func (s *Session) Load(ctx context.Context) {
	defer s.ready.Store(true)
	if s.loader == nil {
		return
	}

	items, err := s.loader.LoadCart(ctx)
	if err != nil {
		s.log.WithError(err).Warn("cart snapshot unreadable, starting empty")
		items = nil
	}
	s.Cart.restore(items)

	orders, err := s.loader.LoadOrders(ctx)
	if err != nil {
		s.log.WithError(err).Warn("orders snapshot unreadable, starting empty")
		orders = nil
	}
	s.Orders.restore(orders)

	s.log.WithFields(logrus.Fields{
		"cart_items": s.Cart.Len(),
		"orders":     s.Orders.Len(),
	}).Info("session loaded")
}

// Ready reports whether Load has finished.
func (s *Session) Ready() bool {
	return s.ready.Load()
}
