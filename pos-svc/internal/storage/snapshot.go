package storage

import (
	"context"
	"encoding/json"
	"time"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/service"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultWriteTimeout = 2 * time.Second

// SnapshotStore writes the cart and the orders as two JSON records of a
// KeyValue backend.
type SnapshotStore struct {
	kv           KeyValue
	writeTimeout time.Duration
	log          logrus.FieldLogger
}

var _ service.Persister = (*SnapshotStore)(nil)

func NewSnapshotStore(kv KeyValue, writeTimeout time.Duration, log logrus.FieldLogger) *SnapshotStore {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SnapshotStore{kv: kv, writeTimeout: writeTimeout, log: log}
}

func (s *SnapshotStore) SaveCart(items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	return s.save(CartKey, items)
}

func (s *SnapshotStore) SaveOrders(orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	return s.save(OrdersKey, orders)
}

func (s *SnapshotStore) LoadCart(ctx context.Context) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := s.load(ctx, CartKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SnapshotStore) LoadOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.load(ctx, OrdersKey, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SnapshotStore) save(key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"key": key, "bytes": len(payload)}).Debug("snapshot saved")
	return nil
}

// load leaves v untouched when the record was never written.
func (s *SnapshotStore) load(ctx context.Context, key string, v interface{}) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		s.log.WithField("key", key).Debug("no snapshot stored")
		return nil
	}
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return errors.Wrapf(err, "decode %s", key)
	}
	return nil
}
