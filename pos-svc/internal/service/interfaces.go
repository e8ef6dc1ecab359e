package service

import (
	"context"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/pricing"
)

// Pricer resolves an item configuration to its catalog price.
type Pricer interface {
	Price(cfg domain.ItemConfig) (pricing.Priced, error)
}

type CartPersister interface {
	SaveCart(items []domain.LineItem) error
}

type OrderPersister interface {
	SaveOrders(orders []domain.Order) error
}

// SnapshotLoader reads the stored snapshots. A missing snapshot is
// reported as an empty slice and a nil error.
type SnapshotLoader interface {
	LoadCart(ctx context.Context) ([]domain.LineItem, error)
	LoadOrders(ctx context.Context) ([]domain.Order, error)
}

type Persister interface {
	CartPersister
	OrderPersister
	SnapshotLoader
}

// OrderObserver is told about every order mutation after it is applied.
type OrderObserver interface {
	OrderChanged(event domain.OrderEvent)
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

var (
	_ Pricer      = (*pricing.Calculator)(nil)
	_ QRGenerator = DefaultQRGenerator{}
)
