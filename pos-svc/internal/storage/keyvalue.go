package storage

import (
	"context"

	"github.com/pkg/errors"
)

// Record names shared by every backend.
const (
	CartKey   = "pizzaria-cart"
	OrdersKey = "pizzaria-orders"
)

var ErrNotFound = errors.New("key not found")

// KeyValue is a durable string store keyed by record name. Get returns
// ErrNotFound for a key that was never written.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

var (
	_ KeyValue = (*SQLiteStore)(nil)
	_ KeyValue = (*RedisStore)(nil)
	_ KeyValue = (*PostgresStore)(nil)
)
