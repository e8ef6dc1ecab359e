package service

import (
	"context"

	"pizzaria-veneza/sales-svc/internal/domain"
	"pizzaria-veneza/sales-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, msg domain.OrderMessage) (bool, error)
	ReverseOrder(ctx context.Context, msg domain.OrderMessage) (bool, error)
	TopItems(ctx context.Context, day string, limit int) ([]domain.ItemSales, error)
	Revenue(ctx context.Context, day string) (domain.Revenue, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ReportsInterface interface {
	TopToday(ctx context.Context, limit int) ([]domain.ItemSales, error)
	RevenueToday(ctx context.Context) (domain.Revenue, error)
}

var (
	_ StoreInterface   = (*storage.Store)(nil)
	_ MessageReader    = (*kafka.Reader)(nil)
	_ ReportsInterface = (*Reports)(nil)
)
