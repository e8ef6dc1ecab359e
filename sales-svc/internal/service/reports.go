package service

import (
	"context"
	"time"

	"pizzaria-veneza/sales-svc/internal/domain"
	"pizzaria-veneza/sales-svc/internal/storage"
)

type Reports struct {
	Store StoreInterface
	Now   func() time.Time
}

func NewReports(store StoreInterface) *Reports {
	return &Reports{Store: store, Now: time.Now}
}

func (r *Reports) TopToday(ctx context.Context, limit int) ([]domain.ItemSales, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.Store.TopItems(ctx, storage.Day(r.Now()), limit)
}

func (r *Reports) RevenueToday(ctx context.Context) (domain.Revenue, error) {
	return r.Store.Revenue(ctx, storage.Day(r.Now()))
}
