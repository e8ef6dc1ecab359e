package storage

import (
	"context"
	"testing"
	"time"

	"pizzaria-veneza/sales-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), mr
}

func order(id string, at time.Time, total string, items ...domain.MessageItem) domain.OrderMessage {
	return domain.OrderMessage{
		Type:      domain.EventOrderCreated,
		OrderID:   id,
		Total:     decimal.RequireFromString(total),
		Items:     items,
		Timestamp: at,
	}
}

func TestStore_RecordOrder(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.Local)
	day := Day(at)

	first := order("PED-1", at, "152.00",
		domain.MessageItem{Name: "Mussarela", Quantity: 2},
		domain.MessageItem{Name: "Coca Cola Lata", Quantity: 1})
	second := order("PED-2", at, "19.50",
		domain.MessageItem{Name: "Coca Cola Lata", Quantity: 3})

	applied, err := store.RecordOrder(ctx, first)
	require.NoError(t, err)
	assert.True(t, applied)
	applied, err = store.RecordOrder(ctx, second)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = store.RecordOrder(ctx, first)
	require.NoError(t, err)
	assert.False(t, applied)

	top, err := store.TopItems(ctx, day, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemSales{
		{Name: "Coca Cola Lata", Quantity: 4},
		{Name: "Mussarela", Quantity: 2},
	}, top)

	revenue, err := store.Revenue(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "171.50", revenue.Total.StringFixed(2))
	assert.Equal(t, 2, revenue.Orders)
	assert.True(t, mr.TTL("sales:daily:"+day+":items") > 0)
}

func TestStore_ReverseOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 21, 0, 0, 0, time.Local)
	day := Day(at)

	msg := order("PED-7", at, "30.00", domain.MessageItem{Name: "Caipirinha de Limão (Pinga)", Quantity: 1})
	_, err := store.RecordOrder(ctx, msg)
	require.NoError(t, err)

	deleted := msg
	deleted.Type = domain.EventOrderDeleted
	deleted.Timestamp = at.Add(48 * time.Hour)
	reversed, err := store.ReverseOrder(ctx, deleted)
	require.NoError(t, err)
	assert.True(t, reversed)

	reversed, err = store.ReverseOrder(ctx, deleted)
	require.NoError(t, err)
	assert.False(t, reversed)

	top, err := store.TopItems(ctx, day, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
	revenue, err := store.Revenue(ctx, day)
	require.NoError(t, err)
	assert.True(t, revenue.Total.IsZero())
	assert.Equal(t, 0, revenue.Orders)
}

func TestStore_EmptyDay(t *testing.T) {
	store, _ := newTestStore(t)

	top, err := store.TopItems(context.Background(), "2024-01-01", 5)
	require.NoError(t, err)
	assert.Empty(t, top)

	revenue, err := store.Revenue(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", revenue.Day)
	assert.Equal(t, "0.00", revenue.Total.StringFixed(2))
}

func TestStore_RevenueRejectsCorruptFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "cents", field: "cents", value: "12.5"},
		{name: "orders", field: "orders", value: "two"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, mr := newTestStore(t)
			mr.HSet(revenueKey("2024-05-01"), testCase.field, testCase.value)

			_, err := store.Revenue(context.Background(), "2024-05-01")
			assert.Error(t, err)
		})
	}
}

func TestStore_RedisDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.RecordOrder(context.Background(), order("PED-1", time.Now(), "1.00"))
	assert.Error(t, err)
}
