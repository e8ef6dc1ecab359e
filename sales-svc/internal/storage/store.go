package storage

import (
	"context"
	"strconv"
	"time"

	"pizzaria-veneza/sales-svc/internal/domain"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	DayLayout = "2006-01-02"
	retention = 7 * 24 * time.Hour
)

// Store keeps per-day sales tallies in Redis: a sorted set of item
// quantities and a hash with revenue in cents and the order count.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func itemsKey(day string) string {
	return "sales:daily:" + day + ":items"
}

func revenueKey(day string) string {
	return "sales:daily:" + day + ":revenue"
}

func seenKey(orderID string) string {
	return "sales:seen:" + orderID
}

func Day(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// RecordOrder adds an order to the tally of the day it was placed. An
// order already recorded is skipped and reported as false.
func (s *Store) RecordOrder(ctx context.Context, msg domain.OrderMessage) (bool, error) {
	day := Day(msg.Timestamp)
	fresh, err := s.rdb.SetNX(ctx, seenKey(msg.OrderID), day, retention).Result()
	if err != nil {
		return false, errors.Wrap(err, "mark order")
	}
	if !fresh {
		return false, nil
	}
	return true, s.apply(ctx, day, msg, 1)
}

// ReverseOrder takes a recorded order back out of its day's tally.
func (s *Store) ReverseOrder(ctx context.Context, msg domain.OrderMessage) (bool, error) {
	day, err := s.rdb.GetDel(ctx, seenKey(msg.OrderID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "unmark order")
	}
	return true, s.apply(ctx, day, msg, -1)
}

func (s *Store) apply(ctx context.Context, day string, msg domain.OrderMessage, sign int64) error {
	pipe := s.rdb.TxPipeline()
	for _, item := range msg.Items {
		pipe.ZIncrBy(ctx, itemsKey(day), float64(sign*int64(item.Quantity)), item.Name)
	}
	pipe.HIncrBy(ctx, revenueKey(day), "cents", sign*msg.Total.Shift(2).Round(0).IntPart())
	pipe.HIncrBy(ctx, revenueKey(day), "orders", sign)
	pipe.Expire(ctx, itemsKey(day), retention)
	pipe.Expire(ctx, revenueKey(day), retention)
	_, err := pipe.Exec(ctx)
	return errors.Wrapf(err, "update tally for %s", day)
}

// TopItems lists the best-selling items of day, most sold first.
func (s *Store) TopItems(ctx context.Context, day string, limit int) ([]domain.ItemSales, error) {
	result, err := s.rdb.ZRevRangeWithScores(ctx, itemsKey(day), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read item tally")
	}

	items := make([]domain.ItemSales, 0, len(result))
	for _, member := range result {
		if member.Score <= 0 {
			continue
		}
		items = append(items, domain.ItemSales{
			Name:     member.Member.(string),
			Quantity: int(member.Score),
		})
	}
	return items, nil
}

func (s *Store) Revenue(ctx context.Context, day string) (domain.Revenue, error) {
	fields, err := s.rdb.HGetAll(ctx, revenueKey(day)).Result()
	if err != nil {
		return domain.Revenue{}, errors.Wrap(err, "read revenue")
	}

	revenue := domain.Revenue{Day: day, Total: decimal.Zero}
	if raw, ok := fields["cents"]; ok {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Revenue{}, errors.Wrap(err, "parse revenue")
		}
		revenue.Total = decimal.New(cents, -2)
	}
	if raw, ok := fields["orders"]; ok {
		orders, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Revenue{}, errors.Wrap(err, "parse order count")
		}
		revenue.Orders = orders
	}
	return revenue, nil
}
