package mocks

import (
	"context"

	"pizzaria-veneza/sales-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func (m *StoreInterface) RecordOrder(ctx context.Context, msg domain.OrderMessage) (bool, error) {
	args := m.Called(ctx, msg)
	return args.Bool(0), args.Error(1)
}

func (m *StoreInterface) ReverseOrder(ctx context.Context, msg domain.OrderMessage) (bool, error) {
	args := m.Called(ctx, msg)
	return args.Bool(0), args.Error(1)
}

func (m *StoreInterface) TopItems(ctx context.Context, day string, limit int) ([]domain.ItemSales, error) {
	args := m.Called(ctx, day, limit)
	items, _ := args.Get(0).([]domain.ItemSales)
	return items, args.Error(1)
}

func (m *StoreInterface) Revenue(ctx context.Context, day string) (domain.Revenue, error) {
	args := m.Called(ctx, day)
	revenue, _ := args.Get(0).(domain.Revenue)
	return revenue, args.Error(1)
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ReportsInterface struct {
	mock.Mock
}

func (m *ReportsInterface) TopToday(ctx context.Context, limit int) ([]domain.ItemSales, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]domain.ItemSales)
	return items, args.Error(1)
}

func (m *ReportsInterface) RevenueToday(ctx context.Context) (domain.Revenue, error) {
	args := m.Called(ctx)
	revenue, _ := args.Get(0).(domain.Revenue)
	return revenue, args.Error(1)
}

func NewReportsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReportsInterface {
	m := &ReportsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MessageReader struct {
	mock.Mock
}

func (m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	msg, _ := args.Get(0).(kafka.Message)
	return msg, args.Error(1)
}
