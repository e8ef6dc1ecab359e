package mocks

import (
	"context"

	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Persister is a testify mock of service.Persister.
type Persister struct {
	mock.Mock
}

func (m *Persister) SaveCart(items []domain.LineItem) error {
	args := m.Called(items)
	return args.Error(0)
}

func (m *Persister) SaveOrders(orders []domain.Order) error {
	args := m.Called(orders)
	return args.Error(0)
}

func (m *Persister) LoadCart(ctx context.Context) ([]domain.LineItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.LineItem)
	return items, args.Error(1)
}

func (m *Persister) LoadOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func NewPersister(t interface {
	mock.TestingT
	Cleanup(func())
}) *Persister {
	m := &Persister{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
