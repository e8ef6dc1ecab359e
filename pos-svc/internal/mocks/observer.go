package mocks

import (
	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderObserver struct {
	mock.Mock
}

func (m *OrderObserver) OrderChanged(event domain.OrderEvent) {
	m.Called(event)
}

func NewOrderObserver(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderObserver {
	m := &OrderObserver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
