package queue

import (
	"context"

	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/core/supply"
	"github.com/threadcount/fulfillment/test"
)

type MockQueue struct {
	PublishStockFunc       func(ctx context.Context, record inventory.StockRecord) error
	PublishInvoiceFunc     func(ctx context.Context, invoice order.Invoice) error
	PublishSupplyOrderFunc func(ctx context.Context, so supply.SupplyOrder) error
	*test.CallWatcher
}

func NewMockQueue() *MockQueue {
	return &MockQueue{
		PublishStockFunc: func(ctx context.Context, record inventory.StockRecord) error {
			return nil
		},
		PublishInvoiceFunc: func(ctx context.Context, invoice order.Invoice) error {
			return nil
		},
		PublishSupplyOrderFunc: func(ctx context.Context, so supply.SupplyOrder) error {
			return nil
		},
		CallWatcher: test.NewCallWatcher(),
	}
}

func (m *MockQueue) PublishStock(ctx context.Context, record inventory.StockRecord) error {
	m.AddCall(ctx, record)
	return m.PublishStockFunc(ctx, record)
}

func (m *MockQueue) PublishInvoice(ctx context.Context, invoice order.Invoice) error {
	m.AddCall(ctx, invoice)
	return m.PublishInvoiceFunc(ctx, invoice)
}

func (m *MockQueue) PublishSupplyOrder(ctx context.Context, so supply.SupplyOrder) error {
	m.AddCall(ctx, so)
	return m.PublishSupplyOrderFunc(ctx, so)
}
