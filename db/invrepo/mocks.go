package invrepo

import (
	"context"

	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/db"
	"github.com/threadcount/fulfillment/test"
)

type MockRepo struct {
	GetStockFunc    func(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error)
	GetAllStockFunc func(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]inventory.StockRecord, error)
	SaveStockFunc   func(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error

	BeginTransactionFunc func(ctx context.Context) (core.Transaction, error)

	*test.CallWatcher
}

func NewMockRepo() *MockRepo {
	return &MockRepo{
		GetStockFunc: func(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
			return inventory.StockRecord{}, nil
		},
		GetAllStockFunc: func(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]inventory.StockRecord, error) {
			return nil, nil
		},
		SaveStockFunc: func(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
			return nil
		},
		BeginTransactionFunc: func(ctx context.Context) (core.Transaction, error) {
			return db.NewMockTransaction(), nil
		},
		CallWatcher: test.NewCallWatcher(),
	}
}

func (r *MockRepo) GetStock(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
	r.AddCall(ctx, locationID, itemID, options)
	return r.GetStockFunc(ctx, locationID, itemID, options...)
}

func (r *MockRepo) GetAllStock(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]inventory.StockRecord, error) {
	r.AddCall(ctx, limit, offset, options)
	return r.GetAllStockFunc(ctx, limit, offset, options...)
}

func (r *MockRepo) SaveStock(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
	r.AddCall(ctx, record, options)
	return r.SaveStockFunc(ctx, record, options...)
}

func (r *MockRepo) BeginTransaction(ctx context.Context) (core.Transaction, error) {
	r.AddCall(ctx)
	return r.BeginTransactionFunc(ctx)
}
