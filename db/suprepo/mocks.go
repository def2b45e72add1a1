package suprepo

import (
	"context"

	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/supply"
	"github.com/threadcount/fulfillment/db"
	"github.com/threadcount/fulfillment/test"
)

type MockRepo struct {
	GetSupplyOrderFunc          func(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) (supply.SupplyOrder, error)
	GetSupplyOrdersFunc         func(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error)
	GetSupplierSupplyOrdersFunc func(ctx context.Context, supplierID int64, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error)
	GetLinesFunc                func(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) ([]supply.Line, error)

	SaveSupplyOrderFunc   func(ctx context.Context, so *supply.SupplyOrder, options ...core.UpdateOptions) error
	UpdateSupplyOrderFunc func(ctx context.Context, so supply.SupplyOrder, options ...core.UpdateOptions) error
	SaveLineFunc          func(ctx context.Context, line *supply.Line, options ...core.UpdateOptions) error

	BeginTransactionFunc func(ctx context.Context) (core.Transaction, error)

	*test.CallWatcher
}

func NewMockRepo() *MockRepo {
	return &MockRepo{
		GetSupplyOrderFunc: func(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) (supply.SupplyOrder, error) {
			return supply.SupplyOrder{}, nil
		},
		GetSupplyOrdersFunc: func(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error) {
			return nil, nil
		},
		GetSupplierSupplyOrdersFunc: func(ctx context.Context, supplierID int64, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error) {
			return nil, nil
		},
		GetLinesFunc: func(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) ([]supply.Line, error) {
			return nil, nil
		},
		SaveSupplyOrderFunc: func(ctx context.Context, so *supply.SupplyOrder, options ...core.UpdateOptions) error {
			return nil
		},
		UpdateSupplyOrderFunc: func(ctx context.Context, so supply.SupplyOrder, options ...core.UpdateOptions) error {
			return nil
		},
		SaveLineFunc: func(ctx context.Context, line *supply.Line, options ...core.UpdateOptions) error {
			return nil
		},
		BeginTransactionFunc: func(ctx context.Context) (core.Transaction, error) {
			return db.NewMockTransaction(), nil
		},
		CallWatcher: test.NewCallWatcher(),
	}
}

func (r *MockRepo) GetSupplyOrder(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) (supply.SupplyOrder, error) {
	r.AddCall(ctx, supplyOrderID, options)
	return r.GetSupplyOrderFunc(ctx, supplyOrderID, options...)
}

func (r *MockRepo) GetSupplyOrders(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error) {
	r.AddCall(ctx, limit, offset, options)
	return r.GetSupplyOrdersFunc(ctx, limit, offset, options...)
}

func (r *MockRepo) GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error) {
	r.AddCall(ctx, supplierID, limit, offset, options)
	return r.GetSupplierSupplyOrdersFunc(ctx, supplierID, limit, offset, options...)
}

func (r *MockRepo) GetLines(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) ([]supply.Line, error) {
	r.AddCall(ctx, supplyOrderID, options)
	return r.GetLinesFunc(ctx, supplyOrderID, options...)
}

func (r *MockRepo) SaveSupplyOrder(ctx context.Context, so *supply.SupplyOrder, options ...core.UpdateOptions) error {
	r.AddCall(ctx, so, options)
	return r.SaveSupplyOrderFunc(ctx, so, options...)
}

func (r *MockRepo) UpdateSupplyOrder(ctx context.Context, so supply.SupplyOrder, options ...core.UpdateOptions) error {
	r.AddCall(ctx, so, options)
	return r.UpdateSupplyOrderFunc(ctx, so, options...)
}

func (r *MockRepo) SaveLine(ctx context.Context, line *supply.Line, options ...core.UpdateOptions) error {
	r.AddCall(ctx, line, options)
	return r.SaveLineFunc(ctx, line, options...)
}

func (r *MockRepo) BeginTransaction(ctx context.Context) (core.Transaction, error) {
	r.AddCall(ctx)
	return r.BeginTransactionFunc(ctx)
}
