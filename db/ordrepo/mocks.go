package ordrepo

import (
	"context"

	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/db"
	"github.com/threadcount/fulfillment/test"
)

type MockRepo struct {
	GetInvoiceFunc            func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error)
	GetInvoicesByCustomerFunc func(ctx context.Context, customerID int64, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error)
	GetInvoicesByStatusFunc   func(ctx context.Context, status order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error)
	GetEmployeeInvoicesFunc   func(ctx context.Context, employeeID int64, statuses []order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error)
	GetLinesFunc              func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) ([]order.Line, error)

	SaveInvoiceFunc   func(ctx context.Context, invoice *order.Invoice, options ...core.UpdateOptions) error
	UpdateInvoiceFunc func(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error
	SaveLineFunc      func(ctx context.Context, line *order.Line, options ...core.UpdateOptions) error

	BeginTransactionFunc func(ctx context.Context) (core.Transaction, error)

	*test.CallWatcher
}

func NewMockRepo() *MockRepo {
	return &MockRepo{
		GetInvoiceFunc: func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error) {
			return order.Invoice{}, nil
		},
		GetInvoicesByCustomerFunc: func(ctx context.Context, customerID int64, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
			return nil, nil
		},
		GetInvoicesByStatusFunc: func(ctx context.Context, status order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
			return nil, nil
		},
		GetEmployeeInvoicesFunc: func(ctx context.Context, employeeID int64, statuses []order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
			return nil, nil
		},
		GetLinesFunc: func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) ([]order.Line, error) {
			return nil, nil
		},
		SaveInvoiceFunc: func(ctx context.Context, invoice *order.Invoice, options ...core.UpdateOptions) error {
			return nil
		},
		UpdateInvoiceFunc: func(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error {
			return nil
		},
		SaveLineFunc: func(ctx context.Context, line *order.Line, options ...core.UpdateOptions) error {
			return nil
		},
		BeginTransactionFunc: func(ctx context.Context) (core.Transaction, error) {
			return db.NewMockTransaction(), nil
		},
		CallWatcher: test.NewCallWatcher(),
	}
}

func (r *MockRepo) GetInvoice(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error) {
	r.AddCall(ctx, invoiceID, options)
	return r.GetInvoiceFunc(ctx, invoiceID, options...)
}

func (r *MockRepo) GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
	r.AddCall(ctx, customerID, limit, offset, options)
	return r.GetInvoicesByCustomerFunc(ctx, customerID, limit, offset, options...)
}

func (r *MockRepo) GetInvoicesByStatus(ctx context.Context, status order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
	r.AddCall(ctx, status, limit, offset, options)
	return r.GetInvoicesByStatusFunc(ctx, status, limit, offset, options...)
}

func (r *MockRepo) GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
	r.AddCall(ctx, employeeID, statuses, limit, offset, options)
	return r.GetEmployeeInvoicesFunc(ctx, employeeID, statuses, limit, offset, options...)
}

func (r *MockRepo) GetLines(ctx context.Context, invoiceID int64, options ...core.QueryOptions) ([]order.Line, error) {
	r.AddCall(ctx, invoiceID, options)
	return r.GetLinesFunc(ctx, invoiceID, options...)
}

func (r *MockRepo) SaveInvoice(ctx context.Context, invoice *order.Invoice, options ...core.UpdateOptions) error {
	r.AddCall(ctx, invoice, options)
	return r.SaveInvoiceFunc(ctx, invoice, options...)
}

func (r *MockRepo) UpdateInvoice(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error {
	r.AddCall(ctx, invoice, options)
	return r.UpdateInvoiceFunc(ctx, invoice, options...)
}

func (r *MockRepo) SaveLine(ctx context.Context, line *order.Line, options ...core.UpdateOptions) error {
	r.AddCall(ctx, line, options)
	return r.SaveLineFunc(ctx, line, options...)
}

func (r *MockRepo) BeginTransaction(ctx context.Context) (core.Transaction, error) {
	r.AddCall(ctx)
	return r.BeginTransactionFunc(ctx)
}
