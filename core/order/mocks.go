package order

import (
	"context"

	"github.com/threadcount/fulfillment/core/cart"
)

type MockOrderService struct {
	CheckoutFunc func(ctx context.Context, customerID int64, crt cart.Cart) (Invoice, error)

	AcceptFunc   func(ctx context.Context, invoiceID, employeeID int64) (Invoice, error)
	PrepareFunc  func(ctx context.Context, invoiceID, employeeID int64) (Invoice, error)
	CompleteFunc func(ctx context.Context, invoiceID, employeeID int64) (Invoice, error)

	GetInvoiceFunc            func(ctx context.Context, invoiceID int64) (Invoice, error)
	GetLinesFunc              func(ctx context.Context, invoiceID int64) ([]Line, error)
	GetInvoicesByCustomerFunc func(ctx context.Context, customerID int64, limit, offset int) ([]Invoice, error)
	GetInvoicesByStatusFunc   func(ctx context.Context, status Status, limit, offset int) ([]Invoice, error)
	GetEmployeeInvoicesFunc   func(ctx context.Context, employeeID int64, statuses []Status, limit, offset int) ([]Invoice, error)
}

func NewMockOrderService() MockOrderService {
	return MockOrderService{
		CheckoutFunc: func(ctx context.Context, customerID int64, crt cart.Cart) (Invoice, error) {
			return Invoice{}, nil
		},
		AcceptFunc:   func(ctx context.Context, invoiceID, employeeID int64) (Invoice, error) { return Invoice{}, nil },
		PrepareFunc:  func(ctx context.Context, invoiceID, employeeID int64) (Invoice, error) { return Invoice{}, nil },
		CompleteFunc: func(ctx context.Context, invoiceID, employeeID int64) (Invoice, error) { return Invoice{}, nil },
		GetInvoiceFunc: func(ctx context.Context, invoiceID int64) (Invoice, error) {
			return Invoice{}, nil
		},
		GetLinesFunc: func(ctx context.Context, invoiceID int64) ([]Line, error) { return []Line{}, nil },
		GetInvoicesByCustomerFunc: func(ctx context.Context, customerID int64, limit, offset int) ([]Invoice, error) {
			return []Invoice{}, nil
		},
		GetInvoicesByStatusFunc: func(ctx context.Context, status Status, limit, offset int) ([]Invoice, error) {
			return []Invoice{}, nil
		},
		GetEmployeeInvoicesFunc: func(ctx context.Context, employeeID int64, statuses []Status, limit, offset int) ([]Invoice, error) {
			return []Invoice{}, nil
		},
	}
}

func (s *MockOrderService) Checkout(ctx context.Context, customerID int64, crt cart.Cart) (Invoice, error) {
	return s.CheckoutFunc(ctx, customerID, crt)
}

func (s *MockOrderService) Accept(ctx context.Context, invoiceID, employeeID int64) (Invoice, error) {
	return s.AcceptFunc(ctx, invoiceID, employeeID)
}

func (s *MockOrderService) Prepare(ctx context.Context, invoiceID, employeeID int64) (Invoice, error) {
	return s.PrepareFunc(ctx, invoiceID, employeeID)
}

func (s *MockOrderService) Complete(ctx context.Context, invoiceID, employeeID int64) (Invoice, error) {
	return s.CompleteFunc(ctx, invoiceID, employeeID)
}

func (s *MockOrderService) GetInvoice(ctx context.Context, invoiceID int64) (Invoice, error) {
	return s.GetInvoiceFunc(ctx, invoiceID)
}

func (s *MockOrderService) GetLines(ctx context.Context, invoiceID int64) ([]Line, error) {
	return s.GetLinesFunc(ctx, invoiceID)
}

func (s *MockOrderService) GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]Invoice, error) {
	return s.GetInvoicesByCustomerFunc(ctx, customerID, limit, offset)
}

func (s *MockOrderService) GetInvoicesByStatus(ctx context.Context, status Status, limit, offset int) ([]Invoice, error) {
	return s.GetInvoicesByStatusFunc(ctx, status, limit, offset)
}

func (s *MockOrderService) GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []Status, limit, offset int) ([]Invoice, error) {
	return s.GetEmployeeInvoicesFunc(ctx, employeeID, statuses, limit, offset)
}
