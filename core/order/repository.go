package order

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/inventory"
)

func rollback(ctx context.Context, tx core.Transaction, err error) {
	if tx == nil {
		return
	}
	e := tx.Rollback(ctx)
	if e != nil {
		log.Warn().Err(err).Msg("failed to rollback")
	}
}

type Transactional interface {
	BeginTransaction(ctx context.Context) (core.Transaction, error)
}

type Repository interface {
	Transactional
	GetInvoice(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (Invoice, error)
	GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int, options ...core.QueryOptions) ([]Invoice, error)
	GetInvoicesByStatus(ctx context.Context, status Status, limit, offset int, options ...core.QueryOptions) ([]Invoice, error)
	GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []Status, limit, offset int, options ...core.QueryOptions) ([]Invoice, error)
	GetLines(ctx context.Context, invoiceID int64, options ...core.QueryOptions) ([]Line, error)

	SaveInvoice(ctx context.Context, invoice *Invoice, options ...core.UpdateOptions) error
	UpdateInvoice(ctx context.Context, invoice Invoice, options ...core.UpdateOptions) error
	SaveLine(ctx context.Context, line *Line, options ...core.UpdateOptions) error
}

// Ledger is the slice of the inventory service the order pipeline needs:
// reservation at checkout, deduction at completion, both inside the order's
// own transaction.
type Ledger interface {
	Reserve(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (inventory.StockRecord, error)
	Deduct(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (inventory.StockRecord, error)
	PublishStock(ctx context.Context, record inventory.StockRecord)
}

type Queue interface {
	PublishInvoice(ctx context.Context, invoice Invoice) error
}
