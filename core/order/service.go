package order

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/cart"
	"github.com/threadcount/fulfillment/core/inventory"
)

type Service interface {
	Checkout(ctx context.Context, customerID int64, crt cart.Cart) (Invoice, error)

	Accept(ctx context.Context, invoiceID, employeeID int64) (Invoice, error)
	Prepare(ctx context.Context, invoiceID, employeeID int64) (Invoice, error)
	Complete(ctx context.Context, invoiceID, employeeID int64) (Invoice, error)

	GetInvoice(ctx context.Context, invoiceID int64) (Invoice, error)
	GetLines(ctx context.Context, invoiceID int64) ([]Line, error)
	GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]Invoice, error)
	GetInvoicesByStatus(ctx context.Context, status Status, limit, offset int) ([]Invoice, error)
	GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []Status, limit, offset int) ([]Invoice, error)
}

func NewService(repo Repository, ledger Ledger, q Queue, locationID int64) *service {
	return &service{repo: repo, ledger: ledger, queue: q, locationID: locationID}
}

type service struct {
	repo       Repository
	ledger     Ledger
	queue      Queue
	locationID int64
}

// Checkout converts a cart into an invoice with reserved stock. The whole
// conversion is one transaction: reservations, invoice and lines all commit
// together or not at all. Lines are processed in ascending item id so two
// overlapping checkouts can never deadlock on row lock order.
func (s *service) Checkout(ctx context.Context, customerID int64, crt cart.Cart) (inv Invoice, err error) {
	const funcName = "Checkout"

	log.Info().
		Str("func", funcName).
		Int64("customerId", customerID).
		Int("lines", len(crt.Lines)).
		Msg("checking out cart")

	if crt.TotalQuantity() == 0 {
		return Invoice{}, errors.WithStack(core.ErrEmptyCart)
	}

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	lines := crt.SortedLines()
	reserved := make([]inventory.StockRecord, 0, len(lines))
	for _, ln := range lines {
		var record inventory.StockRecord
		record, err = s.ledger.Reserve(ctx, tx, s.locationID, ln.ItemID, ln.Quantity)
		if err != nil {
			return Invoice{}, errors.WithStack(err)
		}
		reserved = append(reserved, record)
	}

	inv = Invoice{
		CustomerID: customerID,
		Total:      crt.TotalAmount(),
		Created:    time.Now(),
		Status:     StatusPending,
	}
	if err = s.repo.SaveInvoice(ctx, &inv, core.UpdateOptions{Tx: tx}); err != nil {
		return Invoice{}, errors.WithMessage(err, "failed to save invoice")
	}

	for _, ln := range lines {
		line := Line{
			InvoiceID: inv.ID,
			ItemID:    ln.ItemID,
			Quantity:  ln.Quantity,
			Amount:    ln.Amount(),
		}
		if err = s.repo.SaveLine(ctx, &line, core.UpdateOptions{Tx: tx}); err != nil {
			return Invoice{}, errors.WithMessage(err, "failed to save order line")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return Invoice{}, errors.WithMessage(err, "failed to commit checkout transaction")
	}

	for _, record := range reserved {
		s.ledger.PublishStock(ctx, record)
	}
	s.publishInvoice(ctx, inv)

	return inv, nil
}

// Accept claims a pending invoice for an employee. The invoice row is locked
// so two employees racing for the same invoice cannot both win.
func (s *service) Accept(ctx context.Context, invoiceID, employeeID int64) (inv Invoice, err error) {
	const funcName = "Accept"

	log.Info().
		Str("func", funcName).
		Int64("invoiceId", invoiceID).
		Int64("employeeId", employeeID).
		Msg("accepting invoice")

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	inv, err = s.repo.GetInvoice(ctx, invoiceID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	if inv.Status != StatusPending {
		err = &core.InvalidTransitionError{Current: string(inv.Status), Want: string(StatusPending)}
		return inv, err
	}

	inv.EmployeeID = &employeeID
	inv.Status = StatusAccepted
	if err = s.repo.UpdateInvoice(ctx, inv, core.UpdateOptions{Tx: tx}); err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	s.publishInvoice(ctx, inv)
	return inv, nil
}

// Prepare marks an accepted invoice as picked and packed. Only the employee
// who accepted it may prepare it.
func (s *service) Prepare(ctx context.Context, invoiceID, employeeID int64) (inv Invoice, err error) {
	const funcName = "Prepare"

	log.Info().
		Str("func", funcName).
		Int64("invoiceId", invoiceID).
		Int64("employeeId", employeeID).
		Msg("preparing invoice")

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	inv, err = s.repo.GetInvoice(ctx, invoiceID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	if inv.EmployeeID == nil || *inv.EmployeeID != employeeID {
		err = errors.WithStack(core.ErrNotOwner)
		return inv, err
	}
	if inv.Status != StatusAccepted && inv.Status != StatusPrepared {
		err = &core.InvalidTransitionError{Current: string(inv.Status), Want: string(StatusAccepted)}
		return inv, err
	}

	inv.Status = StatusPrepared
	if err = s.repo.UpdateInvoice(ctx, inv, core.UpdateOptions{Tx: tx}); err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	s.publishInvoice(ctx, inv)
	return inv, nil
}

// Complete finishes fulfillment. Every line's reserved stock is deducted
// from on-hand inventory and the invoice moves to Completed, all in one
// transaction; a failing deduction aborts the whole transition.
func (s *service) Complete(ctx context.Context, invoiceID, employeeID int64) (inv Invoice, err error) {
	const funcName = "Complete"

	log.Info().
		Str("func", funcName).
		Int64("invoiceId", invoiceID).
		Int64("employeeId", employeeID).
		Msg("completing invoice")

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	inv, err = s.repo.GetInvoice(ctx, invoiceID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	if inv.EmployeeID == nil || *inv.EmployeeID != employeeID {
		err = errors.WithStack(core.ErrNotOwner)
		return inv, err
	}
	if inv.Status != StatusAccepted && inv.Status != StatusPrepared {
		err = &core.InvalidTransitionError{Current: string(inv.Status), Want: string(StatusAccepted)}
		return inv, err
	}

	lines, err := s.repo.GetLines(ctx, invoiceID, core.QueryOptions{Tx: tx})
	if err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	deducted := make([]inventory.StockRecord, 0, len(lines))
	for _, ln := range lines {
		var record inventory.StockRecord
		record, err = s.ledger.Deduct(ctx, tx, s.locationID, ln.ItemID, ln.Quantity)
		if err != nil {
			return Invoice{}, errors.WithMessagef(err, "failed to deduct stock for item %d", ln.ItemID)
		}
		deducted = append(deducted, record)
	}

	inv.Status = StatusCompleted
	if err = s.repo.UpdateInvoice(ctx, inv, core.UpdateOptions{Tx: tx}); err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return Invoice{}, errors.WithStack(err)
	}

	for _, record := range deducted {
		s.ledger.PublishStock(ctx, record)
	}
	s.publishInvoice(ctx, inv)

	return inv, nil
}

func (s *service) GetInvoice(ctx context.Context, invoiceID int64) (Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return inv, errors.WithStack(err)
	}
	return inv, nil
}

func (s *service) GetLines(ctx context.Context, invoiceID int64) ([]Line, error) {
	return s.repo.GetLines(ctx, invoiceID)
}

func (s *service) GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]Invoice, error) {
	return s.repo.GetInvoicesByCustomer(ctx, customerID, limit, offset)
}

func (s *service) GetInvoicesByStatus(ctx context.Context, status Status, limit, offset int) ([]Invoice, error) {
	return s.repo.GetInvoicesByStatus(ctx, status, limit, offset)
}

func (s *service) GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []Status, limit, offset int) ([]Invoice, error) {
	return s.repo.GetEmployeeInvoices(ctx, employeeID, statuses, limit, offset)
}

func (s *service) publishInvoice(ctx context.Context, inv Invoice) {
	if err := s.queue.PublishInvoice(ctx, inv); err != nil {
		log.Warn().Err(err).Int64("invoiceId", inv.ID).Msg("failed to publish invoice update to queue")
	}
}
