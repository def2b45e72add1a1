package supply

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/inventory"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (SupplyOrder, error)
	Cancel(ctx context.Context, supplyOrderID int64) (SupplyOrder, error)
	Deliver(ctx context.Context, supplyOrderID, supplierID int64) (SupplyOrder, error)

	GetSupplyOrder(ctx context.Context, supplyOrderID int64) (SupplyOrder, error)
	GetLines(ctx context.Context, supplyOrderID int64) ([]Line, error)
	GetSupplyOrders(ctx context.Context, limit, offset int) ([]SupplyOrder, error)
	GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int) ([]SupplyOrder, error)
}

func NewService(repo Repository, ledger Ledger, q Queue) *service {
	return &service{repo: repo, ledger: ledger, queue: q}
}

type service struct {
	repo   Repository
	ledger Ledger
	queue  Queue
}

// Create persists a pending supply order with its lines. Invalid lines are
// discarded, and an order with no valid lines is rejected outright.
func (s *service) Create(ctx context.Context, req CreateRequest) (so SupplyOrder, err error) {
	const funcName = "Create"

	log.Info().
		Str("func", funcName).
		Int64("supplierId", req.SupplierID).
		Int64("locationId", req.LocationID).
		Int("lines", len(req.Lines)).
		Msg("creating supply order")

	lines := make([]Line, 0, len(req.Lines))
	total := decimal.Zero
	for _, lr := range req.Lines {
		if lr.Quantity <= 0 || lr.UnitCost.IsNegative() {
			log.Debug().
				Str("func", funcName).
				Int64("itemId", lr.ItemID).
				Int64("quantity", lr.Quantity).
				Msg("discarding invalid supply order line")
			continue
		}
		amount := lr.UnitCost.Mul(decimal.NewFromInt(lr.Quantity)).Round(2)
		total = total.Add(amount)
		lines = append(lines, Line{
			ItemID:   lr.ItemID,
			Quantity: lr.Quantity,
			UnitCost: lr.UnitCost,
			Amount:   amount,
		})
	}

	if len(lines) == 0 {
		return SupplyOrder{}, errors.New("supply order requires at least one valid line")
	}

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	so = SupplyOrder{
		SupplierID: req.SupplierID,
		LocationID: req.LocationID,
		CreatedBy:  req.CreatedBy,
		Total:      total.Round(2),
		Created:    time.Now(),
		Status:     StatusPending,
	}
	if err = s.repo.SaveSupplyOrder(ctx, &so, core.UpdateOptions{Tx: tx}); err != nil {
		return SupplyOrder{}, errors.WithMessage(err, "failed to save supply order")
	}

	for i := range lines {
		lines[i].SupplyOrderID = so.ID
		if err = s.repo.SaveLine(ctx, &lines[i], core.UpdateOptions{Tx: tx}); err != nil {
			return SupplyOrder{}, errors.WithMessage(err, "failed to save supply order line")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	s.publishSupplyOrder(ctx, so)
	return so, nil
}

// Cancel is terminal and has no inventory effect. Only pending orders can be
// cancelled.
func (s *service) Cancel(ctx context.Context, supplyOrderID int64) (so SupplyOrder, err error) {
	const funcName = "Cancel"

	log.Info().
		Str("func", funcName).
		Int64("supplyOrderId", supplyOrderID).
		Msg("cancelling supply order")

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	so, err = s.repo.GetSupplyOrder(ctx, supplyOrderID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	if so.Status != StatusPending {
		err = &core.InvalidTransitionError{Current: string(so.Status), Want: string(StatusPending)}
		return so, err
	}

	so.Status = StatusCancelled
	if err = s.repo.UpdateSupplyOrder(ctx, so, core.UpdateOptions{Tx: tx}); err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	s.publishSupplyOrder(ctx, so)
	return so, nil
}

// Deliver receives the order into inventory. Only the assigned supplier may
// deliver, only from Pending, and every line's credit plus the status update
// commit as one transaction.
func (s *service) Deliver(ctx context.Context, supplyOrderID, supplierID int64) (so SupplyOrder, err error) {
	const funcName = "Deliver"

	log.Info().
		Str("func", funcName).
		Int64("supplyOrderId", supplyOrderID).
		Int64("supplierId", supplierID).
		Msg("delivering supply order")

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	so, err = s.repo.GetSupplyOrder(ctx, supplyOrderID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	if so.SupplierID != supplierID {
		err = errors.WithStack(core.ErrNotOwner)
		return so, err
	}
	if so.Status != StatusPending {
		err = &core.InvalidTransitionError{Current: string(so.Status), Want: string(StatusPending)}
		return so, err
	}

	lines, err := s.repo.GetLines(ctx, supplyOrderID, core.QueryOptions{Tx: tx})
	if err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	credited := make([]inventory.StockRecord, 0, len(lines))
	for _, ln := range lines {
		var record inventory.StockRecord
		record, err = s.ledger.Credit(ctx, tx, so.LocationID, ln.ItemID, ln.Quantity)
		if err != nil {
			return SupplyOrder{}, errors.WithMessagef(err, "failed to credit stock for item %d", ln.ItemID)
		}
		credited = append(credited, record)
	}

	so.DeliveredBy = &supplierID
	so.Status = StatusReceived
	if err = s.repo.UpdateSupplyOrder(ctx, so, core.UpdateOptions{Tx: tx}); err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return SupplyOrder{}, errors.WithStack(err)
	}

	for _, record := range credited {
		s.ledger.PublishStock(ctx, record)
	}
	s.publishSupplyOrder(ctx, so)

	return so, nil
}

func (s *service) GetSupplyOrder(ctx context.Context, supplyOrderID int64) (SupplyOrder, error) {
	so, err := s.repo.GetSupplyOrder(ctx, supplyOrderID)
	if err != nil {
		return so, errors.WithStack(err)
	}
	return so, nil
}

func (s *service) GetLines(ctx context.Context, supplyOrderID int64) ([]Line, error) {
	return s.repo.GetLines(ctx, supplyOrderID)
}

func (s *service) GetSupplyOrders(ctx context.Context, limit, offset int) ([]SupplyOrder, error) {
	return s.repo.GetSupplyOrders(ctx, limit, offset)
}

func (s *service) GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int) ([]SupplyOrder, error) {
	return s.repo.GetSupplierSupplyOrders(ctx, supplierID, limit, offset)
}

func (s *service) publishSupplyOrder(ctx context.Context, so SupplyOrder) {
	if err := s.queue.PublishSupplyOrder(ctx, so); err != nil {
		log.Warn().Err(err).Int64("supplyOrderId", so.ID).Msg("failed to publish supply order update to queue")
	}
}
