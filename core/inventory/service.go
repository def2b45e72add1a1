package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
)

func NewService(repo Repository, q Queue) *service {
	return &service{
		repo:      repo,
		queue:     q,
		stockSubs: make(map[StockSubscriptionID]chan<- StockRecord),
	}
}

type Service interface {
	GetStock(ctx context.Context, locationID, itemID int64) (StockRecord, error)
	GetAvailable(ctx context.Context, locationID, itemID int64) (int64, error)
	GetAllStock(ctx context.Context, limit, offset int) ([]StockRecord, error)

	SetOnHand(ctx context.Context, locationID, itemID, quantity int64) (StockRecord, error)

	Reserve(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error)
	Deduct(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error)
	Credit(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error)
	PublishStock(ctx context.Context, record StockRecord)

	SubscribeStock(ch chan<- StockRecord) (id StockSubscriptionID)
	UnsubscribeStock(id StockSubscriptionID)
}

type StockSubscriptionID string

type service struct {
	repo      Repository
	queue     Queue
	stockSubs map[StockSubscriptionID]chan<- StockRecord
}

func (s *service) GetStock(ctx context.Context, locationID, itemID int64) (StockRecord, error) {
	record, err := s.repo.GetStock(ctx, locationID, itemID)
	if err != nil {
		return record, errors.WithStack(err)
	}
	return record, nil
}

func (s *service) GetAvailable(ctx context.Context, locationID, itemID int64) (int64, error) {
	record, err := s.repo.GetStock(ctx, locationID, itemID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return 0, nil
		}
		return 0, errors.WithStack(err)
	}
	return record.Available(), nil
}

func (s *service) GetAllStock(ctx context.Context, limit, offset int) ([]StockRecord, error) {
	return s.repo.GetAllStock(ctx, limit, offset)
}

// Reserve earmarks quantity units for an invoice. It participates in the
// caller's transaction: the row is locked until the caller commits, so the
// availability check and the increment are atomic with the rest of the
// checkout.
func (s *service) Reserve(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
	const funcName = "Reserve"

	log.Debug().
		Str("func", funcName).
		Int64("locationId", locationID).
		Int64("itemId", itemID).
		Int64("quantity", quantity).
		Msg("reserving stock")

	if quantity < 1 {
		return StockRecord{}, errors.New("quantity must be greater than zero")
	}

	record, err := s.repo.GetStock(ctx, locationID, itemID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return StockRecord{}, &core.InsufficientStockError{ItemID: itemID, Available: 0}
		}
		return StockRecord{}, errors.WithStack(err)
	}

	if available := record.Available(); quantity > available {
		return StockRecord{}, &core.InsufficientStockError{ItemID: itemID, Available: available}
	}

	record.Reserved += quantity
	if err = s.repo.SaveStock(ctx, record, core.UpdateOptions{Tx: tx}); err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	return record, nil
}

// Deduct permanently consumes previously reserved stock. Both counters go
// down together; reserve and deduct are always paired, so a counter going
// negative means the pairing was broken somewhere.
func (s *service) Deduct(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
	const funcName = "Deduct"

	log.Debug().
		Str("func", funcName).
		Int64("locationId", locationID).
		Int64("itemId", itemID).
		Int64("quantity", quantity).
		Msg("deducting stock")

	if quantity < 1 {
		return StockRecord{}, errors.New("quantity must be greater than zero")
	}

	record, err := s.repo.GetStock(ctx, locationID, itemID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	if record.OnHand < quantity || record.Reserved < quantity {
		log.Error().
			Str("func", funcName).
			Int64("itemId", itemID).
			Int64("onHand", record.OnHand).
			Int64("reserved", record.Reserved).
			Int64("quantity", quantity).
			Msg("deduction would drive a counter negative")
		return StockRecord{}, errors.WithStack(core.ErrInvariantViolation)
	}

	record.OnHand -= quantity
	record.Reserved -= quantity
	if err = s.repo.SaveStock(ctx, record, core.UpdateOptions{Tx: tx}); err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	return record, nil
}

// Credit adds delivered stock to the on-hand count, creating the record with
// zero reserved if the item has never been stocked at the location.
func (s *service) Credit(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
	const funcName = "Credit"

	log.Debug().
		Str("func", funcName).
		Int64("locationId", locationID).
		Int64("itemId", itemID).
		Int64("quantity", quantity).
		Msg("crediting stock")

	if quantity < 1 {
		return StockRecord{}, errors.New("quantity must be greater than zero")
	}

	record, err := s.repo.GetStock(ctx, locationID, itemID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return StockRecord{}, errors.WithStack(err)
		}
		record = StockRecord{LocationID: locationID, ItemID: itemID}
	}

	record.OnHand += quantity
	if err = s.repo.SaveStock(ctx, record, core.UpdateOptions{Tx: tx}); err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	return record, nil
}

// SetOnHand is the administrative overwrite of the on-hand count. Reserved
// stock is already promised to invoices, so overwrites below the reserved
// count are rejected rather than letting available go negative.
func (s *service) SetOnHand(ctx context.Context, locationID, itemID, quantity int64) (record StockRecord, err error) {
	const funcName = "SetOnHand"

	log.Info().
		Str("func", funcName).
		Int64("locationId", locationID).
		Int64("itemId", itemID).
		Int64("quantity", quantity).
		Msg("setting on hand stock")

	if quantity < 0 {
		return StockRecord{}, errors.New("quantity must not be negative")
	}

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	record, err = s.repo.GetStock(ctx, locationID, itemID, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return StockRecord{}, errors.WithStack(err)
		}
		record = StockRecord{LocationID: locationID, ItemID: itemID}
	}

	if quantity < record.Reserved {
		return StockRecord{}, errors.WithMessagef(core.ErrInvariantViolation,
			"cannot set on hand below reserved quantity %d", record.Reserved)
	}

	record.OnHand = quantity
	if err = s.repo.SaveStock(ctx, record, core.UpdateOptions{Tx: tx}); err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return StockRecord{}, errors.WithStack(err)
	}

	s.PublishStock(ctx, record)
	return record, nil
}

// PublishStock pushes a committed stock level to the queue and to websocket
// subscribers. Called by the owning state machine after its commit.
func (s *service) PublishStock(ctx context.Context, record StockRecord) {
	if err := s.queue.PublishStock(ctx, record); err != nil {
		log.Warn().Err(err).
			Int64("itemId", record.ItemID).
			Msg("failed to publish stock update to queue")
	}
	go s.notifyStockSubscribers(record)
}

func (s *service) SubscribeStock(ch chan<- StockRecord) (id StockSubscriptionID) {
	id = StockSubscriptionID(uuid.NewString())
	s.stockSubs[id] = ch
	log.Debug().Interface("clientId", id).Msg("subscribing to stock updates")
	return id
}

func (s *service) UnsubscribeStock(id StockSubscriptionID) {
	log.Debug().Interface("clientId", id).Msg("unsubscribing from stock updates")
	close(s.stockSubs[id])
	delete(s.stockSubs, id)
}

func (s *service) notifyStockSubscribers(record StockRecord) {
	for id, ch := range s.stockSubs {
		log.Debug().Interface("clientId", id).Interface("stockRecord", record).Msg("notifying subscriber of stock update")
		ch <- record
	}
}
