package supply

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
	GetSupplyOrder(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) (SupplyOrder, error)
	GetSupplyOrders(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]SupplyOrder, error)
	GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int, options ...core.QueryOptions) ([]SupplyOrder, error)
	GetLines(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) ([]Line, error)

	SaveSupplyOrder(ctx context.Context, so *SupplyOrder, options ...core.UpdateOptions) error
	UpdateSupplyOrder(ctx context.Context, so SupplyOrder, options ...core.UpdateOptions) error
	SaveLine(ctx context.Context, line *Line, options ...core.UpdateOptions) error
}

// Ledger is the slice of the inventory service replenishment needs:
// crediting received stock inside the delivery transaction.
type Ledger interface {
	Credit(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (inventory.StockRecord, error)
	PublishStock(ctx context.Context, record inventory.StockRecord)
}

type Queue interface {
	PublishSupplyOrder(ctx context.Context, so SupplyOrder) error
}
