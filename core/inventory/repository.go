package inventory

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
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
	GetStock(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (StockRecord, error)
	GetAllStock(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]StockRecord, error)

	SaveStock(ctx context.Context, record StockRecord, options ...core.UpdateOptions) error
}

type Queue interface {
	PublishStock(ctx context.Context, record StockRecord) error
}
