package invrepo

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/db"
)

type dbRepo struct {
	conn core.Conn
}

func NewPostgresRepo(conn core.Conn) inventory.Repository {
	return &dbRepo{
		conn: conn,
	}
}

func (d *dbRepo) GetStock(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
	m := db.StartMetric("GetStock")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	record := inventory.StockRecord{}
	err := tx.QueryRow(ctx,
		`SELECT location_id, item_id, on_hand, reserved FROM inventory WHERE location_id = $1 AND item_id = $2 `+forUpdate,
		locationID, itemID).
		Scan(&record.LocationID, &record.ItemID, &record.OnHand, &record.Reserved)

	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return record, errors.WithStack(core.ErrNotFound)
		}
		return record, errors.WithStack(err)
	}

	m.Complete(nil)
	return record, nil
}

func (d *dbRepo) GetAllStock(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]inventory.StockRecord, error) {
	m := db.StartMetric("GetAllStock")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	records := make([]inventory.StockRecord, 0)
	rows, err := tx.Query(ctx,
		`SELECT location_id, item_id, on_hand, reserved FROM inventory ORDER BY location_id, item_id LIMIT $1 OFFSET $2 `+forUpdate,
		limit, offset)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return records, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		record := inventory.StockRecord{}
		err = rows.Scan(&record.LocationID, &record.ItemID, &record.OnHand, &record.Reserved)
		if err != nil {
			m.Complete(err)
			return nil, errors.WithStack(err)
		}
		records = append(records, record)
	}

	m.Complete(nil)
	return records, nil
}

func (d *dbRepo) SaveStock(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
	m := db.StartMetric("SaveStock")
	tx := db.GetUpdateOptions(d.conn, options...)

	ct, err := tx.Exec(ctx, `
		UPDATE inventory
           SET on_hand = $3, reserved = $4
         WHERE location_id = $1 AND item_id = $2;`,
		record.LocationID, record.ItemID, record.OnHand, record.Reserved)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	if ct.RowsAffected() == 0 {
		_, err := tx.Exec(ctx, `
		INSERT INTO inventory (location_id, item_id, on_hand, reserved)
                      VALUES ($1, $2, $3, $4);`,
			record.LocationID, record.ItemID, record.OnHand, record.Reserved)
		if err != nil {
			m.Complete(err)
			return errors.WithStack(err)
		}
	}
	m.Complete(nil)
	return nil
}

func (d *dbRepo) BeginTransaction(ctx context.Context) (core.Transaction, error) {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
