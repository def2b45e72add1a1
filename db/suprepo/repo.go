package suprepo

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/supply"
	"github.com/threadcount/fulfillment/db"
)

type dbRepo struct {
	conn core.Conn
}

func NewPostgresRepo(conn core.Conn) supply.Repository {
	return &dbRepo{
		conn: conn,
	}
}

const supplyOrderColumns = "id, supplier_id, location_id, created_by, delivered_by, total, created, status"

func scanSupplyOrder(row pgx.Row) (supply.SupplyOrder, error) {
	so := supply.SupplyOrder{}
	err := row.Scan(&so.ID, &so.SupplierID, &so.LocationID, &so.CreatedBy, &so.DeliveredBy, &so.Total, &so.Created, &so.Status)
	return so, err
}

func (d *dbRepo) GetSupplyOrder(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) (supply.SupplyOrder, error) {
	m := db.StartMetric("GetSupplyOrder")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	so, err := scanSupplyOrder(tx.QueryRow(ctx,
		`SELECT `+supplyOrderColumns+` FROM supply_orders WHERE id = $1 `+forUpdate, supplyOrderID))
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return so, errors.WithStack(core.ErrNotFound)
		}
		return so, errors.WithStack(err)
	}

	m.Complete(nil)
	return so, nil
}

func (d *dbRepo) GetSupplyOrders(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error) {
	m := db.StartMetric("GetSupplyOrders")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	orders, err := d.querySupplyOrders(ctx, tx,
		`SELECT `+supplyOrderColumns+` FROM supply_orders ORDER BY created DESC LIMIT $1 OFFSET $2 `+forUpdate,
		limit, offset)
	m.Complete(err)
	return orders, err
}

func (d *dbRepo) GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int, options ...core.QueryOptions) ([]supply.SupplyOrder, error) {
	m := db.StartMetric("GetSupplierSupplyOrders")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	orders, err := d.querySupplyOrders(ctx, tx,
		`SELECT `+supplyOrderColumns+` FROM supply_orders WHERE supplier_id = $1 ORDER BY created DESC LIMIT $2 OFFSET $3 `+forUpdate,
		supplierID, limit, offset)
	m.Complete(err)
	return orders, err
}

func (d *dbRepo) querySupplyOrders(ctx context.Context, tx core.Conn, sql string, params ...interface{}) ([]supply.SupplyOrder, error) {
	orders := make([]supply.SupplyOrder, 0)
	rows, err := tx.Query(ctx, sql, params...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return orders, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		so, err := scanSupplyOrder(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		orders = append(orders, so)
	}

	return orders, nil
}

func (d *dbRepo) GetLines(ctx context.Context, supplyOrderID int64, options ...core.QueryOptions) ([]supply.Line, error) {
	m := db.StartMetric("GetSupplyOrderLines")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	lines := make([]supply.Line, 0)
	rows, err := tx.Query(ctx,
		`SELECT id, supply_order_id, item_id, quantity, unit_cost, amount FROM supply_order_lines WHERE supply_order_id = $1 ORDER BY item_id `+forUpdate,
		supplyOrderID)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return lines, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		line := supply.Line{}
		err = rows.Scan(&line.ID, &line.SupplyOrderID, &line.ItemID, &line.Quantity, &line.UnitCost, &line.Amount)
		if err != nil {
			m.Complete(err)
			return nil, errors.WithStack(err)
		}
		lines = append(lines, line)
	}

	m.Complete(nil)
	return lines, nil
}

func (d *dbRepo) SaveSupplyOrder(ctx context.Context, so *supply.SupplyOrder, options ...core.UpdateOptions) error {
	m := db.StartMetric("SaveSupplyOrder")
	tx := db.GetUpdateOptions(d.conn, options...)

	insert := `INSERT INTO supply_orders (supplier_id, location_id, created_by, delivered_by, total, created, status)
                      VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`

	err := tx.QueryRow(ctx, insert,
		so.SupplierID, so.LocationID, so.CreatedBy, so.DeliveredBy, so.Total, so.Created, so.Status).
		Scan(&so.ID)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	m.Complete(nil)
	return nil
}

func (d *dbRepo) UpdateSupplyOrder(ctx context.Context, so supply.SupplyOrder, options ...core.UpdateOptions) error {
	m := db.StartMetric("UpdateSupplyOrder")
	tx := db.GetUpdateOptions(d.conn, options...)

	update := `UPDATE supply_orders SET delivered_by = $2, status = $3 WHERE id = $1;`
	_, err := tx.Exec(ctx, update, so.ID, so.DeliveredBy, so.Status)
	m.Complete(err)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (d *dbRepo) SaveLine(ctx context.Context, line *supply.Line, options ...core.UpdateOptions) error {
	m := db.StartMetric("SaveSupplyOrderLine")
	tx := db.GetUpdateOptions(d.conn, options...)

	insert := `INSERT INTO supply_order_lines (supply_order_id, item_id, quantity, unit_cost, amount)
                      VALUES ($1, $2, $3, $4, $5) RETURNING id;`

	err := tx.QueryRow(ctx, insert, line.SupplyOrderID, line.ItemID, line.Quantity, line.UnitCost, line.Amount).Scan(&line.ID)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
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
