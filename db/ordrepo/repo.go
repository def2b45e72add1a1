package ordrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/db"
)

type dbRepo struct {
	conn core.Conn
}

func NewPostgresRepo(conn core.Conn) order.Repository {
	return &dbRepo{
		conn: conn,
	}
}

const invoiceColumns = "id, customer_id, employee_id, total, created, status"

func scanInvoice(row pgx.Row) (order.Invoice, error) {
	inv := order.Invoice{}
	err := row.Scan(&inv.ID, &inv.CustomerID, &inv.EmployeeID, &inv.Total, &inv.Created, &inv.Status)
	return inv, err
}

func (d *dbRepo) GetInvoice(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error) {
	m := db.StartMetric("GetInvoice")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	inv, err := scanInvoice(tx.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 `+forUpdate, invoiceID))
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return inv, errors.WithStack(core.ErrNotFound)
		}
		return inv, errors.WithStack(err)
	}

	m.Complete(nil)
	return inv, nil
}

func (d *dbRepo) GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
	m := db.StartMetric("GetInvoicesByCustomer")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	invoices, err := d.queryInvoices(ctx, tx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE customer_id = $1 ORDER BY created DESC LIMIT $2 OFFSET $3 `+forUpdate,
		customerID, limit, offset)
	m.Complete(err)
	return invoices, err
}

func (d *dbRepo) GetInvoicesByStatus(ctx context.Context, status order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
	m := db.StartMetric("GetInvoicesByStatus")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	invoices, err := d.queryInvoices(ctx, tx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE status = $1 ORDER BY created ASC LIMIT $2 OFFSET $3 `+forUpdate,
		status, limit, offset)
	m.Complete(err)
	return invoices, err
}

func (d *dbRepo) GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []order.Status, limit, offset int, options ...core.QueryOptions) ([]order.Invoice, error) {
	m := db.StartMetric("GetEmployeeInvoices")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	params := []interface{}{employeeID, limit, offset}
	whereClause := " WHERE employee_id = $1"

	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, status := range statuses {
			params = append(params, status)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(params)))
		}
		whereClause += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	invoices, err := d.queryInvoices(ctx, tx,
		`SELECT `+invoiceColumns+` FROM invoices`+whereClause+` ORDER BY created ASC LIMIT $2 OFFSET $3 `+forUpdate,
		params...)
	m.Complete(err)
	return invoices, err
}

func (d *dbRepo) queryInvoices(ctx context.Context, tx core.Conn, sql string, params ...interface{}) ([]order.Invoice, error) {
	invoices := make([]order.Invoice, 0)
	rows, err := tx.Query(ctx, sql, params...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoices, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, nil
}

func (d *dbRepo) GetLines(ctx context.Context, invoiceID int64, options ...core.QueryOptions) ([]order.Line, error) {
	m := db.StartMetric("GetInvoiceLines")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	lines := make([]order.Line, 0)
	rows, err := tx.Query(ctx,
		`SELECT id, invoice_id, item_id, quantity, amount FROM invoice_lines WHERE invoice_id = $1 ORDER BY item_id `+forUpdate,
		invoiceID)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return lines, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		line := order.Line{}
		err = rows.Scan(&line.ID, &line.InvoiceID, &line.ItemID, &line.Quantity, &line.Amount)
		if err != nil {
			m.Complete(err)
			return nil, errors.WithStack(err)
		}
		lines = append(lines, line)
	}

	m.Complete(nil)
	return lines, nil
}

func (d *dbRepo) SaveInvoice(ctx context.Context, invoice *order.Invoice, options ...core.UpdateOptions) error {
	m := db.StartMetric("SaveInvoice")
	tx := db.GetUpdateOptions(d.conn, options...)

	insert := `INSERT INTO invoices (customer_id, employee_id, total, created, status)
                      VALUES ($1, $2, $3, $4, $5) RETURNING id;`

	err := tx.QueryRow(ctx, insert,
		invoice.CustomerID, invoice.EmployeeID, invoice.Total, invoice.Created, invoice.Status).
		Scan(&invoice.ID)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	m.Complete(nil)
	return nil
}

func (d *dbRepo) UpdateInvoice(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error {
	m := db.StartMetric("UpdateInvoice")
	tx := db.GetUpdateOptions(d.conn, options...)

	update := `UPDATE invoices SET employee_id = $2, status = $3 WHERE id = $1;`
	_, err := tx.Exec(ctx, update, invoice.ID, invoice.EmployeeID, invoice.Status)
	m.Complete(err)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (d *dbRepo) SaveLine(ctx context.Context, line *order.Line, options ...core.UpdateOptions) error {
	m := db.StartMetric("SaveInvoiceLine")
	tx := db.GetUpdateOptions(d.conn, options...)

	insert := `INSERT INTO invoice_lines (invoice_id, item_id, quantity, amount)
                      VALUES ($1, $2, $3, $4) RETURNING id;`

	err := tx.QueryRow(ctx, insert, line.InvoiceID, line.ItemID, line.Quantity, line.Amount).Scan(&line.ID)
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
