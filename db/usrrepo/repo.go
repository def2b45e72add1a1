package usrrepo

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/user"
	"github.com/threadcount/fulfillment/db"
)

type dbRepo struct {
	conn core.Conn
}

func NewPostgresRepo(conn core.Conn) user.Repository {
	return &dbRepo{
		conn: conn,
	}
}

func (d *dbRepo) Create(ctx context.Context, u *user.User, options ...core.UpdateOptions) error {
	m := db.StartMetric("CreateUser")
	tx := db.GetUpdateOptions(d.conn, options...)

	insert := `INSERT INTO users (username, password, role, supplier_id, created)
                      VALUES ($1, $2, $3, $4, $5) RETURNING id;`

	err := tx.QueryRow(ctx, insert, u.Username, u.HashedPassword, u.Role, u.SupplierID, u.Created).Scan(&u.ID)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	m.Complete(nil)
	return nil
}

func (d *dbRepo) Get(ctx context.Context, username string, options ...core.QueryOptions) (user.User, error) {
	m := db.StartMetric("GetUser")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	u := user.User{}
	err := tx.QueryRow(ctx,
		`SELECT id, username, password, role, supplier_id, created FROM users WHERE username = $1 `+forUpdate,
		username).
		Scan(&u.ID, &u.Username, &u.HashedPassword, &u.Role, &u.SupplierID, &u.Created)

	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return u, errors.WithStack(core.ErrNotFound)
		}
		return u, errors.WithStack(err)
	}

	m.Complete(nil)
	return u, nil
}

func (d *dbRepo) Delete(ctx context.Context, username string, options ...core.UpdateOptions) error {
	m := db.StartMetric("DeleteUser")
	tx := db.GetUpdateOptions(d.conn, options...)

	ct, err := tx.Exec(ctx, `DELETE FROM users WHERE username = $1;`, username)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	if ct.RowsAffected() == 0 {
		m.Complete(core.ErrNotFound)
		return errors.WithStack(core.ErrNotFound)
	}
	m.Complete(nil)
	return nil
}
