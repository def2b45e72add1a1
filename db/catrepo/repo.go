package catrepo

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/catalog"
	"github.com/threadcount/fulfillment/db"
)

type dbRepo struct {
	conn core.Conn
}

func NewPostgresRepo(conn core.Conn) catalog.Repository {
	return &dbRepo{
		conn: conn,
	}
}

func (d *dbRepo) GetModel(ctx context.Context, modelID int64, options ...core.QueryOptions) (catalog.Model, error) {
	m := db.StartMetric("GetModel")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	model := catalog.Model{}
	err := tx.QueryRow(ctx,
		`SELECT id, name, sell_price, image, created FROM models WHERE id = $1 `+forUpdate, modelID).
		Scan(&model.ID, &model.Name, &model.SellPrice, &model.Image, &model.Created)

	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return model, errors.WithStack(core.ErrNotFound)
		}
		return model, errors.WithStack(err)
	}

	m.Complete(nil)
	return model, nil
}

func (d *dbRepo) GetModels(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]catalog.Model, error) {
	m := db.StartMetric("GetModels")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	models := make([]catalog.Model, 0)
	rows, err := tx.Query(ctx,
		`SELECT id, name, sell_price, image, created FROM models ORDER BY id LIMIT $1 OFFSET $2 `+forUpdate,
		limit, offset)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return models, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		model := catalog.Model{}
		err = rows.Scan(&model.ID, &model.Name, &model.SellPrice, &model.Image, &model.Created)
		if err != nil {
			m.Complete(err)
			return nil, errors.WithStack(err)
		}
		models = append(models, model)
	}

	m.Complete(nil)
	return models, nil
}

func (d *dbRepo) GetItemDetail(ctx context.Context, itemID int64, options ...core.QueryOptions) (catalog.ItemDetail, error) {
	m := db.StartMetric("GetItemDetail")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	detail := catalog.ItemDetail{}
	err := tx.QueryRow(ctx,
		`SELECT i.id, i.model_id, i.size, i.color, m.name, m.sell_price, m.image
           FROM items i, models m
          WHERE i.id = $1 AND i.model_id = m.id `+forUpdate, itemID).
		Scan(&detail.ID, &detail.ModelID, &detail.Size, &detail.Color, &detail.Name, &detail.SellPrice, &detail.Image)

	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return detail, errors.WithStack(core.ErrNotFound)
		}
		return detail, errors.WithStack(err)
	}

	m.Complete(nil)
	return detail, nil
}

func (d *dbRepo) GetModelItems(ctx context.Context, modelID int64, options ...core.QueryOptions) ([]catalog.Item, error) {
	m := db.StartMetric("GetModelItems")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	items := make([]catalog.Item, 0)
	rows, err := tx.Query(ctx,
		`SELECT id, model_id, size, color FROM items WHERE model_id = $1 ORDER BY id `+forUpdate, modelID)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return items, errors.WithStack(core.ErrNotFound)
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		item := catalog.Item{}
		err = rows.Scan(&item.ID, &item.ModelID, &item.Size, &item.Color)
		if err != nil {
			m.Complete(err)
			return nil, errors.WithStack(err)
		}
		items = append(items, item)
	}

	m.Complete(nil)
	return items, nil
}

func (d *dbRepo) SaveModel(ctx context.Context, model *catalog.Model, options ...core.UpdateOptions) error {
	m := db.StartMetric("SaveModel")
	tx := db.GetUpdateOptions(d.conn, options...)

	ct, err := tx.Exec(ctx, `
		UPDATE models
           SET name = $2, sell_price = $3, image = $4
         WHERE id = $1;`,
		model.ID, model.Name, model.SellPrice, model.Image)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	if ct.RowsAffected() == 0 {
		_, err := tx.Exec(ctx, `
		INSERT INTO models (id, name, sell_price, image, created)
                      VALUES ($1, $2, $3, $4, $5);`,
			model.ID, model.Name, model.SellPrice, model.Image, model.Created)
		if err != nil {
			m.Complete(err)
			return errors.WithStack(err)
		}
	}
	m.Complete(nil)
	return nil
}
