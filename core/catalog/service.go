package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
)

type Repository interface {
	GetModel(ctx context.Context, modelID int64, options ...core.QueryOptions) (Model, error)
	GetModels(ctx context.Context, limit, offset int, options ...core.QueryOptions) ([]Model, error)
	GetItemDetail(ctx context.Context, itemID int64, options ...core.QueryOptions) (ItemDetail, error)
	GetModelItems(ctx context.Context, modelID int64, options ...core.QueryOptions) ([]Item, error)

	SaveModel(ctx context.Context, model *Model, options ...core.UpdateOptions) error
}

type Service interface {
	GetModel(ctx context.Context, modelID int64) (Model, error)
	GetModels(ctx context.Context, limit, offset int) ([]Model, error)
	GetItemDetail(ctx context.Context, itemID int64) (ItemDetail, error)
	GetModelItems(ctx context.Context, modelID int64) ([]Item, error)
	SaveModel(ctx context.Context, model Model) error
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

type service struct {
	repo Repository
}

func (s *service) GetModel(ctx context.Context, modelID int64) (Model, error) {
	model, err := s.repo.GetModel(ctx, modelID)
	if err != nil {
		return model, errors.WithStack(err)
	}
	return model, nil
}

func (s *service) GetModels(ctx context.Context, limit, offset int) ([]Model, error) {
	return s.repo.GetModels(ctx, limit, offset)
}

func (s *service) GetItemDetail(ctx context.Context, itemID int64) (ItemDetail, error) {
	detail, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		return detail, errors.WithStack(err)
	}
	return detail, nil
}

func (s *service) GetModelItems(ctx context.Context, modelID int64) ([]Item, error) {
	return s.repo.GetModelItems(ctx, modelID)
}

// SaveModel upserts a model coming from the merchandising queue.
func (s *service) SaveModel(ctx context.Context, model Model) error {
	const funcName = "SaveModel"

	log.Info().
		Str("func", funcName).
		Int64("modelId", model.ID).
		Str("name", model.Name).
		Msg("saving model")

	if err := s.repo.SaveModel(ctx, &model); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
