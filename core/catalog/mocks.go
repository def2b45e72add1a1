package catalog

import "context"

type MockCatalogService struct {
	GetModelFunc      func(ctx context.Context, modelID int64) (Model, error)
	GetModelsFunc     func(ctx context.Context, limit, offset int) ([]Model, error)
	GetItemDetailFunc func(ctx context.Context, itemID int64) (ItemDetail, error)
	GetModelItemsFunc func(ctx context.Context, modelID int64) ([]Item, error)
	SaveModelFunc     func(ctx context.Context, model Model) error
}

func NewMockCatalogService() MockCatalogService {
	return MockCatalogService{
		GetModelFunc:      func(ctx context.Context, modelID int64) (Model, error) { return Model{}, nil },
		GetModelsFunc:     func(ctx context.Context, limit, offset int) ([]Model, error) { return []Model{}, nil },
		GetItemDetailFunc: func(ctx context.Context, itemID int64) (ItemDetail, error) { return ItemDetail{}, nil },
		GetModelItemsFunc: func(ctx context.Context, modelID int64) ([]Item, error) { return []Item{}, nil },
		SaveModelFunc:     func(ctx context.Context, model Model) error { return nil },
	}
}

func (s *MockCatalogService) GetModel(ctx context.Context, modelID int64) (Model, error) {
	return s.GetModelFunc(ctx, modelID)
}

func (s *MockCatalogService) GetModels(ctx context.Context, limit, offset int) ([]Model, error) {
	return s.GetModelsFunc(ctx, limit, offset)
}

func (s *MockCatalogService) GetItemDetail(ctx context.Context, itemID int64) (ItemDetail, error) {
	return s.GetItemDetailFunc(ctx, itemID)
}

func (s *MockCatalogService) GetModelItems(ctx context.Context, modelID int64) ([]Item, error) {
	return s.GetModelItemsFunc(ctx, modelID)
}

func (s *MockCatalogService) SaveModel(ctx context.Context, model Model) error {
	return s.SaveModelFunc(ctx, model)
}
