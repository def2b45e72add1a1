package cart

import "context"

type MockCartService struct {
	GetFunc              func(ctx context.Context, sessionID string) (Cart, error)
	AddItemFunc          func(ctx context.Context, sessionID string, itemID int64) (Cart, error)
	UpdateQuantitiesFunc func(ctx context.Context, sessionID string, quantities map[int64]int64) (Cart, error)
	ClearFunc            func(ctx context.Context, sessionID string)
}

func NewMockCartService() MockCartService {
	return MockCartService{
		GetFunc:     func(ctx context.Context, sessionID string) (Cart, error) { return New(), nil },
		AddItemFunc: func(ctx context.Context, sessionID string, itemID int64) (Cart, error) { return New(), nil },
		UpdateQuantitiesFunc: func(ctx context.Context, sessionID string, quantities map[int64]int64) (Cart, error) {
			return New(), nil
		},
		ClearFunc: func(ctx context.Context, sessionID string) {},
	}
}

func (s *MockCartService) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.GetFunc(ctx, sessionID)
}

func (s *MockCartService) AddItem(ctx context.Context, sessionID string, itemID int64) (Cart, error) {
	return s.AddItemFunc(ctx, sessionID, itemID)
}

func (s *MockCartService) UpdateQuantities(ctx context.Context, sessionID string, quantities map[int64]int64) (Cart, error) {
	return s.UpdateQuantitiesFunc(ctx, sessionID, quantities)
}

func (s *MockCartService) Clear(ctx context.Context, sessionID string) {
	s.ClearFunc(ctx, sessionID)
}
