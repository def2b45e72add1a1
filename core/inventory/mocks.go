package inventory

import (
	"context"

	"github.com/threadcount/fulfillment/core"
)

type MockInventoryService struct {
	GetStockFunc     func(ctx context.Context, locationID, itemID int64) (StockRecord, error)
	GetAvailableFunc func(ctx context.Context, locationID, itemID int64) (int64, error)
	GetAllStockFunc  func(ctx context.Context, limit, offset int) ([]StockRecord, error)
	SetOnHandFunc    func(ctx context.Context, locationID, itemID, quantity int64) (StockRecord, error)

	ReserveFunc      func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error)
	DeductFunc       func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error)
	CreditFunc       func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error)
	PublishStockFunc func(ctx context.Context, record StockRecord)

	SubscribeStockFunc   func(ch chan<- StockRecord) (id StockSubscriptionID)
	UnsubscribeStockFunc func(id StockSubscriptionID)
}

func NewMockInventoryService() MockInventoryService {
	return MockInventoryService{
		GetStockFunc: func(ctx context.Context, locationID, itemID int64) (StockRecord, error) {
			return StockRecord{}, nil
		},
		GetAvailableFunc: func(ctx context.Context, locationID, itemID int64) (int64, error) { return 0, nil },
		GetAllStockFunc: func(ctx context.Context, limit, offset int) ([]StockRecord, error) {
			return []StockRecord{}, nil
		},
		SetOnHandFunc: func(ctx context.Context, locationID, itemID, quantity int64) (StockRecord, error) {
			return StockRecord{}, nil
		},
		ReserveFunc: func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
			return StockRecord{}, nil
		},
		DeductFunc: func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
			return StockRecord{}, nil
		},
		CreditFunc: func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
			return StockRecord{}, nil
		},
		PublishStockFunc:     func(ctx context.Context, record StockRecord) {},
		SubscribeStockFunc:   func(ch chan<- StockRecord) (id StockSubscriptionID) { return "" },
		UnsubscribeStockFunc: func(id StockSubscriptionID) {},
	}
}

func (s *MockInventoryService) GetStock(ctx context.Context, locationID, itemID int64) (StockRecord, error) {
	return s.GetStockFunc(ctx, locationID, itemID)
}

func (s *MockInventoryService) GetAvailable(ctx context.Context, locationID, itemID int64) (int64, error) {
	return s.GetAvailableFunc(ctx, locationID, itemID)
}

func (s *MockInventoryService) GetAllStock(ctx context.Context, limit, offset int) ([]StockRecord, error) {
	return s.GetAllStockFunc(ctx, limit, offset)
}

func (s *MockInventoryService) SetOnHand(ctx context.Context, locationID, itemID, quantity int64) (StockRecord, error) {
	return s.SetOnHandFunc(ctx, locationID, itemID, quantity)
}

func (s *MockInventoryService) Reserve(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
	return s.ReserveFunc(ctx, tx, locationID, itemID, quantity)
}

func (s *MockInventoryService) Deduct(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
	return s.DeductFunc(ctx, tx, locationID, itemID, quantity)
}

func (s *MockInventoryService) Credit(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (StockRecord, error) {
	return s.CreditFunc(ctx, tx, locationID, itemID, quantity)
}

func (s *MockInventoryService) PublishStock(ctx context.Context, record StockRecord) {
	s.PublishStockFunc(ctx, record)
}

func (s *MockInventoryService) SubscribeStock(ch chan<- StockRecord) (id StockSubscriptionID) {
	return s.SubscribeStockFunc(ch)
}

func (s *MockInventoryService) UnsubscribeStock(id StockSubscriptionID) {
	s.UnsubscribeStockFunc(id)
}
