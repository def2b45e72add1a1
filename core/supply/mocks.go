package supply

import "context"

type MockSupplyService struct {
	CreateFunc  func(ctx context.Context, req CreateRequest) (SupplyOrder, error)
	CancelFunc  func(ctx context.Context, supplyOrderID int64) (SupplyOrder, error)
	DeliverFunc func(ctx context.Context, supplyOrderID, supplierID int64) (SupplyOrder, error)

	GetSupplyOrderFunc          func(ctx context.Context, supplyOrderID int64) (SupplyOrder, error)
	GetLinesFunc                func(ctx context.Context, supplyOrderID int64) ([]Line, error)
	GetSupplyOrdersFunc         func(ctx context.Context, limit, offset int) ([]SupplyOrder, error)
	GetSupplierSupplyOrdersFunc func(ctx context.Context, supplierID int64, limit, offset int) ([]SupplyOrder, error)
}

func NewMockSupplyService() MockSupplyService {
	return MockSupplyService{
		CreateFunc: func(ctx context.Context, req CreateRequest) (SupplyOrder, error) { return SupplyOrder{}, nil },
		CancelFunc: func(ctx context.Context, supplyOrderID int64) (SupplyOrder, error) { return SupplyOrder{}, nil },
		DeliverFunc: func(ctx context.Context, supplyOrderID, supplierID int64) (SupplyOrder, error) {
			return SupplyOrder{}, nil
		},
		GetSupplyOrderFunc: func(ctx context.Context, supplyOrderID int64) (SupplyOrder, error) {
			return SupplyOrder{}, nil
		},
		GetLinesFunc: func(ctx context.Context, supplyOrderID int64) ([]Line, error) { return []Line{}, nil },
		GetSupplyOrdersFunc: func(ctx context.Context, limit, offset int) ([]SupplyOrder, error) {
			return []SupplyOrder{}, nil
		},
		GetSupplierSupplyOrdersFunc: func(ctx context.Context, supplierID int64, limit, offset int) ([]SupplyOrder, error) {
			return []SupplyOrder{}, nil
		},
	}
}

func (s *MockSupplyService) Create(ctx context.Context, req CreateRequest) (SupplyOrder, error) {
	return s.CreateFunc(ctx, req)
}

func (s *MockSupplyService) Cancel(ctx context.Context, supplyOrderID int64) (SupplyOrder, error) {
	return s.CancelFunc(ctx, supplyOrderID)
}

func (s *MockSupplyService) Deliver(ctx context.Context, supplyOrderID, supplierID int64) (SupplyOrder, error) {
	return s.DeliverFunc(ctx, supplyOrderID, supplierID)
}

func (s *MockSupplyService) GetSupplyOrder(ctx context.Context, supplyOrderID int64) (SupplyOrder, error) {
	return s.GetSupplyOrderFunc(ctx, supplyOrderID)
}

func (s *MockSupplyService) GetLines(ctx context.Context, supplyOrderID int64) ([]Line, error) {
	return s.GetLinesFunc(ctx, supplyOrderID)
}

func (s *MockSupplyService) GetSupplyOrders(ctx context.Context, limit, offset int) ([]SupplyOrder, error) {
	return s.GetSupplyOrdersFunc(ctx, limit, offset)
}

func (s *MockSupplyService) GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int) ([]SupplyOrder, error) {
	return s.GetSupplierSupplyOrdersFunc(ctx, supplierID, limit, offset)
}
