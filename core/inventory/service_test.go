package inventory_test

import (
	"context"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/db"
	"github.com/threadcount/fulfillment/db/invrepo"
	"github.com/threadcount/fulfillment/queue"
	"github.com/threadcount/fulfillment/test"
)

func TestMain(m *testing.M) {
	test.ConfigLogging()
	os.Exit(m.Run())
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name string

		quantity int64
		stock    inventory.StockRecord
		stockErr error

		wantReserved     int64
		wantSaveCnt      int
		wantErr          bool
		wantInsufficient bool
		wantAvailable    int64
	}{
		{
			name:         "reserves available stock",
			quantity:     4,
			stock:        inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10, Reserved: 2},
			wantReserved: 6,
			wantSaveCnt:  1,
		},
		{
			name:             "rejects when request exceeds available",
			quantity:         9,
			stock:            inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10, Reserved: 2},
			wantErr:          true,
			wantInsufficient: true,
			wantAvailable:    8,
		},
		{
			name:             "missing record means nothing available",
			quantity:         1,
			stockErr:         core.ErrNotFound,
			wantErr:          true,
			wantInsufficient: true,
			wantAvailable:    0,
		},
		{
			name:     "rejects zero quantity",
			quantity: 0,
			stock:    inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10},
			wantErr:  true,
		},
		{
			name:     "unexpected error getting stock",
			quantity: 1,
			stockErr: errors.New("some unexpected error"),
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := invrepo.NewMockRepo()
			var saved inventory.StockRecord
			mockRepo.GetStockFunc = func(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
				if len(options) == 0 || options[0].Tx == nil || !options[0].ForUpdate {
					t.Errorf("reserve must lock the stock row inside the caller transaction")
				}
				return tc.stock, tc.stockErr
			}
			mockRepo.SaveStockFunc = func(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
				saved = record
				return nil
			}

			service := inventory.NewService(mockRepo, queue.NewMockQueue())
			tx := db.NewMockTransaction()

			got, err := service.Reserve(context.Background(), tx, 1, 7, tc.quantity)

			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got none")
			} else if !tc.wantErr && err != nil {
				t.Fatalf("did not want error, got=%v", err)
			}

			if tc.wantInsufficient {
				var insuff *core.InsufficientStockError
				if !errors.As(err, &insuff) {
					t.Fatalf("want InsufficientStockError got=%v", err)
				}
				if insuff.Available != tc.wantAvailable {
					t.Errorf("unexpected available got=%d want=%d", insuff.Available, tc.wantAvailable)
				}
			}

			mockRepo.VerifyCount("SaveStock", tc.wantSaveCnt, t)
			if tc.wantSaveCnt > 0 {
				if saved.Reserved != tc.wantReserved {
					t.Errorf("unexpected reserved got=%d want=%d", saved.Reserved, tc.wantReserved)
				}
				if got.Reserved != tc.wantReserved {
					t.Errorf("unexpected returned reserved got=%d want=%d", got.Reserved, tc.wantReserved)
				}
				if saved.Reserved > saved.OnHand || saved.Reserved < 0 {
					t.Errorf("invariant violated after reserve: %+v", saved)
				}
			}
		})
	}
}

func TestDeduct(t *testing.T) {
	tests := []struct {
		name string

		quantity int64
		stock    inventory.StockRecord

		wantOnHand    int64
		wantReserved  int64
		wantSaveCnt   int
		wantInvariant bool
	}{
		{
			name:         "consumes reserved stock",
			quantity:     4,
			stock:        inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10, Reserved: 4},
			wantOnHand:   6,
			wantReserved: 0,
			wantSaveCnt:  1,
		},
		{
			name:          "rejects deduction past reserved",
			quantity:      5,
			stock:         inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10, Reserved: 4},
			wantInvariant: true,
		},
		{
			name:          "rejects deduction past on hand",
			quantity:      5,
			stock:         inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 3, Reserved: 5},
			wantInvariant: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := invrepo.NewMockRepo()
			var saved inventory.StockRecord
			mockRepo.GetStockFunc = func(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
				return tc.stock, nil
			}
			mockRepo.SaveStockFunc = func(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
				saved = record
				return nil
			}

			service := inventory.NewService(mockRepo, queue.NewMockQueue())

			_, err := service.Deduct(context.Background(), db.NewMockTransaction(), 1, 7, tc.quantity)

			if tc.wantInvariant {
				if !errors.Is(err, core.ErrInvariantViolation) {
					t.Fatalf("want ErrInvariantViolation got=%v", err)
				}
			} else if err != nil {
				t.Fatalf("did not want error, got=%v", err)
			}

			mockRepo.VerifyCount("SaveStock", tc.wantSaveCnt, t)
			if tc.wantSaveCnt > 0 && (saved.OnHand != tc.wantOnHand || saved.Reserved != tc.wantReserved) {
				t.Errorf("unexpected counters got=%+v want onHand=%d reserved=%d", saved, tc.wantOnHand, tc.wantReserved)
			}
		})
	}
}

func TestCreditCreatesMissingRecord(t *testing.T) {
	mockRepo := invrepo.NewMockRepo()
	var saved inventory.StockRecord
	mockRepo.GetStockFunc = func(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
		return inventory.StockRecord{}, core.ErrNotFound
	}
	mockRepo.SaveStockFunc = func(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
		saved = record
		return nil
	}

	service := inventory.NewService(mockRepo, queue.NewMockQueue())

	got, err := service.Credit(context.Background(), db.NewMockTransaction(), 2, 9, 3)
	if err != nil {
		t.Fatalf("did not want error, got=%v", err)
	}

	want := inventory.StockRecord{LocationID: 2, ItemID: 9, OnHand: 3, Reserved: 0}
	if saved != want || got != want {
		t.Errorf("unexpected record saved=%+v got=%+v want=%+v", saved, got, want)
	}
}

func TestSetOnHand(t *testing.T) {
	tests := []struct {
		name string

		quantity int64
		stock    inventory.StockRecord
		stockErr error

		wantOnHand    int64
		wantTxCallCnt map[string]int
		wantErr       bool
	}{
		{
			name:          "overwrites on hand leaving reserved untouched",
			quantity:      20,
			stock:         inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10, Reserved: 4},
			wantOnHand:    20,
			wantTxCallCnt: map[string]int{"Commit": 1, "Rollback": 0},
		},
		{
			name:          "creates record when absent",
			quantity:      5,
			stockErr:      core.ErrNotFound,
			wantOnHand:    5,
			wantTxCallCnt: map[string]int{"Commit": 1, "Rollback": 0},
		},
		{
			name:          "rejects overwrite below reserved",
			quantity:      3,
			stock:         inventory.StockRecord{LocationID: 1, ItemID: 7, OnHand: 10, Reserved: 4},
			wantTxCallCnt: map[string]int{"Commit": 0, "Rollback": 1},
			wantErr:       true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := invrepo.NewMockRepo()
			var saved inventory.StockRecord
			mockRepo.GetStockFunc = func(ctx context.Context, locationID, itemID int64, options ...core.QueryOptions) (inventory.StockRecord, error) {
				return tc.stock, tc.stockErr
			}
			mockRepo.SaveStockFunc = func(ctx context.Context, record inventory.StockRecord, options ...core.UpdateOptions) error {
				saved = record
				return nil
			}
			mockTx := db.NewMockTransaction()
			mockRepo.BeginTransactionFunc = func(ctx context.Context) (core.Transaction, error) {
				return mockTx, nil
			}

			service := inventory.NewService(mockRepo, queue.NewMockQueue())

			_, err := service.SetOnHand(context.Background(), 1, 7, tc.quantity)

			if tc.wantErr {
				if !errors.Is(err, core.ErrInvariantViolation) {
					t.Fatalf("want ErrInvariantViolation got=%v", err)
				}
			} else if err != nil {
				t.Fatalf("did not want error, got=%v", err)
			}

			for f, c := range tc.wantTxCallCnt {
				mockTx.VerifyCount(f, c, t)
			}
			if !tc.wantErr {
				if saved.OnHand != tc.wantOnHand {
					t.Errorf("unexpected on hand got=%d want=%d", saved.OnHand, tc.wantOnHand)
				}
				if saved.Reserved != tc.stock.Reserved {
					t.Errorf("reserved changed got=%d want=%d", saved.Reserved, tc.stock.Reserved)
				}
			}
		})
	}
}
