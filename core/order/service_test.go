package order_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/cart"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/db"
	"github.com/threadcount/fulfillment/db/ordrepo"
	"github.com/threadcount/fulfillment/queue"
	"github.com/threadcount/fulfillment/test"
)

const testLocationID = int64(1)

func TestMain(m *testing.M) {
	test.ConfigLogging()
	os.Exit(m.Run())
}

func cartOf(lines ...cart.Line) cart.Cart {
	crt := cart.New()
	for _, l := range lines {
		crt.Lines[l.ItemID] = l
	}
	return crt
}

func TestCheckout(t *testing.T) {
	crt := cartOf(
		cart.Line{ItemID: 5, Quantity: 1, UnitPrice: decimal.RequireFromString("4.50")},
		cart.Line{ItemID: 3, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
	)

	tests := []struct {
		name string

		crt        cart.Cart
		reserveErr map[int64]error

		wantErr          error
		wantInsufficient bool
		wantTotal        string
		wantTxCallCnt    map[string]int
		wantSaveInvCnt   int
		wantSaveLineCnt  int
	}{
		{
			name:            "reserves every line and commits",
			crt:             crt,
			wantTotal:       "24.50",
			wantTxCallCnt:   map[string]int{"Commit": 1, "Rollback": 0},
			wantSaveInvCnt:  1,
			wantSaveLineCnt: 2,
		},
		{
			name:    "rejects empty cart",
			crt:     cart.New(),
			wantErr: core.ErrEmptyCart,
		},
		{
			name:             "one short line aborts the whole checkout",
			crt:              crt,
			reserveErr:       map[int64]error{5: &core.InsufficientStockError{ItemID: 5, Available: 0}},
			wantInsufficient: true,
			wantTxCallCnt:    map[string]int{"Commit": 0, "Rollback": 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := ordrepo.NewMockRepo()
			mockTx := db.NewMockTransaction()
			mockRepo.BeginTransactionFunc = func(ctx context.Context) (core.Transaction, error) {
				return mockTx, nil
			}
			var savedInvoice order.Invoice
			mockRepo.SaveInvoiceFunc = func(ctx context.Context, invoice *order.Invoice, options ...core.UpdateOptions) error {
				invoice.ID = 42
				savedInvoice = *invoice
				return nil
			}

			ledger := inventory.NewMockInventoryService()
			var reservedOrder []int64
			ledger.ReserveFunc = func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (inventory.StockRecord, error) {
				if tx == nil {
					t.Errorf("reserve must run inside the checkout transaction")
				}
				if err := tc.reserveErr[itemID]; err != nil {
					return inventory.StockRecord{}, err
				}
				reservedOrder = append(reservedOrder, itemID)
				return inventory.StockRecord{LocationID: locationID, ItemID: itemID}, nil
			}

			service := order.NewService(mockRepo, &ledger, queue.NewMockQueue(), testLocationID)

			inv, err := service.Checkout(context.Background(), 10, tc.crt)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v got=%v", tc.wantErr, err)
				}
				mockRepo.VerifyCount("BeginTransaction", 0, t)
				return
			}
			if tc.wantInsufficient {
				var insuff *core.InsufficientStockError
				if !errors.As(err, &insuff) {
					t.Fatalf("want InsufficientStockError got=%v", err)
				}
			} else if err != nil {
				t.Fatalf("did not want error, got=%v", err)
			}

			for f, c := range tc.wantTxCallCnt {
				mockTx.VerifyCount(f, c, t)
			}
			mockRepo.VerifyCount("SaveInvoice", tc.wantSaveInvCnt, t)
			mockRepo.VerifyCount("SaveLine", tc.wantSaveLineCnt, t)

			if tc.wantSaveInvCnt > 0 {
				for i := 1; i < len(reservedOrder); i++ {
					if reservedOrder[i-1] >= reservedOrder[i] {
						t.Errorf("reservations out of item order: %v", reservedOrder)
					}
				}
				if savedInvoice.Status != order.StatusPending {
					t.Errorf("unexpected status got=%s want=%s", savedInvoice.Status, order.StatusPending)
				}
				if got := savedInvoice.Total.StringFixed(2); got != tc.wantTotal {
					t.Errorf("unexpected total got=%s want=%s", got, tc.wantTotal)
				}
				if inv.ID != 42 {
					t.Errorf("invoice id not returned, got=%d", inv.ID)
				}
			}
		})
	}
}

// Overlapping checkouts against the same stock never oversell: with S units
// available, exactly min(N, S) of N single-unit checkouts succeed.
func TestCheckoutConcurrent(t *testing.T) {
	const stock = int64(5)
	const customers = 8

	var mu sync.Mutex
	available := stock

	mockRepo := ordrepo.NewMockRepo()
	mockRepo.BeginTransactionFunc = func(ctx context.Context) (core.Transaction, error) {
		return db.NewMockTransaction(), nil
	}

	ledger := inventory.NewMockInventoryService()
	ledger.ReserveFunc = func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (inventory.StockRecord, error) {
		mu.Lock()
		defer mu.Unlock()
		if quantity > available {
			return inventory.StockRecord{}, &core.InsufficientStockError{ItemID: itemID, Available: available}
		}
		available -= quantity
		return inventory.StockRecord{LocationID: locationID, ItemID: itemID, OnHand: stock, Reserved: stock - available}, nil
	}

	service := order.NewService(mockRepo, &ledger, queue.NewMockQueue(), testLocationID)

	var wg sync.WaitGroup
	results := make(chan error, customers)
	for i := 0; i < customers; i++ {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()
			crt := cartOf(cart.Line{ItemID: 7, Quantity: 1, UnitPrice: decimal.RequireFromString("2.00")})
			_, err := service.Checkout(context.Background(), customerID, crt)
			results <- err
		}(int64(i))
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var insuff *core.InsufficientStockError
		if !errors.As(err, &insuff) {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != int(stock) {
		t.Errorf("unexpected successful checkouts got=%d want=%d", succeeded, stock)
	}
	if available != 0 {
		t.Errorf("stock left unreserved got=%d want=0", available)
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name string

		invoice order.Invoice

		wantStatus     order.Status
		wantTransition bool
		wantTxCallCnt  map[string]int
	}{
		{
			name:          "claims a pending invoice",
			invoice:       order.Invoice{ID: 1, Status: order.StatusPending},
			wantStatus:    order.StatusAccepted,
			wantTxCallCnt: map[string]int{"Commit": 1, "Rollback": 0},
		},
		{
			name:           "rejects an already accepted invoice",
			invoice:        order.Invoice{ID: 1, Status: order.StatusAccepted},
			wantTransition: true,
			wantTxCallCnt:  map[string]int{"Commit": 0, "Rollback": 1},
		},
		{
			name:           "rejects a completed invoice",
			invoice:        order.Invoice{ID: 1, Status: order.StatusCompleted},
			wantTransition: true,
			wantTxCallCnt:  map[string]int{"Commit": 0, "Rollback": 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := ordrepo.NewMockRepo()
			mockTx := db.NewMockTransaction()
			mockRepo.BeginTransactionFunc = func(ctx context.Context) (core.Transaction, error) {
				return mockTx, nil
			}
			mockRepo.GetInvoiceFunc = func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error) {
				if len(options) == 0 || !options[0].ForUpdate {
					t.Errorf("accept must lock the invoice row")
				}
				return tc.invoice, nil
			}
			var updated order.Invoice
			mockRepo.UpdateInvoiceFunc = func(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error {
				updated = invoice
				return nil
			}

			ledger := inventory.NewMockInventoryService()
			service := order.NewService(mockRepo, &ledger, queue.NewMockQueue(), testLocationID)

			_, err := service.Accept(context.Background(), 1, 99)

			if tc.wantTransition {
				var transition *core.InvalidTransitionError
				if !errors.As(err, &transition) {
					t.Fatalf("want InvalidTransitionError got=%v", err)
				}
			} else if err != nil {
				t.Fatalf("did not want error, got=%v", err)
			}

			for f, c := range tc.wantTxCallCnt {
				mockTx.VerifyCount(f, c, t)
			}
			if !tc.wantTransition {
				if updated.Status != tc.wantStatus {
					t.Errorf("unexpected status got=%s want=%s", updated.Status, tc.wantStatus)
				}
				if updated.EmployeeID == nil || *updated.EmployeeID != 99 {
					t.Errorf("employee not stamped: %+v", updated)
				}
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	owner := int64(99)
	other := int64(12)

	tests := []struct {
		name string

		invoice  order.Invoice
		employee int64

		wantErr        error
		wantTransition bool
	}{
		{
			name:     "prepares an accepted invoice",
			invoice:  order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusAccepted},
			employee: owner,
		},
		{
			name:     "preparing twice is allowed",
			invoice:  order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusPrepared},
			employee: owner,
		},
		{
			name:     "rejects an employee who did not accept it",
			invoice:  order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusAccepted},
			employee: other,
			wantErr:  core.ErrNotOwner,
		},
		{
			name:     "rejects an unclaimed invoice",
			invoice:  order.Invoice{ID: 1, Status: order.StatusPending},
			employee: owner,
			wantErr:  core.ErrNotOwner,
		},
		{
			name:           "rejects a completed invoice",
			invoice:        order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusCompleted},
			employee:       owner,
			wantTransition: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := ordrepo.NewMockRepo()
			mockRepo.GetInvoiceFunc = func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error) {
				return tc.invoice, nil
			}
			var updated order.Invoice
			mockRepo.UpdateInvoiceFunc = func(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error {
				updated = invoice
				return nil
			}

			ledger := inventory.NewMockInventoryService()
			service := order.NewService(mockRepo, &ledger, queue.NewMockQueue(), testLocationID)

			_, err := service.Prepare(context.Background(), 1, tc.employee)

			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v got=%v", tc.wantErr, err)
				}
			case tc.wantTransition:
				var transition *core.InvalidTransitionError
				if !errors.As(err, &transition) {
					t.Fatalf("want InvalidTransitionError got=%v", err)
				}
			default:
				if err != nil {
					t.Fatalf("did not want error, got=%v", err)
				}
				if updated.Status != order.StatusPrepared {
					t.Errorf("unexpected status got=%s want=%s", updated.Status, order.StatusPrepared)
				}
			}
		})
	}
}

func TestComplete(t *testing.T) {
	owner := int64(99)

	tests := []struct {
		name string

		invoice order.Invoice
		lines   []order.Line

		employee int64

		wantErr        error
		wantTransition bool
		wantDeductCnt  int
	}{
		{
			name:    "deducts every line and completes",
			invoice: order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusAccepted},
			lines: []order.Line{
				{InvoiceID: 1, ItemID: 3, Quantity: 2},
				{InvoiceID: 1, ItemID: 5, Quantity: 1},
			},
			employee:      owner,
			wantDeductCnt: 2,
		},
		{
			name:    "completes from prepared",
			invoice: order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusPrepared},
			lines: []order.Line{
				{InvoiceID: 1, ItemID: 3, Quantity: 2},
			},
			employee:      owner,
			wantDeductCnt: 1,
		},
		{
			name:           "pending invoices cannot skip acceptance",
			invoice:        order.Invoice{ID: 1, Status: order.StatusPending},
			employee:       owner,
			wantErr:        core.ErrNotOwner,
			wantTransition: false,
		},
		{
			name:           "rejects a completed invoice",
			invoice:        order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusCompleted},
			employee:       owner,
			wantTransition: true,
		},
		{
			name:     "rejects an employee who did not accept it",
			invoice:  order.Invoice{ID: 1, EmployeeID: &owner, Status: order.StatusAccepted},
			employee: 12,
			wantErr:  core.ErrNotOwner,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := ordrepo.NewMockRepo()
			mockTx := db.NewMockTransaction()
			mockRepo.BeginTransactionFunc = func(ctx context.Context) (core.Transaction, error) {
				return mockTx, nil
			}
			mockRepo.GetInvoiceFunc = func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) (order.Invoice, error) {
				return tc.invoice, nil
			}
			mockRepo.GetLinesFunc = func(ctx context.Context, invoiceID int64, options ...core.QueryOptions) ([]order.Line, error) {
				return tc.lines, nil
			}
			var updated order.Invoice
			mockRepo.UpdateInvoiceFunc = func(ctx context.Context, invoice order.Invoice, options ...core.UpdateOptions) error {
				updated = invoice
				return nil
			}

			deductCnt := 0
			ledger := inventory.NewMockInventoryService()
			ledger.DeductFunc = func(ctx context.Context, tx core.Transaction, locationID, itemID, quantity int64) (inventory.StockRecord, error) {
				if tx == nil {
					t.Errorf("deduct must run inside the completion transaction")
				}
				deductCnt++
				return inventory.StockRecord{LocationID: locationID, ItemID: itemID}, nil
			}

			service := order.NewService(mockRepo, &ledger, queue.NewMockQueue(), testLocationID)

			_, err := service.Complete(context.Background(), 1, tc.employee)

			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v got=%v", tc.wantErr, err)
				}
			case tc.wantTransition:
				var transition *core.InvalidTransitionError
				if !errors.As(err, &transition) {
					t.Fatalf("want InvalidTransitionError got=%v", err)
				}
			default:
				if err != nil {
					t.Fatalf("did not want error, got=%v", err)
				}
				if updated.Status != order.StatusCompleted {
					t.Errorf("unexpected status got=%s want=%s", updated.Status, order.StatusCompleted)
				}
				mockTx.VerifyCount("Commit", 1, t)
			}

			if deductCnt != tc.wantDeductCnt {
				t.Errorf("unexpected deductions got=%d want=%d", deductCnt, tc.wantDeductCnt)
			}
		})
	}
}
