package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/threadcount/fulfillment/api"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/cart"
)

func setupCartTestServer() (*httptest.Server, *cart.MockCartService) {
	mockSvc := cart.NewMockCartService()
	cartApi := api.NewCartApi(&mockSvc)
	r := chi.NewRouter()
	cartApi.ConfigureRouter(r)
	ts := httptest.NewServer(r)

	return ts, &mockSvc
}

func getTestCart() cart.Cart {
	crt := cart.New()
	crt.Lines[7] = cart.Line{ItemID: 7, ModelID: 1, Name: "Crewneck Tee", Size: "M", Color: "Black", Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")}
	crt.Lines[9] = cart.Line{ItemID: 9, ModelID: 2, Name: "Slim Jeans", Size: "32", Color: "Indigo", Quantity: 1, UnitPrice: decimal.RequireFromString("49.50")}
	return crt
}

func TestCartGet(t *testing.T) {
	ts, mockSvc := setupCartTestServer()
	defer ts.Close()

	gotSession := ""
	mockSvc.GetFunc = func(ctx context.Context, sessionID string) (cart.Cart, error) {
		gotSession = sessionID
		return getTestCart(), nil
	}

	res := get(ts.URL+"/session1", t)

	if res.StatusCode != http.StatusOK {
		t.Errorf("status code got=%d want=%d", res.StatusCode, http.StatusOK)
	}
	if gotSession != "session1" {
		t.Errorf("session got=%s want=%s", gotSession, "session1")
	}

	got := api.CartResponse{}
	unmarshal(res, &got, t)

	if len(got.Lines) != 2 {
		t.Fatalf("line count got=%d want=%d", len(got.Lines), 2)
	}
	if got.Lines[0].ItemID != 7 || got.Lines[1].ItemID != 9 {
		t.Errorf("lines are not in item order: %+v", got.Lines)
	}
	if got.TotalQuantity != 3 {
		t.Errorf("total quantity got=%d want=%d", got.TotalQuantity, 3)
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("89.48")) {
		t.Errorf("total amount got=%s want=%s", got.TotalAmount, "89.48")
	}
}

func TestCartAddItem(t *testing.T) {
	ts, mockSvc := setupCartTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		request        api.AddItemRequest
		addItemFunc    func(ctx context.Context, sessionID string, itemID int64) (cart.Cart, error)
		wantStatusCode int
		wantItemID     int64
		wantAvailable  int64
	}{
		{
			name:    "item is added to the cart",
			request: api.AddItemRequest{ItemID: 7},
			addItemFunc: func(ctx context.Context, sessionID string, itemID int64) (cart.Cart, error) {
				return getTestCart(), nil
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:    "out of stock item conflicts with offerable quantity",
			request: api.AddItemRequest{ItemID: 7},
			addItemFunc: func(ctx context.Context, sessionID string, itemID int64) (cart.Cart, error) {
				return cart.Cart{}, &core.InsufficientStockError{ItemID: itemID, Available: 2}
			},
			wantStatusCode: http.StatusConflict,
			wantItemID:     7,
			wantAvailable:  2,
		},
		{
			name:    "unknown item is not found",
			request: api.AddItemRequest{ItemID: 99},
			addItemFunc: func(ctx context.Context, sessionID string, itemID int64) (cart.Cart, error) {
				return cart.Cart{}, core.ErrNotFound
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:    "missing item id is a bad request",
			request: api.AddItemRequest{},
			addItemFunc: func(ctx context.Context, sessionID string, itemID int64) (cart.Cart, error) {
				t.Errorf("AddItem should not have been called")
				return cart.Cart{}, nil
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.AddItemFunc = test.addItemFunc

			res := post(ts.URL+"/session1/items", test.request, t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantStatusCode == http.StatusConflict {
				got := &api.ErrResponse{}
				unmarshal(res, got, t)

				if got.ItemID != test.wantItemID {
					t.Errorf("item id got=%d want=%d", got.ItemID, test.wantItemID)
				}
				if got.Available != test.wantAvailable {
					t.Errorf("available got=%d want=%d", got.Available, test.wantAvailable)
				}
			}
		})
	}
}

func TestCartUpdateQuantities(t *testing.T) {
	ts, mockSvc := setupCartTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		request        api.UpdateQuantitiesRequest
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "quantities are updated",
			request:        api.UpdateQuantitiesRequest{Quantities: map[int64]int64{7: 3, 9: 0}},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "empty quantities are a bad request",
			request:        api.UpdateQuantitiesRequest{},
			wantStatusCode: http.StatusBadRequest,
			wantCalled:     false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			called := false
			var gotQuantities map[int64]int64
			mockSvc.UpdateQuantitiesFunc = func(ctx context.Context, sessionID string, quantities map[int64]int64) (cart.Cart, error) {
				called = true
				gotQuantities = quantities
				return getTestCart(), nil
			}

			res := put(ts.URL+"/session1/items", test.request, t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}
			if called != test.wantCalled {
				t.Errorf("called got=%v want=%v", called, test.wantCalled)
			}
			if test.wantCalled && len(gotQuantities) != len(test.request.Quantities) {
				t.Errorf("quantities got=%v want=%v", gotQuantities, test.request.Quantities)
			}
		})
	}
}

func TestCartClear(t *testing.T) {
	ts, mockSvc := setupCartTestServer()
	defer ts.Close()

	cleared := ""
	mockSvc.ClearFunc = func(ctx context.Context, sessionID string) {
		cleared = sessionID
	}

	res := del(ts.URL+"/session1", t)

	if res.StatusCode != http.StatusNoContent {
		t.Errorf("status code got=%d want=%d", res.StatusCode, http.StatusNoContent)
	}
	if cleared != "session1" {
		t.Errorf("cleared session got=%s want=%s", cleared, "session1")
	}
}
