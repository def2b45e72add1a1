package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/threadcount/fulfillment/api"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/catalog"
	"github.com/threadcount/fulfillment/core/inventory"
)

const testLocationID = int64(1)

func setupCatalogTestServer() (*httptest.Server, *catalog.MockCatalogService, *inventory.MockInventoryService) {
	mockSvc := catalog.NewMockCatalogService()
	mockInv := inventory.NewMockInventoryService()
	catApi := api.NewCatalogApi(&mockSvc, &mockInv, testLocationID)
	r := chi.NewRouter()
	catApi.ConfigureRouter(r)
	ts := httptest.NewServer(r)

	return ts, &mockSvc, &mockInv
}

func getTestModels() []catalog.Model {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []catalog.Model{
		{ID: 1, Name: "Crewneck Tee", SellPrice: decimal.RequireFromString("19.99"), Image: "tee.jpg", Created: created},
		{ID: 2, Name: "Slim Jeans", SellPrice: decimal.RequireFromString("49.50"), Image: "jeans.jpg", Created: created},
	}
}

func TestCatalogList(t *testing.T) {
	ts, mockSvc, _ := setupCatalogTestServer()
	defer ts.Close()

	mockSvc.GetModelsFunc = func(ctx context.Context, limit, offset int) ([]catalog.Model, error) {
		return getTestModels(), nil
	}

	res := get(ts.URL, t)

	if res.StatusCode != http.StatusOK {
		t.Errorf("status code got=%d want=%d", res.StatusCode, http.StatusOK)
	}

	got := []catalog.Model{}
	unmarshal(res, &got, t)

	if len(got) != 2 {
		t.Fatalf("model count got=%d want=%d", len(got), 2)
	}
	if got[0].Name != "Crewneck Tee" {
		t.Errorf("model name got=%s want=%s", got[0].Name, "Crewneck Tee")
	}
}

func TestCatalogGetModel(t *testing.T) {
	ts, mockSvc, _ := setupCatalogTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		url            string
		getModelFunc   func(ctx context.Context, modelID int64) (catalog.Model, error)
		wantItemCount  int
		wantStatusCode int
	}{
		{
			name: "model detail includes its items",
			url:  "/1",
			getModelFunc: func(ctx context.Context, modelID int64) (catalog.Model, error) {
				return getTestModels()[0], nil
			},
			wantItemCount:  2,
			wantStatusCode: http.StatusOK,
		},
		{
			name: "unknown model is not found",
			url:  "/99",
			getModelFunc: func(ctx context.Context, modelID int64) (catalog.Model, error) {
				return catalog.Model{}, core.ErrNotFound
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "non-numeric model id is a bad request",
			url:  "/notanumber",
			getModelFunc: func(ctx context.Context, modelID int64) (catalog.Model, error) {
				return catalog.Model{}, nil
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.GetModelFunc = test.getModelFunc
			mockSvc.GetModelItemsFunc = func(ctx context.Context, modelID int64) ([]catalog.Item, error) {
				return []catalog.Item{
					{ID: 7, ModelID: modelID, Size: "M", Color: "Black"},
					{ID: 8, ModelID: modelID, Size: "L", Color: "Black"},
				}, nil
			}

			res := get(ts.URL+test.url, t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantStatusCode == http.StatusOK {
				got := api.ModelDetailResponse{}
				unmarshal(res, &got, t)

				if len(got.Items) != test.wantItemCount {
					t.Errorf("item count got=%d want=%d", len(got.Items), test.wantItemCount)
				}
			}
		})
	}
}

func TestCatalogGetItemDetail(t *testing.T) {
	ts, mockSvc, mockInv := setupCatalogTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		getDetailFunc  func(ctx context.Context, itemID int64) (catalog.ItemDetail, error)
		availableFunc  func(ctx context.Context, locationID, itemID int64) (int64, error)
		wantAvailable  int64
		wantStatusCode int
	}{
		{
			name: "item detail carries offerable stock",
			getDetailFunc: func(ctx context.Context, itemID int64) (catalog.ItemDetail, error) {
				return catalog.ItemDetail{
					Item:      catalog.Item{ID: itemID, ModelID: 1, Size: "M", Color: "Black"},
					Name:      "Crewneck Tee",
					SellPrice: decimal.RequireFromString("19.99"),
				}, nil
			},
			availableFunc: func(ctx context.Context, locationID, itemID int64) (int64, error) {
				if locationID != testLocationID {
					t.Errorf("location id got=%d want=%d", locationID, testLocationID)
				}
				return 4, nil
			},
			wantAvailable:  4,
			wantStatusCode: http.StatusOK,
		},
		{
			name: "unknown item is not found",
			getDetailFunc: func(ctx context.Context, itemID int64) (catalog.ItemDetail, error) {
				return catalog.ItemDetail{}, core.ErrNotFound
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "stock lookup failure is an internal server error",
			getDetailFunc: func(ctx context.Context, itemID int64) (catalog.ItemDetail, error) {
				return catalog.ItemDetail{Item: catalog.Item{ID: itemID}}, nil
			},
			availableFunc: func(ctx context.Context, locationID, itemID int64) (int64, error) {
				return 0, errors.New("some unexpected error")
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.GetItemDetailFunc = test.getDetailFunc
			if test.availableFunc != nil {
				mockInv.GetAvailableFunc = test.availableFunc
			}

			res := get(ts.URL+"/item/7", t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantStatusCode == http.StatusOK {
				got := api.ItemDetailResponse{}
				unmarshal(res, &got, t)

				if got.Available != test.wantAvailable {
					t.Errorf("available got=%d want=%d", got.Available, test.wantAvailable)
				}
			}
		})
	}
}
