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
	"github.com/threadcount/fulfillment/core/supply"
)

func setupSupplyTestServer() (*httptest.Server, *supply.MockSupplyService) {
	mockSvc := supply.NewMockSupplyService()
	supApi := api.NewSupplyApi(&mockSvc)
	r := chi.NewRouter()
	r.With(api.Authenticate(loginUsers())).Route("/", func(r chi.Router) {
		supApi.ConfigureRouter(r)
	})
	ts := httptest.NewServer(r)

	return ts, &mockSvc
}

func createSupplyOrderRequest() api.CreateSupplyOrderRequest {
	return api.CreateSupplyOrderRequest{
		CreateRequest: supply.CreateRequest{
			SupplierID: 5,
			LocationID: 1,
			Lines: []supply.LineRequest{
				{ItemID: 7, Quantity: 5, UnitCost: decimal.RequireFromString("2.00")},
			},
		},
	}
}

func TestSupplyCreate(t *testing.T) {
	ts, mockSvc := setupSupplyTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		creds          requestOptions
		request        api.CreateSupplyOrderRequest
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "employees create supply orders",
			creds:          asEmployee(),
			request:        createSupplyOrderRequest(),
			wantStatusCode: http.StatusCreated,
			wantCalled:     true,
		},
		{
			name:           "admins create supply orders",
			creds:          asAdmin(),
			request:        createSupplyOrderRequest(),
			wantStatusCode: http.StatusCreated,
			wantCalled:     true,
		},
		{
			name:           "customers may not create supply orders",
			creds:          asCustomer(),
			request:        createSupplyOrderRequest(),
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:  "a request without lines is a bad request",
			creds: asEmployee(),
			request: api.CreateSupplyOrderRequest{
				CreateRequest: supply.CreateRequest{SupplierID: 5, LocationID: 1},
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "a request without a supplier is a bad request",
			creds: asEmployee(),
			request: api.CreateSupplyOrderRequest{
				CreateRequest: supply.CreateRequest{
					LocationID: 1,
					Lines:      []supply.LineRequest{{ItemID: 7, Quantity: 5}},
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			called := false
			mockSvc.CreateFunc = func(ctx context.Context, req supply.CreateRequest) (supply.SupplyOrder, error) {
				called = true
				if req.CreatedBy == 0 {
					t.Errorf("created by was not stamped from the authenticated user")
				}
				return supply.SupplyOrder{ID: 17, SupplierID: req.SupplierID, Status: supply.StatusPending}, nil
			}

			res := post(ts.URL+"/", test.request, t, test.creds)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}
			if called != test.wantCalled {
				t.Errorf("create called got=%v want=%v", called, test.wantCalled)
			}
		})
	}
}

func TestSupplyList(t *testing.T) {
	ts, mockSvc := setupSupplyTestServer()
	defer ts.Close()

	tests := []struct {
		name             string
		creds            requestOptions
		wantStatusCode   int
		wantSupplierCall bool
		wantAllCall      bool
	}{
		{name: "suppliers see only their orders", creds: asSupplier(), wantStatusCode: http.StatusOK, wantSupplierCall: true},
		{name: "employees see all orders", creds: asEmployee(), wantStatusCode: http.StatusOK, wantAllCall: true},
		{name: "customers may not list supply orders", creds: asCustomer(), wantStatusCode: http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			supplierCalled := false
			allCalled := false
			mockSvc.GetSupplierSupplyOrdersFunc = func(ctx context.Context, supplierID int64, limit, offset int) ([]supply.SupplyOrder, error) {
				supplierCalled = true
				if supplierID != 5 {
					t.Errorf("supplier id got=%d want=%d", supplierID, 5)
				}
				return []supply.SupplyOrder{}, nil
			}
			mockSvc.GetSupplyOrdersFunc = func(ctx context.Context, limit, offset int) ([]supply.SupplyOrder, error) {
				allCalled = true
				return []supply.SupplyOrder{}, nil
			}

			res := get(ts.URL+"/", t, test.creds)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}
			if supplierCalled != test.wantSupplierCall {
				t.Errorf("supplier listing called got=%v want=%v", supplierCalled, test.wantSupplierCall)
			}
			if allCalled != test.wantAllCall {
				t.Errorf("full listing called got=%v want=%v", allCalled, test.wantAllCall)
			}
		})
	}
}

func TestSupplyGetSupplyOrder(t *testing.T) {
	ts, mockSvc := setupSupplyTestServer()
	defer ts.Close()

	mockSvc.GetLinesFunc = func(ctx context.Context, supplyOrderID int64) ([]supply.Line, error) {
		return []supply.Line{{ID: 1, SupplyOrderID: supplyOrderID, ItemID: 7, Quantity: 5}}, nil
	}

	tests := []struct {
		name           string
		creds          requestOptions
		supplierID     int64
		wantStatusCode int
	}{
		{name: "the assigned supplier sees the order", creds: asSupplier(), supplierID: 5, wantStatusCode: http.StatusOK},
		{name: "other suppliers are forbidden", creds: asSupplier(), supplierID: 6, wantStatusCode: http.StatusForbidden},
		{name: "employees see any order", creds: asEmployee(), supplierID: 6, wantStatusCode: http.StatusOK},
		{name: "customers are forbidden", creds: asCustomer(), supplierID: 5, wantStatusCode: http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.GetSupplyOrderFunc = func(ctx context.Context, supplyOrderID int64) (supply.SupplyOrder, error) {
				return supply.SupplyOrder{ID: supplyOrderID, SupplierID: test.supplierID, Status: supply.StatusPending}, nil
			}

			res := get(ts.URL+"/17", t, test.creds)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantStatusCode == http.StatusOK {
				got := api.SupplyOrderDetailResponse{}
				unmarshal(res, &got, t)

				if got.ID != 17 {
					t.Errorf("supply order id got=%d want=%d", got.ID, 17)
				}
				if len(got.Lines) != 1 {
					t.Errorf("line count got=%d want=%d", len(got.Lines), 1)
				}
			}
		})
	}
}

func TestSupplyCancel(t *testing.T) {
	ts, mockSvc := setupSupplyTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		creds          requestOptions
		serviceErr     error
		wantStatusCode int
	}{
		{name: "employees cancel pending orders", creds: asEmployee(), wantStatusCode: http.StatusOK},
		{name: "suppliers may not cancel orders", creds: asSupplier(), wantStatusCode: http.StatusForbidden},
		{
			name:           "cancelling a received order conflicts",
			creds:          asEmployee(),
			serviceErr:     &core.InvalidTransitionError{Current: string(supply.StatusReceived), Want: string(supply.StatusPending)},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.CancelFunc = func(ctx context.Context, supplyOrderID int64) (supply.SupplyOrder, error) {
				if test.serviceErr != nil {
					return supply.SupplyOrder{}, test.serviceErr
				}
				return supply.SupplyOrder{ID: supplyOrderID, Status: supply.StatusCancelled}, nil
			}

			res := post(ts.URL+"/17/cancel", nil, t, test.creds)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}
		})
	}
}

func TestSupplyDeliver(t *testing.T) {
	ts, mockSvc := setupSupplyTestServer()
	defer ts.Close()

	tests := []struct {
		name           string
		creds          requestOptions
		serviceErr     error
		wantStatusCode int
	}{
		{name: "suppliers deliver their orders", creds: asSupplier(), wantStatusCode: http.StatusOK},
		{name: "employees may not deliver orders", creds: asEmployee(), wantStatusCode: http.StatusForbidden},
		{
			name:           "delivering someone else's order is forbidden",
			creds:          asSupplier(),
			serviceErr:     core.ErrNotOwner,
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "delivering a cancelled order conflicts",
			creds:          asSupplier(),
			serviceErr:     &core.InvalidTransitionError{Current: string(supply.StatusCancelled), Want: string(supply.StatusPending)},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.DeliverFunc = func(ctx context.Context, supplyOrderID, supplierID int64) (supply.SupplyOrder, error) {
				if test.serviceErr != nil {
					return supply.SupplyOrder{}, test.serviceErr
				}
				if supplierID != 5 {
					t.Errorf("supplier id got=%d want=%d", supplierID, 5)
				}
				deliveredBy := supplierID
				return supply.SupplyOrder{ID: supplyOrderID, SupplierID: supplierID, DeliveredBy: &deliveredBy, Status: supply.StatusReceived}, nil
			}

			res := post(ts.URL+"/17/deliver", nil, t, test.creds)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}
		})
	}
}
