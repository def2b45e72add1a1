package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/supply"
	"github.com/threadcount/fulfillment/core/user"
)

type SupplyService interface {
	Create(ctx context.Context, req supply.CreateRequest) (supply.SupplyOrder, error)
	Cancel(ctx context.Context, supplyOrderID int64) (supply.SupplyOrder, error)
	Deliver(ctx context.Context, supplyOrderID, supplierID int64) (supply.SupplyOrder, error)

	GetSupplyOrder(ctx context.Context, supplyOrderID int64) (supply.SupplyOrder, error)
	GetLines(ctx context.Context, supplyOrderID int64) ([]supply.Line, error)
	GetSupplyOrders(ctx context.Context, limit, offset int) ([]supply.SupplyOrder, error)
	GetSupplierSupplyOrders(ctx context.Context, supplierID int64, limit, offset int) ([]supply.SupplyOrder, error)
}

type SupplyApi struct {
	service SupplyService
}

func NewSupplyApi(service SupplyService) *SupplyApi {
	return &SupplyApi{service: service}
}

func (a *SupplyApi) ConfigureRouter(r chi.Router) {
	r.With(RequireRole(user.RoleEmployee)).Post("/", a.Create)
	r.With(Paginate).Get("/", a.List)

	r.Route("/{supplyOrderId}", func(r chi.Router) {
		r.Get("/", a.GetSupplyOrder)
		r.With(RequireRole(user.RoleEmployee)).Post("/cancel", a.Cancel)
		r.With(RequireRole(user.RoleSupplier)).Post("/deliver", a.Deliver)
	})
}

func (a *SupplyApi) Create(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)

	data := &CreateSupplyOrderRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	req := data.CreateRequest
	req.CreatedBy = usr.ID

	so, err := a.service.Create(r.Context(), req)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	Render(w, r, NewSupplyOrderResponse(so))
}

func (a *SupplyApi) List(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)
	limit := r.Context().Value(CtxKeyLimit).(int)
	offset := r.Context().Value(CtxKeyOffset).(int)

	var orders []supply.SupplyOrder
	var err error

	switch usr.Role {
	case user.RoleSupplier:
		orders, err = a.service.GetSupplierSupplyOrders(r.Context(), *usr.SupplierID, limit, offset)
	case user.RoleEmployee, user.RoleAdmin:
		orders, err = a.service.GetSupplyOrders(r.Context(), limit, offset)
	default:
		Render(w, r, ErrForbidden)
		return
	}

	if err != nil {
		RenderError(w, r, err)
		return
	}

	RenderList(w, r, NewSupplyOrderListResponse(orders))
}

func (a *SupplyApi) GetSupplyOrder(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)

	supplyOrderID, err := supplyOrderID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	so, err := a.service.GetSupplyOrder(r.Context(), supplyOrderID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	switch usr.Role {
	case user.RoleSupplier:
		if usr.SupplierID == nil || so.SupplierID != *usr.SupplierID {
			Render(w, r, ErrForbidden)
			return
		}
	case user.RoleEmployee, user.RoleAdmin:
	default:
		Render(w, r, ErrForbidden)
		return
	}

	lines, err := a.service.GetLines(r.Context(), supplyOrderID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewSupplyOrderDetailResponse(so, lines))
}

func (a *SupplyApi) Cancel(w http.ResponseWriter, r *http.Request) {
	supplyOrderID, err := supplyOrderID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	so, err := a.service.Cancel(r.Context(), supplyOrderID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewSupplyOrderResponse(so))
}

func (a *SupplyApi) Deliver(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)

	supplyOrderID, err := supplyOrderID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	if usr.SupplierID == nil {
		Render(w, r, ErrForbidden)
		return
	}

	so, err := a.service.Deliver(r.Context(), supplyOrderID, *usr.SupplierID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewSupplyOrderResponse(so))
}

func supplyOrderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "supplyOrderId"), 10, 64)
	if err != nil {
		return 0, errors.New("supplyOrderId must be an integer")
	}
	return id, nil
}
