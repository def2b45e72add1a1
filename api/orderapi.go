package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/cart"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/core/user"
)

type OrderService interface {
	Checkout(ctx context.Context, customerID int64, crt cart.Cart) (order.Invoice, error)

	Accept(ctx context.Context, invoiceID, employeeID int64) (order.Invoice, error)
	Prepare(ctx context.Context, invoiceID, employeeID int64) (order.Invoice, error)
	Complete(ctx context.Context, invoiceID, employeeID int64) (order.Invoice, error)

	GetInvoice(ctx context.Context, invoiceID int64) (order.Invoice, error)
	GetLines(ctx context.Context, invoiceID int64) ([]order.Line, error)
	GetInvoicesByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]order.Invoice, error)
	GetInvoicesByStatus(ctx context.Context, status order.Status, limit, offset int) ([]order.Invoice, error)
	GetEmployeeInvoices(ctx context.Context, employeeID int64, statuses []order.Status, limit, offset int) ([]order.Invoice, error)
}

type OrderApi struct {
	service OrderService
	carts   CartService
}

func NewOrderApi(service OrderService, carts CartService) *OrderApi {
	return &OrderApi{service: service, carts: carts}
}

func (a *OrderApi) ConfigureRouter(r chi.Router) {
	r.Post("/checkout", a.Checkout)
	r.With(Paginate).Get("/", a.List)

	r.Route("/{invoiceId}", func(r chi.Router) {
		r.Get("/", a.GetInvoice)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(user.RoleEmployee))
			r.Post("/accept", a.Accept)
			r.Post("/prepare", a.Prepare)
			r.Post("/complete", a.Complete)
		})
	})
}

// Checkout turns the session's cart into an invoice. The cart is only cleared
// once the invoice committed, a failed checkout leaves it untouched.
func (a *OrderApi) Checkout(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)

	data := &CheckoutRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	crt, err := a.carts.Get(r.Context(), data.SessionID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	inv, err := a.service.Checkout(r.Context(), usr.ID, crt)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	a.carts.Clear(r.Context(), data.SessionID)

	render.Status(r, http.StatusCreated)
	Render(w, r, NewInvoiceResponse(inv))
}

// List serves both sides of the counter: customers see their own order
// history, employees see work queues selected with ?queue=.
func (a *OrderApi) List(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)
	limit := r.Context().Value(CtxKeyLimit).(int)
	offset := r.Context().Value(CtxKeyOffset).(int)

	var invoices []order.Invoice
	var err error

	switch usr.Role {
	case user.RoleCustomer:
		invoices, err = a.service.GetInvoicesByCustomer(r.Context(), usr.ID, limit, offset)
	case user.RoleEmployee, user.RoleAdmin:
		switch r.URL.Query().Get("queue") {
		case "", "pending":
			invoices, err = a.service.GetInvoicesByStatus(r.Context(), order.StatusPending, limit, offset)
		case "active":
			invoices, err = a.service.GetEmployeeInvoices(r.Context(), usr.ID,
				[]order.Status{order.StatusAccepted, order.StatusPrepared}, limit, offset)
		case "completed":
			invoices, err = a.service.GetEmployeeInvoices(r.Context(), usr.ID,
				[]order.Status{order.StatusCompleted}, limit, offset)
		default:
			Render(w, r, ErrInvalidRequest(errors.New("queue must be pending, active or completed")))
			return
		}
	default:
		Render(w, r, ErrForbidden)
		return
	}

	if err != nil {
		RenderError(w, r, err)
		return
	}

	RenderList(w, r, NewInvoiceListResponse(invoices))
}

func (a *OrderApi) GetInvoice(w http.ResponseWriter, r *http.Request) {
	usr := r.Context().Value(CtxKeyUser).(user.User)

	invoiceID, err := invoiceID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	inv, err := a.service.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	if usr.Role == user.RoleCustomer && inv.CustomerID != usr.ID {
		Render(w, r, ErrForbidden)
		return
	}
	if usr.Role == user.RoleSupplier {
		Render(w, r, ErrForbidden)
		return
	}

	lines, err := a.service.GetLines(r.Context(), invoiceID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewInvoiceDetailResponse(inv, lines))
}

func (a *OrderApi) Accept(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.service.Accept)
}

func (a *OrderApi) Prepare(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.service.Prepare)
}

func (a *OrderApi) Complete(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.service.Complete)
}

func (a *OrderApi) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, invoiceID, employeeID int64) (order.Invoice, error)) {

	usr := r.Context().Value(CtxKeyUser).(user.User)

	invoiceID, err := invoiceID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	inv, err := fn(r.Context(), invoiceID, usr.ID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewInvoiceResponse(inv))
}

func invoiceID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "invoiceId"), 10, 64)
	if err != nil {
		return 0, errors.New("invoiceId must be an integer")
	}
	return id, nil
}
