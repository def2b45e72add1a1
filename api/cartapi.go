package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/cart"
)

type CartService interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	AddItem(ctx context.Context, sessionID string, itemID int64) (cart.Cart, error)
	UpdateQuantities(ctx context.Context, sessionID string, quantities map[int64]int64) (cart.Cart, error)
	Clear(ctx context.Context, sessionID string)
}

type CartApi struct {
	service CartService
}

func NewCartApi(service CartService) *CartApi {
	return &CartApi{service: service}
}

func (a *CartApi) ConfigureRouter(r chi.Router) {
	r.Route("/{session}", func(r chi.Router) {
		r.Get("/", a.Get)
		r.Delete("/", a.Clear)
		r.Post("/items", a.AddItem)
		r.Put("/items", a.UpdateQuantities)
	})
}

func sessionID(r *http.Request) (string, error) {
	session := chi.URLParam(r, "session")
	if session == "" {
		return "", errors.New("session is required")
	}
	return session, nil
}

func (a *CartApi) Get(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	crt, err := a.service.Get(r.Context(), session)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewCartResponse(crt))
}

func (a *CartApi) AddItem(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	data := &AddItemRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	crt, err := a.service.AddItem(r.Context(), session, data.ItemID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	Render(w, r, NewCartResponse(crt))
}

func (a *CartApi) UpdateQuantities(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	data := &UpdateQuantitiesRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	crt, err := a.service.UpdateQuantities(r.Context(), session, data.Quantities)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewCartResponse(crt))
}

func (a *CartApi) Clear(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	a.service.Clear(r.Context(), session)
	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}
