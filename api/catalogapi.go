package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/catalog"
)

type CatalogService interface {
	GetModel(ctx context.Context, modelID int64) (catalog.Model, error)
	GetModels(ctx context.Context, limit, offset int) ([]catalog.Model, error)
	GetItemDetail(ctx context.Context, itemID int64) (catalog.ItemDetail, error)
	GetModelItems(ctx context.Context, modelID int64) ([]catalog.Item, error)
}

type Availability interface {
	GetAvailable(ctx context.Context, locationID, itemID int64) (int64, error)
}

type CatalogApi struct {
	service    CatalogService
	avail      Availability
	locationID int64
}

func NewCatalogApi(service CatalogService, avail Availability, locationID int64) *CatalogApi {
	return &CatalogApi{service: service, avail: avail, locationID: locationID}
}

func (a *CatalogApi) ConfigureRouter(r chi.Router) {
	r.With(Paginate).Get("/", a.List)
	r.Get("/{modelId}", a.GetModel)
	r.Get("/item/{itemId}", a.GetItemDetail)
}

func (a *CatalogApi) List(w http.ResponseWriter, r *http.Request) {
	limit := r.Context().Value(CtxKeyLimit).(int)
	offset := r.Context().Value(CtxKeyOffset).(int)

	models, err := a.service.GetModels(r.Context(), limit, offset)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	RenderList(w, r, NewModelListResponse(models))
}

func (a *CatalogApi) GetModel(w http.ResponseWriter, r *http.Request) {
	modelID, err := strconv.ParseInt(chi.URLParam(r, "modelId"), 10, 64)
	if err != nil {
		Render(w, r, ErrInvalidRequest(errors.New("modelId must be an integer")))
		return
	}

	model, err := a.service.GetModel(r.Context(), modelID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	items, err := a.service.GetModelItems(r.Context(), modelID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewModelDetailResponse(model, items))
}

func (a *CatalogApi) GetItemDetail(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		Render(w, r, ErrInvalidRequest(errors.New("itemId must be an integer")))
		return
	}

	detail, err := a.service.GetItemDetail(r.Context(), itemID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	available, err := a.avail.GetAvailable(r.Context(), a.locationID, itemID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewItemDetailResponse(detail, available))
}
