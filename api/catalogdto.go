package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/threadcount/fulfillment/core/catalog"
)

type ModelResponse struct {
	catalog.Model
}

func (rd *ModelResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func NewModelListResponse(models []catalog.Model) []render.Renderer {
	list := make([]render.Renderer, 0)
	for _, model := range models {
		list = append(list, &ModelResponse{Model: model})
	}
	return list
}

type ModelDetailResponse struct {
	catalog.Model
	Items []catalog.Item `json:"items"`
}

func NewModelDetailResponse(model catalog.Model, items []catalog.Item) *ModelDetailResponse {
	return &ModelDetailResponse{Model: model, Items: items}
}

func (rd *ModelDetailResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type ItemDetailResponse struct {
	catalog.ItemDetail
	Available int64 `json:"available"`
}

func NewItemDetailResponse(detail catalog.ItemDetail, available int64) *ItemDetailResponse {
	return &ItemDetailResponse{ItemDetail: detail, Available: available}
}

func (rd *ItemDetailResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
