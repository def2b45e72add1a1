package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/inventory"
)

type StockResponse struct {
	inventory.StockRecord
	Available int64 `json:"available"`
}

func NewStockResponse(record inventory.StockRecord) *StockResponse {
	return &StockResponse{StockRecord: record, Available: record.Available()}
}

func (rd *StockResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func NewStockListResponse(records []inventory.StockRecord) []render.Renderer {
	list := make([]render.Renderer, 0)
	for _, record := range records {
		list = append(list, NewStockResponse(record))
	}
	return list
}

type SetStockRequest struct {
	OnHand *int64 `json:"onHand"`
}

func (p *SetStockRequest) Bind(_ *http.Request) error {
	if p.OnHand == nil {
		return errors.New("onHand is required")
	}
	if *p.OnHand < 0 {
		return errors.New("onHand must not be negative")
	}

	return nil
}
