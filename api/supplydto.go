package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/supply"
)

type SupplyOrderResponse struct {
	supply.SupplyOrder
}

func NewSupplyOrderResponse(so supply.SupplyOrder) *SupplyOrderResponse {
	return &SupplyOrderResponse{SupplyOrder: so}
}

func (rd *SupplyOrderResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func NewSupplyOrderListResponse(orders []supply.SupplyOrder) []render.Renderer {
	list := make([]render.Renderer, 0)
	for _, so := range orders {
		list = append(list, NewSupplyOrderResponse(so))
	}
	return list
}

type SupplyOrderDetailResponse struct {
	supply.SupplyOrder
	Lines []supply.Line `json:"lines"`
}

func NewSupplyOrderDetailResponse(so supply.SupplyOrder, lines []supply.Line) *SupplyOrderDetailResponse {
	return &SupplyOrderDetailResponse{SupplyOrder: so, Lines: lines}
}

func (rd *SupplyOrderDetailResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type CreateSupplyOrderRequest struct {
	supply.CreateRequest
}

func (p *CreateSupplyOrderRequest) Bind(_ *http.Request) error {
	if p.SupplierID == 0 {
		return errors.New("supplierId is required")
	}
	if p.LocationID == 0 {
		return errors.New("locationId is required")
	}
	if len(p.Lines) == 0 {
		return errors.New("at least one line is required")
	}

	return nil
}
