package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/order"
)

type InvoiceResponse struct {
	order.Invoice
}

func NewInvoiceResponse(inv order.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}

func (rd *InvoiceResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func NewInvoiceListResponse(invoices []order.Invoice) []render.Renderer {
	list := make([]render.Renderer, 0)
	for _, inv := range invoices {
		list = append(list, NewInvoiceResponse(inv))
	}
	return list
}

type InvoiceDetailResponse struct {
	order.Invoice
	Lines []order.Line `json:"lines"`
}

func NewInvoiceDetailResponse(inv order.Invoice, lines []order.Line) *InvoiceDetailResponse {
	return &InvoiceDetailResponse{Invoice: inv, Lines: lines}
}

func (rd *InvoiceDetailResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type CheckoutRequest struct {
	SessionID string `json:"sessionId"`
}

func (p *CheckoutRequest) Bind(_ *http.Request) error {
	if p.SessionID == "" {
		return errors.New("sessionId is required")
	}

	return nil
}
