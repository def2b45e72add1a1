package api

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/threadcount/fulfillment/core/cart"
)

type CartResponse struct {
	Lines         []cart.Line     `json:"lines"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

func NewCartResponse(crt cart.Cart) *CartResponse {
	return &CartResponse{
		Lines:         crt.SortedLines(),
		TotalQuantity: crt.TotalQuantity(),
		TotalAmount:   crt.TotalAmount(),
	}
}

func (rd *CartResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type AddItemRequest struct {
	ItemID int64 `json:"itemId"`
}

func (p *AddItemRequest) Bind(_ *http.Request) error {
	if p.ItemID == 0 {
		return errors.New("itemId is required")
	}

	return nil
}

type UpdateQuantitiesRequest struct {
	Quantities map[int64]int64 `json:"quantities"`
}

func (p *UpdateQuantitiesRequest) Bind(_ *http.Request) error {
	if len(p.Quantities) == 0 {
		return errors.New("quantities are required")
	}

	return nil
}
