// Package supply handles replenishment: staff order stock from a supplier,
// the supplier delivers it, and receipt credits the inventory ledger.
package supply

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "Pending"
	// StatusReceived is terminal. Inventory has been credited and the
	// delivering supplier stamped.
	StatusReceived Status = "Received"
	// StatusCancelled is terminal with no inventory effect.
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(v string) (Status, error) {
	switch v {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusReceived):
		return StatusReceived, nil
	case string(StatusCancelled):
		return StatusCancelled, nil
	default:
		return "", errors.New("invalid supply order status")
	}
}

// SupplyOrder is an entity created with at least one valid line. Its total
// is the sum of line amounts, fixed at creation.
type SupplyOrder struct {
	ID          int64           `json:"id"`
	SupplierID  int64           `json:"supplierId"`
	LocationID  int64           `json:"locationId"`
	CreatedBy   int64           `json:"createdBy"`
	DeliveredBy *int64          `json:"deliveredBy"`
	Total       decimal.Decimal `json:"total"`
	Created     time.Time       `json:"created"`
	Status      Status          `json:"status"`
}

// Line is a value object owned exclusively by its supply order, immutable
// once created.
type Line struct {
	ID            int64           `json:"id"`
	SupplyOrderID int64           `json:"supplyOrderId"`
	ItemID        int64           `json:"itemId"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	Amount        decimal.Decimal `json:"amount"`
}

// LineRequest is one requested line in a create request. Lines with
// non-positive quantity or negative unit cost are discarded.
type LineRequest struct {
	ItemID   int64           `json:"itemId"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

type CreateRequest struct {
	SupplierID int64         `json:"supplierId"`
	LocationID int64         `json:"locationId"`
	CreatedBy  int64         `json:"createdBy"`
	Lines      []LineRequest `json:"lines"`
}
