// Package order owns the customer-facing half of fulfillment: turning a cart
// into a durable invoice with reserved stock, then walking that invoice
// through the staff pipeline until the reserved stock is permanently
// consumed.
package order

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Status string

const (
	// StatusPending means the invoice exists and stock is reserved, but no
	// employee has claimed it yet.
	StatusPending Status = "Pending"
	// StatusAccepted means an employee owns the invoice.
	StatusAccepted Status = "Accepted"
	// StatusPrepared is an optional intermediate step before completion.
	StatusPrepared Status = "Prepared"
	// StatusCompleted is terminal. The reserved stock has been deducted from
	// on-hand inventory.
	StatusCompleted Status = "Completed"
)

func ParseStatus(v string) (Status, error) {
	switch v {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusAccepted):
		return StatusAccepted, nil
	case string(StatusPrepared):
		return StatusPrepared, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	default:
		return "", errors.New("invalid invoice status")
	}
}

// Invoice is an entity created atomically with its lines at checkout. Lines
// are immutable once created; only the fulfillment state machine mutates the
// status and employee assignment, and invoices are never deleted.
type Invoice struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	EmployeeID *int64          `json:"employeeId"`
	Total      decimal.Decimal `json:"total"`
	Created    time.Time       `json:"created"`
	Status     Status          `json:"status"`
}

// Line is a value object owned exclusively by its invoice.
type Line struct {
	ID        int64           `json:"id"`
	InvoiceID int64           `json:"invoiceId"`
	ItemID    int64           `json:"itemId"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}
