package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

var (
	// ErrNotFound is returned for any reference to a nonexistent record.
	ErrNotFound = errors.New("core: record not found")

	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("core: cart is empty")

	// ErrNotOwner is returned when an operation is attempted by someone other
	// than the assigned employee or supplier.
	ErrNotOwner = errors.New("core: not the assigned owner")

	// ErrInvariantViolation indicates a counter would have gone negative or a
	// similar data corruption. The operation is aborted and rolled back.
	ErrInvariantViolation = errors.New("core: inventory invariant violation")
)

// InsufficientStockError is returned when a reservation requests more stock
// than is currently available for the item.
type InsufficientStockError struct {
	ItemID    int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d, available %d", e.ItemID, e.Available)
}

// InvalidTransitionError is returned for state machine transitions attempted
// from the wrong status. It is recoverable, callers surface it as a warning.
type InvalidTransitionError struct {
	Current string
	Want    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition, status is %s, want %s", e.Current, e.Want)
}

type Transaction interface {
	Conn
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Conn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type UpdateOptions struct {
	Tx Transaction
}

type QueryOptions struct {
	ForUpdate bool
	Tx        Transaction
}
