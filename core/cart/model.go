// Package cart holds the ephemeral per-session shopping cart. A cart is a
// plain value passed into checkout by the caller, it is never durable state.
// Prices are snapshotted from the catalog when an item is added; checkout
// charges the snapshot, not a fresh lookup.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Line is a desired (item, quantity) pair with the price captured at
// add-to-cart time.
type Line struct {
	ItemID    int64           `json:"itemId"`
	ModelID   int64           `json:"modelId"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Amount is the line total, rounded to cents.
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Round(2)
}

type Cart struct {
	Lines map[int64]Line `json:"lines"`
}

func New() Cart {
	return Cart{Lines: make(map[int64]Line)}
}

func (c Cart) TotalQuantity() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func (c Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Amount())
	}
	return total.Round(2)
}

// SortedLines returns lines in ascending item id order. Checkout walks carts
// in this order so concurrent checkouts over overlapping items always acquire
// row locks in the same sequence.
func (c Cart) SortedLines() []Line {
	lines := make([]Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines
}
