// Package catalog is the product listing the storefront browses. Models
// carry the sell price, items are the concrete size/color variants that
// inventory is tracked against.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Model struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Image     string          `json:"image"`
	Created   time.Time       `json:"created"`
}

type Item struct {
	ID      int64  `json:"id"`
	ModelID int64  `json:"modelId"`
	Size    string `json:"size"`
	Color   string `json:"color"`
}

// ItemDetail is an item joined with its model, the shape the cart needs to
// snapshot a price.
type ItemDetail struct {
	Item
	Name      string          `json:"name"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Image     string          `json:"image"`
}
