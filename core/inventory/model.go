// Package inventory is the ledger of physical stock. Each record tracks how
// many units of an item are on hand at a location and how many of those are
// promised to unfulfilled invoices. Available stock is the difference, and
// the ledger never lets reserved exceed on hand.
package inventory

// StockRecord is an entity keyed by (location, item). It is the sole point of
// coordination between concurrent checkouts, fulfillments and deliveries, so
// every mutation happens under a row lock held to transaction commit.
type StockRecord struct {
	LocationID int64 `json:"locationId"`
	ItemID     int64 `json:"itemId"`
	OnHand     int64 `json:"onHand"`
	Reserved   int64 `json:"reserved"`
}

// Available is the quantity offerable to new checkouts.
func (r StockRecord) Available() int64 {
	return r.OnHand - r.Reserved
}
