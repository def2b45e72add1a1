package cart

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
	"github.com/threadcount/fulfillment/core/catalog"
)

// Store is the opaque session-to-cart mapping. Implementations only need
// read, write and clear.
type Store interface {
	Read(sessionID string) (Cart, bool)
	Write(sessionID string, cart Cart)
	Clear(sessionID string)
}

// Catalog supplies item details and the current sell price for snapshotting.
type Catalog interface {
	GetItemDetail(ctx context.Context, itemID int64) (catalog.ItemDetail, error)
}

// Availability reports offerable stock for display and quantity capping.
type Availability interface {
	GetAvailable(ctx context.Context, locationID, itemID int64) (int64, error)
}

type Service interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	AddItem(ctx context.Context, sessionID string, itemID int64) (Cart, error)
	UpdateQuantities(ctx context.Context, sessionID string, quantities map[int64]int64) (Cart, error)
	Clear(ctx context.Context, sessionID string)
}

func NewService(store Store, cat Catalog, avail Availability, locationID int64) *service {
	return &service{store: store, catalog: cat, avail: avail, locationID: locationID}
}

type service struct {
	store      Store
	catalog    Catalog
	avail      Availability
	locationID int64
}

func (s *service) Get(ctx context.Context, sessionID string) (Cart, error) {
	crt, ok := s.store.Read(sessionID)
	if !ok {
		return New(), nil
	}
	return crt, nil
}

// AddItem puts one more unit of the item into the session's cart, rejecting
// additions past the currently available stock.
func (s *service) AddItem(ctx context.Context, sessionID string, itemID int64) (Cart, error) {
	const funcName = "AddItem"

	log.Debug().
		Str("func", funcName).
		Str("sessionId", sessionID).
		Int64("itemId", itemID).
		Msg("adding item to cart")

	detail, err := s.catalog.GetItemDetail(ctx, itemID)
	if err != nil {
		return Cart{}, errors.WithStack(err)
	}

	available, err := s.avail.GetAvailable(ctx, s.locationID, itemID)
	if err != nil {
		return Cart{}, errors.WithStack(err)
	}

	crt, ok := s.store.Read(sessionID)
	if !ok {
		crt = New()
	}

	line := crt.Lines[itemID]
	newQuantity := line.Quantity + 1
	if newQuantity > available {
		return crt, &core.InsufficientStockError{ItemID: itemID, Available: available}
	}

	crt.Lines[itemID] = Line{
		ItemID:    itemID,
		ModelID:   detail.ModelID,
		Name:      detail.Name,
		Size:      detail.Size,
		Color:     detail.Color,
		Quantity:  newQuantity,
		UnitPrice: detail.SellPrice,
	}
	s.store.Write(sessionID, crt)

	return crt, nil
}

// UpdateQuantities applies the requested quantities to lines already in the
// cart. Non-positive quantities drop the line, out-of-stock lines are
// removed, and requests past available stock are capped rather than failed.
func (s *service) UpdateQuantities(ctx context.Context, sessionID string, quantities map[int64]int64) (Cart, error) {
	const funcName = "UpdateQuantities"

	log.Debug().
		Str("func", funcName).
		Str("sessionId", sessionID).
		Msg("updating cart quantities")

	crt, ok := s.store.Read(sessionID)
	if !ok {
		crt = New()
	}

	for itemID, line := range crt.Lines {
		want, ok := quantities[itemID]
		if !ok {
			continue
		}
		if want <= 0 {
			delete(crt.Lines, itemID)
			continue
		}

		available, err := s.avail.GetAvailable(ctx, s.locationID, itemID)
		if err != nil {
			return crt, errors.WithStack(err)
		}
		if available == 0 {
			log.Debug().Str("func", funcName).Int64("itemId", itemID).Msg("item out of stock, removing from cart")
			delete(crt.Lines, itemID)
			continue
		}
		if want > available {
			want = available
		}

		line.Quantity = want
		crt.Lines[itemID] = line
	}

	s.store.Write(sessionID, crt)
	return crt, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) {
	s.store.Clear(sessionID)
}
