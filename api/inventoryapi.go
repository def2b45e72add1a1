package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/core/user"
)

type StockService interface {
	GetStock(ctx context.Context, locationID, itemID int64) (inventory.StockRecord, error)
	GetAvailable(ctx context.Context, locationID, itemID int64) (int64, error)
	GetAllStock(ctx context.Context, limit, offset int) ([]inventory.StockRecord, error)

	SetOnHand(ctx context.Context, locationID, itemID, quantity int64) (inventory.StockRecord, error)

	SubscribeStock(ch chan<- inventory.StockRecord) (id inventory.StockSubscriptionID)
	UnsubscribeStock(id inventory.StockSubscriptionID)
}

type StockApi struct {
	service StockService
	users   user.Service
}

func NewStockApi(service StockService, users user.Service) *StockApi {
	return &StockApi{service: service, users: users}
}

func (a *StockApi) ConfigureRouter(r chi.Router) {
	r.HandleFunc("/subscribe", a.Subscribe)

	r.With(Paginate).Get("/", a.List)

	r.Route("/{locationId}/{itemId}", func(r chi.Router) {
		r.Get("/", a.GetStock)
		r.With(Authenticate(a.users), RequireRole(user.RoleAdmin)).Put("/", a.SetOnHand)
	})
}

// Subscribe streams committed stock levels to the client over a websocket.
//
// Note: clients only see updates that happened in their connected instance,
// so this does not survive horizontal scaling as-is.
func (a *StockApi) Subscribe(w http.ResponseWriter, r *http.Request) {
	log.Info().Msg("client requesting stock subscription")

	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		log.Err(err).Msg("failed to establish stock subscription connection")
		Render(w, r, ErrInternalServer)
		return
	}
	go func() {
		defer conn.Close()

		ch := make(chan inventory.StockRecord, 1)

		id := a.service.SubscribeStock(ch)
		defer func() {
			a.service.UnsubscribeStock(id)
		}()

		for record := range ch {
			resp := NewStockResponse(record)
			body, err := json.Marshal(resp)
			if err != nil {
				log.Err(err).Interface("clientId", id).Msg("failed to marshal stock response")
				continue
			}

			log.Debug().Interface("clientId", id).Interface("stockResponse", resp).Msg("sending stock update to client")
			err = wsutil.WriteServerText(conn, body)
			if err != nil {
				log.Err(err).Interface("clientId", id).Msg("failed to write server message, disconnecting client")
				return
			}
		}
	}()
}

func (a *StockApi) List(w http.ResponseWriter, r *http.Request) {
	limit := r.Context().Value(CtxKeyLimit).(int)
	offset := r.Context().Value(CtxKeyOffset).(int)

	records, err := a.service.GetAllStock(r.Context(), limit, offset)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	RenderList(w, r, NewStockListResponse(records))
}

func (a *StockApi) GetStock(w http.ResponseWriter, r *http.Request) {
	locationID, itemID, err := stockKey(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	record, err := a.service.GetStock(r.Context(), locationID, itemID)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewStockResponse(record))
}

func (a *StockApi) SetOnHand(w http.ResponseWriter, r *http.Request) {
	locationID, itemID, err := stockKey(r)
	if err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	data := &SetStockRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	record, err := a.service.SetOnHand(r.Context(), locationID, itemID, *data.OnHand)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewStockResponse(record))
}

func stockKey(r *http.Request) (locationID, itemID int64, err error) {
	locationID, err = strconv.ParseInt(chi.URLParam(r, "locationId"), 10, 64)
	if err != nil {
		return 0, 0, errors.New("locationId must be an integer")
	}
	itemID, err = strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		return 0, 0, errors.New("itemId must be an integer")
	}
	return locationID, itemID, nil
}
