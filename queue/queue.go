package queue

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sksmith/bunnyq"
	"github.com/streadway/amqp"
	"github.com/threadcount/fulfillment/core/catalog"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/core/supply"
)

// eventQueue fans committed state changes out to the rest of the platform.
// One exchange per event type.
type eventQueue struct {
	queue               *bunnyq.BunnyQ
	stockExchange       string
	invoiceExchange     string
	supplyOrderExchange string
}

func New(bq *bunnyq.BunnyQ, stockExchange, invoiceExchange, supplyOrderExchange string) *eventQueue {
	return &eventQueue{
		queue:               bq,
		stockExchange:       stockExchange,
		invoiceExchange:     invoiceExchange,
		supplyOrderExchange: supplyOrderExchange,
	}
}

func (q *eventQueue) PublishStock(ctx context.Context, record inventory.StockRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.WithMessage(err, "failed to serialize stock record for queue")
	}
	if err = q.queue.Publish(ctx, q.stockExchange, body); err != nil {
		return errors.WithMessage(err, "failed to send stock update to queue")
	}
	return nil
}

func (q *eventQueue) PublishInvoice(ctx context.Context, invoice order.Invoice) error {
	body, err := json.Marshal(invoice)
	if err != nil {
		return errors.WithMessage(err, "failed to serialize invoice for queue")
	}
	if err = q.queue.Publish(ctx, q.invoiceExchange, body); err != nil {
		return errors.WithMessage(err, "failed to send invoice update to queue")
	}
	return nil
}

func (q *eventQueue) PublishSupplyOrder(ctx context.Context, so supply.SupplyOrder) error {
	body, err := json.Marshal(so)
	if err != nil {
		return errors.WithMessage(err, "failed to serialize supply order for queue")
	}
	if err = q.queue.Publish(ctx, q.supplyOrderExchange, body); err != nil {
		return errors.WithMessage(err, "failed to send supply order update to queue")
	}
	return nil
}

// ModelQueue consumes model definitions published by merchandising and
// upserts them into the catalog. Malformed or unprocessable messages go to
// the dead letter exchange.
type ModelQueue struct {
	queue            *bunnyq.BunnyQ
	modelQueue       string
	modelDltExchange string
}

func NewModelQueue(bq *bunnyq.BunnyQ, modelQueue, modelDltExchange string) *ModelQueue {
	return &ModelQueue{queue: bq, modelQueue: modelQueue, modelDltExchange: modelDltExchange}
}

type ModelHandler interface {
	SaveModel(ctx context.Context, model catalog.Model) error
}

func (q *ModelQueue) ConsumeModels(ctx context.Context, handler ModelHandler) {
	q.queue.Stream(ctx, q.modelQueue, func(delivery amqp.Delivery) {
		model := catalog.Model{}
		err := json.Unmarshal(delivery.Body, &model)
		if err != nil {
			log.Error().Err(err).Msg("error unmarshalling model, writing to dlt")
			q.sendToDlt(ctx, delivery.Body)
			return
		}

		err = handler.SaveModel(ctx, model)
		if err != nil {
			log.Error().Err(err).Msg("error handling model, writing to dlt")
			q.sendToDlt(ctx, delivery.Body)
		}
	}, bunnyq.StreamOpAutoAck)
}

func (q *ModelQueue) sendToDlt(ctx context.Context, data []byte) {
	err := q.queue.Publish(ctx, q.modelDltExchange, data)
	if err != nil {
		log.Error().Err(err).Msg("error writing to dlt")
	}
}
