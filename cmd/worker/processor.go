package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
)

// errInvalidMessage marks messages that will never succeed on retry.
var errInvalidMessage = errors.New("invalid order message")

// NotifyFunc delivers a notification to a store.
type NotifyFunc func(ctx context.Context, n StoreNotification) error

// Processor turns order-created messages into store notifications.
type Processor struct {
	catalog *catalog.Catalog
	notify  NotifyFunc
	logger  *log.Entry
}

// NewProcessor creates a Processor. A nil notify only logs the notification.
func NewProcessor(c *catalog.Catalog, notify NotifyFunc, logger *log.Entry) *Processor {
	if logger == nil {
		logger = log.WithField("component", "worker")
	}
	p := &Processor{catalog: c, notify: notify, logger: logger}
	if p.notify == nil {
		p.notify = p.logNotification
	}
	return p
}

// Handle processes an SQS batch and reports per-message failures so only the
// failed messages are redelivered. Malformed messages are dropped.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	p.logger.Infof("received %d SQS messages", len(ev.Records))

	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		err := p.processMessage(ctx, rec)
		switch {
		case err == nil:
		case errors.Is(err, errInvalidMessage):
			p.logger.WithError(err).WithField("message_id", rec.MessageId).Error("dropping message")
		default:
			p.logger.WithError(err).WithField("message_id", rec.MessageId).Warn("message will be retried")
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
		}
	}
	return resp, nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg WorkerMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("%w: %v", errInvalidMessage, err)
	}
	if msg.OrderID == "" || msg.StoreID <= 0 {
		return fmt.Errorf("%w: order_id and store_id are required", errInvalidMessage)
	}

	n := StoreNotification{
		OrderID:     msg.OrderID,
		StoreID:     msg.StoreID,
		TotalAmount: msg.TotalAmount,
		ItemCount:   msg.ItemCount,
		Language:    msg.Language,
	}
	// orders may reference stores outside the fixture (OCR menus)
	if store, err := p.catalog.GetStore(msg.StoreID); err == nil {
		n.StoreName = store.Name
	}

	if err := p.notify(ctx, n); err != nil {
		return fmt.Errorf("notify store %d: %w", msg.StoreID, err)
	}
	return nil
}

func (p *Processor) logNotification(_ context.Context, n StoreNotification) error {
	p.logger.WithFields(log.Fields{
		"order_id":     n.OrderID,
		"store_id":     n.StoreID,
		"store_name":   n.StoreName,
		"total_amount": n.TotalAmount,
		"item_count":   n.ItemCount,
		"language":     n.Language,
	}).Info("store notified of new order")
	return nil
}
