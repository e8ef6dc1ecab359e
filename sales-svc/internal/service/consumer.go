package service

import (
	"context"
	"encoding/json"
	"errors"

	"pizzaria-veneza/sales-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    log.FieldLogger
}

func NewConsumer(reader MessageReader, store StoreInterface, logger log.FieldLogger) *Consumer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    logger,
	}
}

// Start reads order events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("Starting sales consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.Log.Info("Sales consumer stopped")
				return
			}
			c.Log.WithError(err).Warn("Error reading message")
			continue
		}

		var msg domain.OrderMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Log.WithError(err).WithField("offset", message.Offset).Warn("Error unmarshaling message")
			continue
		}
		c.ProcessEvent(ctx, msg)
	}
}

// ProcessEvent tallies created orders and reverses deleted ones. Other
// event types are ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, msg domain.OrderMessage) {
	entry := c.Log.WithFields(log.Fields{"order_id": msg.OrderID, "type": msg.Type})

	var (
		applied bool
		err     error
	)
	switch msg.Type {
	case domain.EventOrderCreated:
		applied, err = c.Store.RecordOrder(ctx, msg)
	case domain.EventOrderDeleted:
		applied, err = c.Store.ReverseOrder(ctx, msg)
	default:
		return
	}

	if err != nil {
		entry.WithError(err).Error("Error updating sales tally")
		return
	}
	if !applied {
		entry.Debug("Event already accounted for")
		return
	}
	entry.WithField("total", msg.Total.StringFixed(2)).Info("Sales tally updated")
}
