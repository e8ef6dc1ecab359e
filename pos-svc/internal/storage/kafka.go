package storage

import (
	"context"
	"encoding/json"
	"time"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher journals order events, keyed by order id so one order's
// events stay on one partition.
type KafkaPublisher struct {
	Writer  MessageWriter
	Timeout time.Duration
	log     logrus.FieldLogger
}

var _ service.OrderObserver = (*KafkaPublisher)(nil)

func NewKafkaPublisher(writer MessageWriter, timeout time.Duration, log logrus.FieldLogger) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &KafkaPublisher{Writer: writer, Timeout: timeout, log: log}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode order event")
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Time:  event.Timestamp,
	})
}

// OrderChanged publishes the event and only logs a failure: the journal
// never blocks a mutation.
func (p *KafkaPublisher) OrderChanged(event domain.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	if err := p.PublishOrderEvent(ctx, event); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"order_id": event.OrderID,
			"type":     event.Type,
		}).Warn("order event not published")
	}
}
