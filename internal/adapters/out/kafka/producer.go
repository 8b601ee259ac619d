// Package kafka publishes relayed domain events to a Kafka topic.
package kafka

import (
	"context"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Producer implements ports.EventPublisher on top of a kafka-go writer.
type Producer struct {
	w writer
}

// NewProducer creates a producer for the given brokers. Messages with the same key
// land on the same partition, which keeps one courier's events in order.
func NewProducer(brokers []string) *Producer {
	return newProducerWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	})
}

func newProducerWithWriter(w writer) *Producer {
	return &Producer{w: w}
}

func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Producer) Close() error {
	c, ok := p.w.(interface{ Close() error })
	if !ok {
		return nil
	}
	return errors.Wrap(c.Close(), "kafka close")
}
