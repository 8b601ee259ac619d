package ports

import "context"

// EventPublisher delivers a message to a broker topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}
