package commands

import (
	"context"
	"fmt"

	"candydelivery/internal/core/ports"

	"github.com/google/uuid"
)

// PublishOutboxCommandHandler moves pending outbox messages to the broker.
//
// Messages are published in the order they were stored, with the courier id as the partition key,
// so events of one courier keep their order. Publication stops at the first broker
// error; messages published before it are still marked and committed, the rest are
// retried by the next run.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	topic      string
}

// NewPublishOutboxCommandHandler creates the relay handler for the given topic.
func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	topic string,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		topic:      topic,
	}
}

// Handle relays one batch and returns how many messages were published.
func (h PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	pending, err := outboxRepo.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]uuid.UUID, 0, len(pending))
	var publishErr error
	for _, msg := range pending {
		if publishErr = h.publisher.Publish(ctx, h.topic, []byte(msg.Key), msg.Payload); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", msg.Name, msg.ID, publishErr)
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) == 0 {
		return 0, publishErr
	}

	if err = outboxRepo.MarkPublished(ctx, published, cmd.At()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(published), publishErr
}
