package ports

import (
	"context"
	"time"

	"candydelivery/internal/core/domain/model/events"

	"github.com/google/uuid"
)

// OutboxMessage is a stored domain event awaiting publication.
type OutboxMessage struct {
	ID         uuid.UUID
	Name       string
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// OutboxRepository stores domain events in the command's transaction and hands
// them to the relay afterwards.
type OutboxRepository interface {
	// Add serialises and stores events.
	Add(ctx context.Context, events ...events.DomainEvent) error

	// GetUnpublished returns up to limit pending messages in insertion order, locking them
	// so that concurrent relays skip them.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps messages as published.
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
