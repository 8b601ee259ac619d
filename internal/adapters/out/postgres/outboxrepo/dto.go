// Package outboxrepo stores domain events in the outbox_messages table so that they are
// written in the same transaction as the aggregates that raised them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"candydelivery/internal/core/domain/model/events"
	"candydelivery/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is one stored event. Seq is assigned by the database in insertion
// order. PublishedAt stays NULL until the relay delivers it.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	Name        string     `gorm:"type:varchar(64);not null"`
	Key         string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// envelope is the published message body.
type envelope struct {
	ID         uuid.UUID          `json:"id"`
	Type       string             `json:"type"`
	OccurredAt time.Time          `json:"occurred_at"`
	Data       events.DomainEvent `json:"data"`
}

func fromDomain(event events.DomainEvent) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(envelope{
		ID:         event.ID(),
		Type:       event.Name(),
		OccurredAt: event.OccurredAt().UTC(),
		Data:       event,
	})
	if err != nil {
		return OutboxMessageDTO{}, err
	}

	return OutboxMessageDTO{
		ID:         event.ID(),
		Name:       event.Name(),
		Key:        event.Key(),
		Payload:    payload,
		OccurredAt: event.OccurredAt().UTC(),
	}, nil
}

func toMessage(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:         dto.ID,
		Name:       dto.Name,
		Key:        dto.Key,
		Payload:    dto.Payload,
		OccurredAt: dto.OccurredAt.UTC(),
	}
}
