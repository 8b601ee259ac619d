package outboxrepo

import (
	"context"
	"time"

	"candydelivery/internal/core/domain/model/events"
	"candydelivery/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores the events in one insert. Rows get increasing Seq values in argument order.
func (r *GormOutboxRepository) Add(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(evts))
	for _, event := range evts {
		dto, err := fromDomain(event)
		if err != nil {
			return errors.Wrapf(err, "encode event %s", event.Name())
		}
		dtos = append(dtos, dto)
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errors.Wrap(err, "insert outbox messages")
	}
	return nil
}

// GetUnpublished returns up to limit pending messages in insertion order.
// Rows locked by a concurrent relay are skipped.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "select unpublished outbox messages")
	}

	messages := make([]ports.OutboxMessage, len(dtos))
	for i, dto := range dtos {
		messages[i] = toMessage(dto)
	}
	return messages, nil
}

// MarkPublished stamps the messages with the publication time.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("published_at", at.UTC()).Error
	if err != nil {
		return errors.Wrap(err, "mark outbox messages published")
	}
	return nil
}
