package commands

import (
	"errors"
	"time"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"
)

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// PublishOutboxCommand relays one batch of stored domain events to the broker.
type PublishOutboxCommand struct {
	batchSize int
	at        time.Time
	guard     guard.ConstructorGuard
}

// NewPublishOutboxCommand creates the command. batchSize must be positive.
func NewPublishOutboxCommand(batchSize int, at time.Time) (PublishOutboxCommand, error) {
	if batchSize <= 0 {
		return PublishOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}

	return PublishOutboxCommand{
		batchSize: batchSize,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages to relay.
func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}

// At returns the publication timestamp.
func (c PublishOutboxCommand) At() time.Time {
	return c.at
}
