package jobs

import (
	"context"
	"log/slog"
	"time"

	"candydelivery/internal/core/application/usecases/commands"
	"candydelivery/internal/metrics"

	"github.com/robfig/cron/v3"
)

// OutboxPublisher relays one batch of stored domain events.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxRelayJob periodically drains the outbox into the broker.
// A run is skipped while the previous one is still in progress.
type OutboxRelayJob struct {
	handler   OutboxPublisher
	schedule  string
	batchSize int
	metrics   *metrics.Recorder
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job. schedule is a cron expression with a seconds field.
func NewOutboxRelayJob(
	handler OutboxPublisher,
	schedule string,
	batchSize int,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		metrics:   recorder,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays one batch and returns the number of published messages.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize, time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return 0
	}

	published, err := j.handler.Handle(ctx, cmd)
	if published > 0 {
		j.metrics.Published(published)
		j.logger.DebugContext(ctx, "Outbox batch relayed", "published", published)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "published", published, "error", err)
	}
	return published
}

// Stop stops the scheduler and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
