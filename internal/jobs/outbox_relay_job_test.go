package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"candydelivery/internal/core/application/usecases/commands"
	"candydelivery/internal/jobs"
	"candydelivery/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxPublisher struct {
	mock.Mock
}

func (m *MockOutboxPublisher) Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func newJob(handler jobs.OutboxPublisher, schedule string, batchSize int) (*jobs.OutboxRelayJob, *metrics.Recorder) {
	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobs.NewOutboxRelayJob(handler, schedule, batchSize, recorder, logger), recorder
}

func TestOutboxRelayJob_RunOnce(t *testing.T) {
	t.Run("counts published messages", func(t *testing.T) {
		handler := &MockOutboxPublisher{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PublishOutboxCommand) bool {
			return cmd.BatchSize() == 50
		})).Return(3, nil).Once()
		job, recorder := newJob(handler, "*/2 * * * * *", 50)

		published := job.RunOnce(t.Context())

		assert.Equal(t, 3, published)
		assert.InDelta(t, 3, testutil.ToFloat64(recorder.OutboxPublished), 0)
		handler.AssertExpectations(t)
	})

	t.Run("partial batch before a broker error is still counted", func(t *testing.T) {
		handler := &MockOutboxPublisher{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("kafka publish: broker down")).Once()
		job, recorder := newJob(handler, "*/2 * * * * *", 50)

		published := job.RunOnce(t.Context())

		assert.Equal(t, 1, published)
		assert.InDelta(t, 1, testutil.ToFloat64(recorder.OutboxPublished), 0)
	})

	t.Run("invalid batch size never reaches the handler", func(t *testing.T) {
		handler := &MockOutboxPublisher{}
		job, _ := newJob(handler, "*/2 * * * * *", 0)

		assert.Zero(t, job.RunOnce(t.Context()))
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestJobManager(t *testing.T) {
	t.Run("starts and stops", func(t *testing.T) {
		job, _ := newJob(&MockOutboxPublisher{}, "0 0 0 1 1 *", 10)
		manager := jobs.NewJobManager(job)

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("bad schedule", func(t *testing.T) {
		job, _ := newJob(&MockOutboxPublisher{}, "every now and then", 10)
		manager := jobs.NewJobManager(job)

		err := manager.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "outbox relay job")
	})
}
