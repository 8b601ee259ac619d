package commands_test

import (
	"errors"
	"testing"

	"candydelivery/internal/core/application/usecases/commands"
	"candydelivery/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const eventsTopic = "candy.events"

func outboxMessages() []ports.OutboxMessage {
	return []ports.OutboxMessage{
		{ID: uuid.New(), Name: "orders.assigned", Key: "1", Payload: []byte(`{"courier_id":1}`), OccurredAt: now},
		{ID: uuid.New(), Name: "order.completed", Key: "1", Payload: []byte(`{"order_id":3}`), OccurredAt: now},
		{ID: uuid.New(), Name: "orders.assigned", Key: "2", Payload: []byte(`{"courier_id":2}`), OccurredAt: now},
	}
}

func TestPublishOutboxCommandHandler_Handle_PublishesAll(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishOutboxCommand(10, now)
	require.NoError(t, err)

	msgs := outboxMessages()
	outboxRepo := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	uowFactory := new(MockOutboxUoWFactory)

	mock.InOrder(
		uowFactory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("GetUnpublished", ctx, 10).Return(msgs, nil).Once(),
		publisher.On("Publish", ctx, eventsTopic, []byte("1"), msgs[0].Payload).Return(nil).Once(),
		publisher.On("Publish", ctx, eventsTopic, []byte("1"), msgs[1].Payload).Return(nil).Once(),
		publisher.On("Publish", ctx, eventsTopic, []byte("2"), msgs[2].Payload).Return(nil).Once(),
		outboxRepo.On("MarkPublished", ctx, []uuid.UUID{msgs[0].ID, msgs[1].ID, msgs[2].ID}, now).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPublishOutboxCommandHandler(uowFactory, publisher, eventsTopic)
	n, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	publisher.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle_StopsAtFirstBrokerError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishOutboxCommand(10, now)
	require.NoError(t, err)

	msgs := outboxMessages()
	brokerErr := errors.New("leader not available")
	outboxRepo := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	uowFactory := new(MockOutboxUoWFactory)

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()
	outboxRepo.On("GetUnpublished", ctx, 10).Return(msgs, nil).Once()
	publisher.On("Publish", ctx, eventsTopic, []byte("1"), msgs[0].Payload).Return(nil).Once()
	publisher.On("Publish", ctx, eventsTopic, []byte("1"), msgs[1].Payload).Return(brokerErr).Once()
	outboxRepo.On("MarkPublished", ctx, []uuid.UUID{msgs[0].ID}, now).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPublishOutboxCommandHandler(uowFactory, publisher, eventsTopic)
	n, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "order.completed")
	assert.Equal(t, 1, n)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
	outboxRepo.AssertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishOutboxCommand(10, now)
	require.NoError(t, err)

	outboxRepo := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	uowFactory := new(MockOutboxUoWFactory)

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()
	outboxRepo.On("GetUnpublished", ctx, 10).Return([]ports.OutboxMessage{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPublishOutboxCommandHandler(uowFactory, publisher, eventsTopic)
	n, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestPublishOutboxCommandHandler_Handle_FirstMessageFails(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishOutboxCommand(10, now)
	require.NoError(t, err)

	msgs := outboxMessages()[:1]
	brokerErr := errors.New("broker down")
	outboxRepo := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	uowFactory := new(MockOutboxUoWFactory)

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()
	outboxRepo.On("GetUnpublished", ctx, 10).Return(msgs, nil).Once()
	publisher.On("Publish", ctx, eventsTopic, []byte("1"), msgs[0].Payload).Return(brokerErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewPublishOutboxCommandHandler(uowFactory, publisher, eventsTopic)
	n, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, brokerErr)
	assert.Zero(t, n)
	outboxRepo.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
