package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

func outboxMessages(n int) []ports.OutboxMessage {
	out := make([]ports.OutboxMessage, 0, n)
	for range n {
		out = append(out, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			EventType:   "parcel.status_changed",
			AggregateID: kernel.NewUUID(),
			Payload:     []byte(`{}`),
			OccurredAt:  time.Now().UTC(),
		})
	}
	return out
}

func TestRelayOutboxCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cmd, err := commands.NewRelayOutboxCommand(at, 10)
	require.NoError(t, err)
	messages := outboxMessages(2)

	outbox := new(MockOutboxRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("FetchPending", ctx, 10).Return(messages, nil).Once(),
		publisher.On("Publish", ctx, messages[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, messages[1]).Return(nil).Once(),
		outbox.On("MarkProcessed", ctx, []kernel.UUID{messages[0].ID, messages[1].ID}, at).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)

	// Act
	relayed, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, relayed)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_StopsAtFirstPublishFailure(t *testing.T) {
	ctx := t.Context()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cmd, err := commands.NewRelayOutboxCommand(at, 10)
	require.NoError(t, err)
	messages := outboxMessages(3)
	brokerDown := errors.New("broker unavailable")

	outbox := new(MockOutboxRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("FetchPending", ctx, 10).Return(messages, nil).Once(),
		publisher.On("Publish", ctx, messages[0]).Return(nil).Once(),
		publisher.On("Publish", ctx, messages[1]).Return(brokerDown).Once(),
		outbox.On("MarkProcessed", ctx, []kernel.UUID{messages[0].ID}, at).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)

	relayed, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, brokerDown)
	assert.Equal(t, 1, relayed)
	publisher.AssertNotCalled(t, "Publish", ctx, messages[2])
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(time.Now(), 10)
	require.NoError(t, err)

	outbox := new(MockOutboxRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("FetchPending", ctx, 10).Return([]ports.OutboxMessage{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)

	relayed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, relayed)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRelayOutboxCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(time.Now(), 10)
	require.NoError(t, err)

	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewRelayOutboxCommandHandler(factory, new(MockEventPublisher))

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin error")
	uow.AssertNotCalled(t, "Rollback", ctx)
}

func TestNewRelayOutboxCommand_Validation(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(time.Time{}, 10)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRelayOutboxCommand(time.Now(), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	handler := commands.NewRelayOutboxCommandHandler(new(MockOutboxUoWFactory), new(MockEventPublisher))
	_, err = handler.Handle(t.Context(), commands.RelayOutboxCommand{})
	require.ErrorIs(t, err, commands.ErrRelayOutboxCommandIsNotConstructed)
}
