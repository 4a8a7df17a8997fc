package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRecords(n int) []history.Record {
	entityID := kernel.NewUUID()
	records := make([]history.Record, 0, n)
	for range n {
		records = append(records, history.Record{
			ID:         kernel.NewUUID(),
			Entity:     transition.SalesOrder,
			EntityID:   entityID,
			Transition: transition.StartMaterialProcurement,
			Actor:      admin,
		})
	}
	return records
}

func ids(records []history.Record) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestNewRelayTransitionsCommand(t *testing.T) {
	_, err := commands.NewRelayTransitionsCommand(0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	_, err = commands.NewRelayTransitionsCommand(commands.MaxRelayBatchSize + 1)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewRelayTransitionsCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())
}

func TestRelayTransitionsCommandHandler_Handle(t *testing.T) {
	t.Run("publishes in order and marks everything", func(t *testing.T) {
		ctx := t.Context()
		records := pendingRecords(3)
		outbox := new(MockTransitionOutbox)
		sink := new(MockNotificationSink)
		outbox.On("Pending", ctx, 10).Return(records, nil).Once()
		for _, r := range records {
			sink.On("Publish", ctx, r).Return(nil).Once()
		}
		outbox.On("MarkPublished", ctx, ids(records)).Return(nil).Once()
		cmd, err := commands.NewRelayTransitionsCommand(10)
		require.NoError(t, err)

		report, err := commands.NewRelayTransitionsCommandHandler(outbox, sink).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Picked)
		assert.Equal(t, records, report.Published)
		assert.NoError(t, report.PublishErr)
		outbox.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("stops at the first sink failure", func(t *testing.T) {
		ctx := t.Context()
		records := pendingRecords(3)
		outbox := new(MockTransitionOutbox)
		sink := new(MockNotificationSink)
		brokerDown := errors.New("connection refused")
		outbox.On("Pending", ctx, 10).Return(records, nil).Once()
		sink.On("Publish", ctx, records[0]).Return(nil).Once()
		sink.On("Publish", ctx, records[1]).Return(brokerDown).Once()
		outbox.On("MarkPublished", ctx, ids(records[:1])).Return(nil).Once()
		cmd, err := commands.NewRelayTransitionsCommand(10)
		require.NoError(t, err)

		report, err := commands.NewRelayTransitionsCommandHandler(outbox, sink).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Picked)
		assert.Len(t, report.Published, 1)
		assert.ErrorIs(t, report.PublishErr, brokerDown)
		sink.AssertNotCalled(t, "Publish", ctx, records[2])
		outbox.AssertExpectations(t)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctx := t.Context()
		outbox := new(MockTransitionOutbox)
		sink := new(MockNotificationSink)
		outbox.On("Pending", ctx, 5).Return([]history.Record{}, nil).Once()
		outbox.On("MarkPublished", ctx, mock.Anything).Return(nil).Once()
		cmd, err := commands.NewRelayTransitionsCommand(5)
		require.NoError(t, err)

		report, err := commands.NewRelayTransitionsCommandHandler(outbox, sink).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, report.Picked)
		sink.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("outbox read failure", func(t *testing.T) {
		ctx := t.Context()
		outbox := new(MockTransitionOutbox)
		outbox.On("Pending", ctx, 5).Return(nil, errors.New("db down")).Once()
		cmd, err := commands.NewRelayTransitionsCommand(5)
		require.NoError(t, err)

		_, err = commands.NewRelayTransitionsCommandHandler(outbox, new(MockNotificationSink)).Handle(ctx, cmd)

		require.Error(t, err)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := commands.NewRelayTransitionsCommandHandler(nil, nil).Handle(t.Context(), commands.RelayTransitionsCommand{})
		assert.ErrorIs(t, err, commands.ErrRelayTransitionsCommandIsNotConstructed)
	})
}
