package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// RelayReport describes one relay run.
type RelayReport struct {
	Picked    int
	Published []history.Record

	// PublishErr is the sink failure that stopped the run, if any. The
	// record it failed on and everything after it stay pending.
	PublishErr error
}

// RelayTransitionsCommandHandler hands unpublished transition log rows to
// the notification sink, oldest first. A sink failure stops the run so
// subscribers never see an entity's transitions out of order.
type RelayTransitionsCommandHandler struct {
	outbox ports.TransitionOutbox
	sink   ports.NotificationSink
}

func NewRelayTransitionsCommandHandler(
	outbox ports.TransitionOutbox,
	sink ports.NotificationSink,
) RelayTransitionsCommandHandler {
	return RelayTransitionsCommandHandler{outbox: outbox, sink: sink}
}

func (h RelayTransitionsCommandHandler) Handle(
	ctx context.Context,
	command RelayTransitionsCommand,
) (RelayReport, error) {
	if err := command.Validate(); err != nil {
		return RelayReport{}, err
	}

	pending, err := h.outbox.Pending(ctx, command.BatchSize())
	if err != nil {
		return RelayReport{}, fmt.Errorf("read pending transitions: %w", err)
	}
	report := RelayReport{Picked: len(pending)}

	published := make([]kernel.UUID, 0, len(pending))
	for _, record := range pending {
		if err := h.sink.Publish(ctx, record); err != nil {
			report.PublishErr = err
			break
		}
		published = append(published, record.ID)
		report.Published = append(report.Published, record)
	}

	if err := h.outbox.MarkPublished(ctx, published); err != nil {
		// The sink saw these; they will be sent again next run.
		return RelayReport{Picked: report.Picked}, fmt.Errorf("mark transitions published: %w", err)
	}
	return report, nil
}
