// Package logsink is the notification sink for deployments without a
// message broker: each applied transition becomes one structured log line.
package logsink

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/history"
)

type Sink struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Sink {
	return &Sink{logger: logger.With("component", "TransitionNotifications")}
}

func (s *Sink) Publish(ctx context.Context, r history.Record) error {
	s.logger.InfoContext(ctx, "transition applied",
		"entity_type", r.Entity.String(),
		"entity_id", r.EntityID.String(),
		"transition", r.Transition.String(),
		"from", r.From,
		"to", r.To,
		"actor_id", r.Actor.ID().String(),
		"actor_role", r.Actor.Role().String(),
		"override", r.Override,
		"occurred_at", r.OccurredAt,
	)
	return nil
}
