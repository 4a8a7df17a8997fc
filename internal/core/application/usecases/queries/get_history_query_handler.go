package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetHistoryQueryHandler(db *gorm.DB) GetHistoryQueryHandler {
	return GetHistoryQueryHandler{db: db}
}

// Handle refuses customers and suppliers with NotOwner for entities that are
// not theirs, including ids that do not exist.
func (h GetHistoryQueryHandler) Handle(ctx context.Context, query GetHistoryQuery) ([]HistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ensureVisible(ctx, h.db, query.Entity(), query.ID(), query.Actor()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seq,
			transition,
			from_state,
			to_state,
			actor_id,
			actor_role,
			override,
			note,
			occurred_at
		FROM transition_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY seq
	`, query.Entity().String(), query.ID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var (
			entry           HistoryEntry
			rawID, rawActor uuid.UUID
			role            string
		)
		if err = rows.Scan(
			&rawID,
			&entry.Seq,
			&entry.Transition,
			&entry.From,
			&entry.To,
			&rawActor,
			&role,
			&entry.Override,
			&entry.Note,
			&entry.OccurredAt,
		); err != nil {
			return nil, err
		}

		if entry.ID, err = uuidFrom(rawID); err != nil {
			return nil, err
		}
		if entry.ActorID, err = uuidFrom(rawActor); err != nil {
			return nil, err
		}
		if entry.ActorRole, err = kernel.RoleFromString(role); err != nil {
			return nil, err
		}
		entry.OccurredAt = entry.OccurredAt.UTC()
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
