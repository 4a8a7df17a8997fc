// Package transitionlog stores every applied transition. The log doubles as
// a transactional outbox: rows are written with the aggregate change and
// relayed to the notification sink afterwards.
package transitionlog

import (
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"

	"github.com/google/uuid"
)

type RecordDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	EntityType  string     `gorm:"not null;index:ix_transition_log_entity,priority:1"`
	EntityID    uuid.UUID  `gorm:"type:uuid;not null;index:ix_transition_log_entity,priority:2"`
	Transition  string     `gorm:"not null"`
	FromState   string     `gorm:"not null"`
	ToState     string     `gorm:"not null"`
	ActorID     uuid.UUID  `gorm:"type:uuid;not null"`
	ActorRole   string     `gorm:"not null"`
	Override    bool       `gorm:"not null"`
	Note        string     `gorm:"not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (RecordDTO) TableName() string {
	return "transition_log"
}

func fromRecord(r history.Record) RecordDTO {
	return RecordDTO{
		ID:         r.ID.Bytes(),
		EntityType: r.Entity.String(),
		EntityID:   r.EntityID.Bytes(),
		Transition: r.Transition.String(),
		FromState:  r.From,
		ToState:    r.To,
		ActorID:    r.Actor.ID().Bytes(),
		ActorRole:  r.Actor.Role().String(),
		Override:   r.Override,
		Note:       r.Note,
		OccurredAt: r.OccurredAt,
	}
}

func toRecord(dto RecordDTO) (history.Record, error) {
	id, err := kernel.FromRaw(dto.ID)
	if err != nil {
		return history.Record{}, err
	}
	entity, err := transition.EntityTypeFromString(dto.EntityType)
	if err != nil {
		return history.Record{}, err
	}
	entityID, err := kernel.FromRaw(dto.EntityID)
	if err != nil {
		return history.Record{}, err
	}
	actorID, err := kernel.FromRaw(dto.ActorID)
	if err != nil {
		return history.Record{}, err
	}
	role, err := kernel.RoleFromString(dto.ActorRole)
	if err != nil {
		return history.Record{}, err
	}
	actor, err := kernel.NewActor(actorID, role)
	if err != nil {
		return history.Record{}, err
	}

	return history.Record{
		ID:         id,
		Entity:     entity,
		EntityID:   entityID,
		Transition: transition.Name(dto.Transition),
		From:       dto.FromState,
		To:         dto.ToState,
		Actor:      actor,
		Override:   dto.Override,
		Note:       dto.Note,
		OccurredAt: dto.OccurredAt.UTC(),
	}, nil
}
