package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/guard"
)

var ErrGetHistoryQueryIsNotConstructed = errors.New(
	"GetHistoryQuery must be created via NewGetHistoryQuery constructor",
)

// GetHistoryQuery lists the transitions applied to one entity in the order
// they were committed.
type GetHistoryQuery struct {
	entity transition.EntityType
	id     kernel.UUID
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetHistoryQuery(entity transition.EntityType, id kernel.UUID, actor kernel.Actor) (GetHistoryQuery, error) {
	if err := errors.Join(entity.Validate(), id.Validate(), actor.Validate()); err != nil {
		return GetHistoryQuery{}, err
	}
	return GetHistoryQuery{entity: entity, id: id, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHistoryQueryIsNotConstructed)
}

func (q GetHistoryQuery) Entity() transition.EntityType { return q.entity }
func (q GetHistoryQuery) ID() kernel.UUID               { return q.id }
func (q GetHistoryQuery) Actor() kernel.Actor           { return q.actor }

type HistoryEntry struct {
	ID         kernel.UUID
	Seq        int64
	Transition string
	From       string
	To         string
	ActorID    kernel.UUID
	ActorRole  kernel.Role
	Override   bool
	Note       string
	OccurredAt time.Time
}
