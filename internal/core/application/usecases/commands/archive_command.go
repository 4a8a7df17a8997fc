package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrArchiveCommandIsNotConstructed = errors.New(
		"ArchiveCommand must be created via NewArchiveCommand constructor",
	)
	ErrReopenCommandIsNotConstructed = errors.New(
		"ReopenCommand must be created via NewReopenCommand constructor",
	)
)

// ArchiveCommand hides a delivered purchase or sales order from the active
// listings. Archiving an archived entity succeeds without change.
type ArchiveCommand struct {
	entity transition.EntityType
	id     kernel.UUID
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewArchiveCommand(entity transition.EntityType, id kernel.UUID, actor kernel.Actor) (ArchiveCommand, error) {
	via, ok := transition.ArchiveFor(entity)
	if err := errors.Join(id.Validate(), actor.Validate(), archivable(entity, via, ok, actor)); err != nil {
		return ArchiveCommand{}, err
	}
	return ArchiveCommand{entity: entity, id: id, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ArchiveCommand) Validate() error {
	return c.guard.Validate(ErrArchiveCommandIsNotConstructed)
}

func (c ArchiveCommand) Entity() transition.EntityType { return c.entity }
func (c ArchiveCommand) ID() kernel.UUID               { return c.id }
func (c ArchiveCommand) Actor() kernel.Actor           { return c.actor }

// ReopenCommand clears the archived flag of an entity, leaving its status
// untouched.
type ReopenCommand struct {
	entity transition.EntityType
	id     kernel.UUID
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewReopenCommand(entity transition.EntityType, id kernel.UUID, actor kernel.Actor) (ReopenCommand, error) {
	via, ok := transition.ReopenFor(entity)
	if err := errors.Join(id.Validate(), actor.Validate(), archivable(entity, via, ok, actor)); err != nil {
		return ReopenCommand{}, err
	}
	return ReopenCommand{entity: entity, id: id, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ReopenCommand) Validate() error {
	return c.guard.Validate(ErrReopenCommandIsNotConstructed)
}

func (c ReopenCommand) Entity() transition.EntityType { return c.entity }
func (c ReopenCommand) ID() kernel.UUID               { return c.id }
func (c ReopenCommand) Actor() kernel.Actor           { return c.actor }

func archivable(entity transition.EntityType, via transition.Name, ok bool, actor kernel.Actor) error {
	if ok {
		return nil
	}
	return errs.NewTransitionDeniedError(errs.ErrUnknownTransition, entity.String(), via.String(), "",
		actor.Role().String())
}

// ArchiveState is the archive-relevant state of an entity after an archive
// or reopen.
type ArchiveState struct {
	Entity     transition.EntityType
	ID         kernel.UUID
	Status     string
	ArchivedAt *time.Time
}

func (s ArchiveState) IsArchived() bool {
	return s.ArchivedAt != nil
}
