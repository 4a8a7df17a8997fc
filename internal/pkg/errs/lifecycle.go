package errs

import (
	"errors"
	"fmt"
)

// Lifecycle sentinels. The first four are the denial reasons of the
// transition validator.
var (
	ErrUnknownTransition      = errors.New("unknown transition")
	ErrIllegalFromState       = errors.New("illegal from state")
	ErrRoleNotPermitted       = errors.New("role not permitted")
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrNotOwner               = errors.New("not owner")
	ErrNotArchived            = errors.New("not archived")
	ErrAlreadyArchived        = errors.New("already archived")
	ErrDuplicateCreation      = errors.New("duplicate creation")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrOrderNumberTaken       = errors.New("order number taken")
)

// TransitionDeniedError carries the denial reason of a rejected transition.
// Reason is one of ErrUnknownTransition, ErrIllegalFromState,
// ErrRoleNotPermitted or ErrPreconditionFailed and is what Unwrap returns.
type TransitionDeniedError struct {
	Reason     error
	Entity     string
	Transition string
	From       string
	Role       string
	Cause      error
}

func NewTransitionDeniedError(reason error, entity, transition, from, role string) *TransitionDeniedError {
	return &TransitionDeniedError{Reason: reason, Entity: entity, Transition: transition, From: from, Role: role}
}

// NewPreconditionFailedError is a shortcut for cross-entity rule violations
// detected outside the transition table.
func NewPreconditionFailedError(entity, transition string, cause error) *TransitionDeniedError {
	return &TransitionDeniedError{
		Reason:     ErrPreconditionFailed,
		Entity:     entity,
		Transition: transition,
		Cause:      cause,
	}
}

func (e *TransitionDeniedError) Error() string {
	msg := fmt.Sprintf("%s: %s on %s", e.Reason, e.Transition, e.Entity)
	if e.From != "" {
		msg += " from " + e.From
	}
	if e.Role != "" {
		msg += " by " + e.Role
	}
	return withCause(msg, e.Cause)
}

func (e *TransitionDeniedError) Unwrap() error {
	return e.Reason
}

// NotOwnerError reports that the entity belongs to another customer or supplier.
type NotOwnerError struct {
	ParamName string
	ID        any
	ActorID   any
}

func NewNotOwnerError(paramName string, id, actorID any) *NotOwnerError {
	return &NotOwnerError{ParamName: paramName, ID: id, ActorID: actorID}
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("%s: %s %s is not owned by %s", ErrNotOwner, e.ParamName, sanitize(e.ID), sanitize(e.ActorID))
}

func (e *NotOwnerError) Unwrap() error {
	return ErrNotOwner
}

// NotArchivedError reports a reopen of an entity that is active.
type NotArchivedError struct {
	ParamName string
	ID        any
}

func NewNotArchivedError(paramName string, id any) *NotArchivedError {
	return &NotArchivedError{ParamName: paramName, ID: id}
}

func (e *NotArchivedError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrNotArchived, e.ParamName, sanitize(e.ID))
}

func (e *NotArchivedError) Unwrap() error {
	return ErrNotArchived
}

// AlreadyArchivedError reports a mutation attempted on an archived entity.
type AlreadyArchivedError struct {
	ParamName string
	ID        any
}

func NewAlreadyArchivedError(paramName string, id any) *AlreadyArchivedError {
	return &AlreadyArchivedError{ParamName: paramName, ID: id}
}

func (e *AlreadyArchivedError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAlreadyArchived, e.ParamName, sanitize(e.ID))
}

func (e *AlreadyArchivedError) Unwrap() error {
	return ErrAlreadyArchived
}

// DuplicateCreationError is raised by the store when a uniqueness constraint
// rejects an insert. Handlers resolve it to the existing row.
type DuplicateCreationError struct {
	ParamName string
	Key       any
	Cause     error
}

func NewDuplicateCreationError(paramName string, key any, cause error) *DuplicateCreationError {
	return &DuplicateCreationError{ParamName: paramName, Key: key, Cause: cause}
}

func (e *DuplicateCreationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrDuplicateCreation, e.ParamName, sanitize(e.Key)), e.Cause)
}

func (e *DuplicateCreationError) Unwrap() error {
	return ErrDuplicateCreation
}

// ConcurrentModificationError is raised when an update is based on a stale read.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// OrderNumberTakenError is raised when a new sales order carries a number
// another order already holds. It points at a numberer that fell behind the
// store, not at a client mistake.
type OrderNumberTakenError struct {
	Number string
	Cause  error
}

func NewOrderNumberTakenError(number string, cause error) *OrderNumberTakenError {
	return &OrderNumberTakenError{Number: number, Cause: cause}
}

func (e *OrderNumberTakenError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrOrderNumberTaken, sanitize(e.Number)), e.Cause)
}

func (e *OrderNumberTakenError) Unwrap() error {
	return ErrOrderNumberTaken
}
