package transition

import (
	"fmt"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// State is implemented by every lifecycle status enum.
type State interface {
	comparable
	fmt.Stringer
}

type edgeKey[S State] struct {
	from S
	via  Name
}

// Table is the adjacency list of one entity type. Tables are built at package
// initialisation and are read-only afterwards, so they are safe for
// concurrent use.
type Table[S State] struct {
	entity        EntityType
	states        []S
	edges         map[edgeKey[S]]S
	transitions   map[Name]struct{}
	preconditions map[Name]struct{}
}

// Validator is the type-erased view of a Table used by callers that only
// hold persisted status strings.
type Validator interface {
	Entity() EntityType
	Transitions() []Name
	ValidateString(from string, via Name, role kernel.Role) (string, error)
}

// NewTable starts a table over the given closed set of states.
func NewTable[S State](entity EntityType, states ...S) *Table[S] {
	return &Table[S]{
		entity:        entity,
		states:        states,
		edges:         make(map[edgeKey[S]]S),
		transitions:   make(map[Name]struct{}),
		preconditions: make(map[Name]struct{}),
	}
}

// Edge declares that via moves each of from to to. It panics on states
// outside the table or on a conflicting edge; both are programming errors.
func (t *Table[S]) Edge(via Name, to S, from ...S) *Table[S] {
	t.mustContain(to)
	for _, f := range from {
		t.mustContain(f)
		key := edgeKey[S]{from: f, via: via}
		if existing, ok := t.edges[key]; ok && existing != to {
			panic(fmt.Sprintf("%s: %s from %s already leads to %s", t.entity, via, f, existing))
		}
		t.edges[key] = to
	}
	t.transitions[via] = struct{}{}
	return t
}

// Stay declares via as a self-loop on each of states.
func (t *Table[S]) Stay(via Name, states ...S) *Table[S] {
	for _, s := range states {
		t.Edge(via, s, s)
	}
	return t
}

// Precondition marks via so that a missing edge is reported as
// PreconditionFailed rather than IllegalFromState. Archive is the typical
// case: it is structurally legal but requires a delivered entity.
func (t *Table[S]) Precondition(via Name) *Table[S] {
	t.preconditions[via] = struct{}{}
	return t
}

func (t *Table[S]) Entity() EntityType {
	return t.entity
}

func (t *Table[S]) States() []S {
	return slices.Clone(t.states)
}

// Transitions returns the transitions that have at least one edge, sorted.
func (t *Table[S]) Transitions() []Name {
	names := make([]Name, 0, len(t.transitions))
	for n := range t.transitions {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Next looks up the edge without role gating.
func (t *Table[S]) Next(from S, via Name) (S, bool) {
	next, ok := t.edges[edgeKey[S]{from: from, via: via}]
	return next, ok
}

// Validate returns the next state or a *errs.TransitionDeniedError. Checks
// run in a fixed order: unknown transition, role, then source state.
func (t *Table[S]) Validate(from S, via Name, role kernel.Role) (S, error) {
	var zero S

	if _, ok := t.transitions[via]; !ok || !Known(via) {
		return zero, t.deny(errs.ErrUnknownTransition, from, via, role)
	}

	if !Permits(via, role) {
		return zero, t.deny(errs.ErrRoleNotPermitted, from, via, role)
	}

	if next, ok := t.Next(from, via); ok {
		return next, nil
	}

	if _, ok := t.preconditions[via]; ok {
		return zero, t.deny(errs.ErrPreconditionFailed, from, via, role)
	}

	return zero, t.deny(errs.ErrIllegalFromState, from, via, role)
}

// ValidateString parses from against the table's states and validates.
func (t *Table[S]) ValidateString(from string, via Name, role kernel.Role) (string, error) {
	idx := slices.IndexFunc(t.states, func(s S) bool { return s.String() == from })
	if idx < 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a %s status", from, t.entity))
	}

	next, err := t.Validate(t.states[idx], via, role)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

func (t *Table[S]) deny(reason error, from S, via Name, role kernel.Role) error {
	return errs.NewTransitionDeniedError(reason, t.entity.String(), via.String(), from.String(), role.String())
}

func (t *Table[S]) mustContain(s S) {
	if !slices.Contains(t.states, s) {
		panic(fmt.Sprintf("%s: state %s is not declared", t.entity, s))
	}
}
