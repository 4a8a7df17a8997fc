package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

// MaxAttempts bounds how many times a read-validate-write unit is replayed
// after losing an optimistic concurrency race.
const MaxAttempts = 3

// retryOnConflict runs unit until it stops failing with a concurrent
// modification. A replay re-reads fresh state, so a racing transition that
// already moved the entity surfaces as the domain's own denial
// (IllegalFromState). Exhausting the attempts is reported as
// PreconditionFailed.
func retryOnConflict(
	ctx context.Context,
	entity transition.EntityType,
	via transition.Name,
	unit func() error,
) error {
	var err error
	for range MaxAttempts {
		if err = unit(); !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return errs.NewPreconditionFailedError(entity.String(), via.String(), err)
}
