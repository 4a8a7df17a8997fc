package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRelayTransitionsCommandIsNotConstructed = errors.New(
	"RelayTransitionsCommand must be created via NewRelayTransitionsCommand constructor",
)

const MaxRelayBatchSize = 1000

type RelayTransitionsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayTransitionsCommand(batchSize int) (RelayTransitionsCommand, error) {
	if batchSize < 1 || batchSize > MaxRelayBatchSize {
		return RelayTransitionsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxRelayBatchSize)
	}
	return RelayTransitionsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayTransitionsCommand) Validate() error {
	return c.guard.Validate(ErrRelayTransitionsCommandIsNotConstructed)
}

func (c RelayTransitionsCommand) BatchSize() int { return c.batchSize }
