package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkPaidCommandIsNotConstructed = errors.New(
	"MarkPaidCommand must be created via NewMarkPaidCommand constructor",
)

type MarkPaidCommand struct {
	orderID kernel.SalesOrderID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewMarkPaidCommand(orderID kernel.SalesOrderID, actor kernel.Actor) (MarkPaidCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return MarkPaidCommand{}, err
	}
	return MarkPaidCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaidCommandIsNotConstructed)
}

func (c MarkPaidCommand) OrderID() kernel.SalesOrderID { return c.orderID }
func (c MarkPaidCommand) Actor() kernel.Actor          { return c.actor }
