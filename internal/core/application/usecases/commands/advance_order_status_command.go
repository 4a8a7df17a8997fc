package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves a sales order one stage forward into
// next. Shipping details are accepted only together with next = shipped.
type AdvanceOrderStatusCommand struct {
	orderID  kernel.SalesOrderID
	actor    kernel.Actor
	next     salesorder.Status
	shipping *salesorder.Shipping

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(
	orderID kernel.SalesOrderID,
	actor kernel.Actor,
	next salesorder.Status,
	shipping *salesorder.Shipping,
) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate(), next.Validate()); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	cmd := AdvanceOrderStatusCommand{
		orderID: orderID,
		actor:   actor,
		next:    next,
		guard:   guard.NewConstructorGuard(),
	}
	if shipping != nil {
		s := *shipping
		cmd.shipping = &s
	}
	return cmd, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.SalesOrderID    { return c.orderID }
func (c AdvanceOrderStatusCommand) Actor() kernel.Actor             { return c.actor }
func (c AdvanceOrderStatusCommand) Next() salesorder.Status         { return c.next }
func (c AdvanceOrderStatusCommand) Shipping() *salesorder.Shipping { return c.shipping }
