package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrReorderCommandIsNotConstructed = errors.New(
	"ReorderCommand must be created via NewReorderCommand constructor",
)

// ReorderCommand asks for a new RFQ derived from one of the customer's
// finished sales orders.
type ReorderCommand struct {
	rfqID         kernel.RFQID
	sourceOrderID kernel.SalesOrderID
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

func NewReorderCommand(
	rfqID kernel.RFQID,
	sourceOrderID kernel.SalesOrderID,
	actor kernel.Actor,
) (ReorderCommand, error) {
	if err := errors.Join(rfqID.Validate(), sourceOrderID.Validate(), actor.Validate()); err != nil {
		return ReorderCommand{}, err
	}
	return ReorderCommand{
		rfqID:         rfqID,
		sourceOrderID: sourceOrderID,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ReorderCommand) Validate() error {
	return c.guard.Validate(ErrReorderCommandIsNotConstructed)
}

func (c ReorderCommand) RFQID() kernel.RFQID                { return c.rfqID }
func (c ReorderCommand) SourceOrderID() kernel.SalesOrderID { return c.sourceOrderID }
func (c ReorderCommand) Actor() kernel.Actor                { return c.actor }
