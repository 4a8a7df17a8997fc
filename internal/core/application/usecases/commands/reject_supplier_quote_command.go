package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRejectSupplierQuoteCommandIsNotConstructed = errors.New(
	"RejectSupplierQuoteCommand must be created via NewRejectSupplierQuoteCommand constructor",
)

type RejectSupplierQuoteCommand struct {
	quoteID kernel.SupplierQuoteID
	actor   kernel.Actor
	reason  string

	guard guard.ConstructorGuard
}

func NewRejectSupplierQuoteCommand(
	quoteID kernel.SupplierQuoteID,
	actor kernel.Actor,
	reason string,
) (RejectSupplierQuoteCommand, error) {
	if err := errors.Join(quoteID.Validate(), actor.Validate()); err != nil {
		return RejectSupplierQuoteCommand{}, err
	}
	return RejectSupplierQuoteCommand{
		quoteID: quoteID,
		actor:   actor,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectSupplierQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRejectSupplierQuoteCommandIsNotConstructed)
}

func (c RejectSupplierQuoteCommand) QuoteID() kernel.SupplierQuoteID { return c.quoteID }
func (c RejectSupplierQuoteCommand) Actor() kernel.Actor             { return c.actor }
func (c RejectSupplierQuoteCommand) Reason() string                  { return c.reason }
