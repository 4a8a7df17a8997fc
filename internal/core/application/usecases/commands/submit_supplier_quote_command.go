package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSubmitSupplierQuoteCommandIsNotConstructed = errors.New(
	"SubmitSupplierQuoteCommand must be created via NewSubmitSupplierQuoteCommand constructor",
)

// SubmitSupplierQuoteCommand is an assigned supplier's bid on an RFQ.
type SubmitSupplierQuoteCommand struct {
	quoteID      kernel.SupplierQuoteID
	rfqID        kernel.RFQID
	actor        kernel.Actor
	price        kernel.Money
	leadTimeDays int

	guard guard.ConstructorGuard
}

func NewSubmitSupplierQuoteCommand(
	quoteID kernel.SupplierQuoteID,
	rfqID kernel.RFQID,
	actor kernel.Actor,
	price kernel.Money,
	leadTimeDays int,
) (SubmitSupplierQuoteCommand, error) {
	if err := errors.Join(quoteID.Validate(), rfqID.Validate(), actor.Validate(), price.Validate()); err != nil {
		return SubmitSupplierQuoteCommand{}, err
	}

	return SubmitSupplierQuoteCommand{
		quoteID:      quoteID,
		rfqID:        rfqID,
		actor:        actor,
		price:        price,
		leadTimeDays: leadTimeDays,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitSupplierQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSubmitSupplierQuoteCommandIsNotConstructed)
}

func (c SubmitSupplierQuoteCommand) QuoteID() kernel.SupplierQuoteID { return c.quoteID }
func (c SubmitSupplierQuoteCommand) RFQID() kernel.RFQID             { return c.rfqID }
func (c SubmitSupplierQuoteCommand) Actor() kernel.Actor             { return c.actor }
func (c SubmitSupplierQuoteCommand) Price() kernel.Money             { return c.price }
func (c SubmitSupplierQuoteCommand) LeadTimeDays() int               { return c.leadTimeDays }
