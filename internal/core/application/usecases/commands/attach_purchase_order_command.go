package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/pkg/guard"
)

var ErrAttachPurchaseOrderCommandIsNotConstructed = errors.New(
	"AttachPurchaseOrderCommand must be created via NewAttachPurchaseOrderCommand constructor",
)

// AttachPurchaseOrderCommand links the customer's purchase order document
// to an accepted sales quote.
type AttachPurchaseOrderCommand struct {
	quoteID kernel.SalesQuoteID
	actor   kernel.Actor
	ref     salesquote.PurchaseOrderRef

	guard guard.ConstructorGuard
}

func NewAttachPurchaseOrderCommand(
	quoteID kernel.SalesQuoteID,
	actor kernel.Actor,
	fileRef string,
	poNumber string,
) (AttachPurchaseOrderCommand, error) {
	ref, refErr := salesquote.NewPurchaseOrderRef(fileRef, poNumber)
	if err := errors.Join(quoteID.Validate(), actor.Validate(), refErr); err != nil {
		return AttachPurchaseOrderCommand{}, err
	}
	return AttachPurchaseOrderCommand{
		quoteID: quoteID,
		actor:   actor,
		ref:     ref,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AttachPurchaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrAttachPurchaseOrderCommandIsNotConstructed)
}

func (c AttachPurchaseOrderCommand) QuoteID() kernel.SalesQuoteID           { return c.quoteID }
func (c AttachPurchaseOrderCommand) Actor() kernel.Actor                    { return c.actor }
func (c AttachPurchaseOrderCommand) Reference() salesquote.PurchaseOrderRef { return c.ref }
