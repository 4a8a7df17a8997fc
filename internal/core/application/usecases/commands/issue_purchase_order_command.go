package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrIssuePurchaseOrderCommandIsNotConstructed = errors.New(
	"IssuePurchaseOrderCommand must be created via NewIssuePurchaseOrderCommand constructor",
)

// IssuePurchaseOrderCommand creates the admin's order to the supplier whose
// quote won. deliveryDate defaults to the sales quote's estimated delivery.
type IssuePurchaseOrderCommand struct {
	purchaseOrderID kernel.PurchaseOrderID
	quoteID         kernel.SalesQuoteID
	actor           kernel.Actor
	deliveryDate    *time.Time

	guard guard.ConstructorGuard
}

func NewIssuePurchaseOrderCommand(
	purchaseOrderID kernel.PurchaseOrderID,
	quoteID kernel.SalesQuoteID,
	actor kernel.Actor,
	deliveryDate *time.Time,
) (IssuePurchaseOrderCommand, error) {
	if err := errors.Join(purchaseOrderID.Validate(), quoteID.Validate(), actor.Validate()); err != nil {
		return IssuePurchaseOrderCommand{}, err
	}
	cmd := IssuePurchaseOrderCommand{
		purchaseOrderID: purchaseOrderID,
		quoteID:         quoteID,
		actor:           actor,
		guard:           guard.NewConstructorGuard(),
	}
	if deliveryDate != nil {
		d := *deliveryDate
		cmd.deliveryDate = &d
	}
	return cmd, nil
}

func (c IssuePurchaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrIssuePurchaseOrderCommandIsNotConstructed)
}

func (c IssuePurchaseOrderCommand) PurchaseOrderID() kernel.PurchaseOrderID { return c.purchaseOrderID }
func (c IssuePurchaseOrderCommand) QuoteID() kernel.SalesQuoteID            { return c.quoteID }
func (c IssuePurchaseOrderCommand) Actor() kernel.Actor                     { return c.actor }
func (c IssuePurchaseOrderCommand) DeliveryDate() *time.Time                { return c.deliveryDate }
