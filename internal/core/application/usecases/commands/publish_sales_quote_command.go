package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPublishSalesQuoteCommandIsNotConstructed = errors.New(
	"PublishSalesQuoteCommand must be created via NewPublishSalesQuoteCommand constructor",
)

// PublishSalesQuoteCommand prices the selected supplier quote for the
// customer. markup is a rate: 0.30 adds thirty percent.
type PublishSalesQuoteCommand struct {
	salesQuoteID    kernel.SalesQuoteID
	rfqID           kernel.RFQID
	supplierQuoteID kernel.SupplierQuoteID
	actor           kernel.Actor
	markup          decimal.Decimal
	validUntil      *time.Time

	guard guard.ConstructorGuard
}

func NewPublishSalesQuoteCommand(
	salesQuoteID kernel.SalesQuoteID,
	rfqID kernel.RFQID,
	supplierQuoteID kernel.SupplierQuoteID,
	actor kernel.Actor,
	markup decimal.Decimal,
	validUntil *time.Time,
) (PublishSalesQuoteCommand, error) {
	if err := errors.Join(
		salesQuoteID.Validate(),
		rfqID.Validate(),
		supplierQuoteID.Validate(),
		actor.Validate(),
	); err != nil {
		return PublishSalesQuoteCommand{}, err
	}

	cmd := PublishSalesQuoteCommand{
		salesQuoteID:    salesQuoteID,
		rfqID:           rfqID,
		supplierQuoteID: supplierQuoteID,
		actor:           actor,
		markup:          markup,
		guard:           guard.NewConstructorGuard(),
	}
	if validUntil != nil {
		v := *validUntil
		cmd.validUntil = &v
	}
	return cmd, nil
}

func (c PublishSalesQuoteCommand) Validate() error {
	return c.guard.Validate(ErrPublishSalesQuoteCommandIsNotConstructed)
}

func (c PublishSalesQuoteCommand) SalesQuoteID() kernel.SalesQuoteID       { return c.salesQuoteID }
func (c PublishSalesQuoteCommand) RFQID() kernel.RFQID                     { return c.rfqID }
func (c PublishSalesQuoteCommand) SupplierQuoteID() kernel.SupplierQuoteID { return c.supplierQuoteID }
func (c PublishSalesQuoteCommand) Actor() kernel.Actor                     { return c.actor }
func (c PublishSalesQuoteCommand) Markup() decimal.Decimal                 { return c.markup }
func (c PublishSalesQuoteCommand) ValidUntil() *time.Time                  { return c.validUntil }
