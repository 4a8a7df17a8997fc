package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrConvertToSalesOrderCommandIsNotConstructed = errors.New(
	"ConvertToSalesOrderCommand must be created via NewConvertToSalesOrderCommand constructor",
)

// ConvertToSalesOrderCommand turns an accepted sales quote with a purchase
// order into a sales order. orderID is used only if no order exists yet.
type ConvertToSalesOrderCommand struct {
	orderID kernel.SalesOrderID
	quoteID kernel.SalesQuoteID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewConvertToSalesOrderCommand(
	orderID kernel.SalesOrderID,
	quoteID kernel.SalesQuoteID,
	actor kernel.Actor,
) (ConvertToSalesOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), quoteID.Validate(), actor.Validate()); err != nil {
		return ConvertToSalesOrderCommand{}, err
	}
	return ConvertToSalesOrderCommand{
		orderID: orderID,
		quoteID: quoteID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConvertToSalesOrderCommand) Validate() error {
	return c.guard.Validate(ErrConvertToSalesOrderCommandIsNotConstructed)
}

func (c ConvertToSalesOrderCommand) OrderID() kernel.SalesOrderID { return c.orderID }
func (c ConvertToSalesOrderCommand) QuoteID() kernel.SalesQuoteID { return c.quoteID }
func (c ConvertToSalesOrderCommand) Actor() kernel.Actor          { return c.actor }
