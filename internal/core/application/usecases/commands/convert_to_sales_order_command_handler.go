package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ConvertToSalesOrderCommandHandler is the single creation point of sales
// orders.
//
// Business rules:
//   - only admins convert
//   - an order that already exists for the quote is returned as is
//   - the order number is allocated only once the quote may be converted
//   - the store's unique quote id decides concurrent conversions; the loser
//     re-reads and returns the winner's order
//   - an order number already taken by another order is reported as
//     ErrOrderNumberTaken and is never mistaken for a lost race
type ConvertToSalesOrderCommandHandler struct {
	uowFactory UoWFactory
	numberer   ports.OrderNumberer
	converter  services.SalesOrderConverter
}

func NewConvertToSalesOrderCommandHandler(
	uowFactory UoWFactory,
	numberer ports.OrderNumberer,
) ConvertToSalesOrderCommandHandler {
	return ConvertToSalesOrderCommandHandler{
		uowFactory: uowFactory,
		numberer:   numberer,
		converter:  services.NewSalesOrderConverter(),
	}
}

func (h ConvertToSalesOrderCommandHandler) Handle(
	ctx context.Context,
	command ConvertToSalesOrderCommand,
) (*salesorder.SalesOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.SalesQuote, transition.ConvertToSalesOrder, command.Actor().Role()); err != nil {
		return nil, err
	}

	var result *salesorder.SalesOrder
	err := retryOnConflict(ctx, transition.SalesQuote, transition.ConvertToSalesOrder, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	if errors.Is(err, errs.ErrDuplicateCreation) {
		order, lookupErr := h.existing(ctx, command.QuoteID())
		if errors.Is(lookupErr, errs.ErrObjectNotFound) {
			return nil, err
		}
		return order, lookupErr
	}
	return result, err
}

func (h ConvertToSalesOrderCommandHandler) handle(
	ctx context.Context,
	command ConvertToSalesOrderCommand,
) (*salesorder.SalesOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.SalesOrderRepository()
	existing, err := orderRepo.GetByQuoteID(ctx, command.QuoteID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	quote, err := uow.SalesQuoteRepository().Get(ctx, command.QuoteID())
	if err != nil {
		return nil, err
	}
	r, err := uow.RFQRepository().Get(ctx, quote.RFQID())
	if err != nil {
		return nil, err
	}

	if err = h.converter.Check(quote, r, command.Actor()); err != nil {
		return nil, err
	}
	number, err := h.numberer.Next(ctx)
	if err != nil {
		return nil, err
	}

	order, err := h.converter.Convert(command.OrderID(), quote, r, number, command.Actor())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}

// existing reads the order a concurrent conversion created. It runs in a
// fresh unit of work: the failed insert aborted the previous transaction.
func (h ConvertToSalesOrderCommandHandler) existing(
	ctx context.Context,
	quoteID kernel.SalesQuoteID,
) (*salesorder.SalesOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.SalesOrderRepository().GetByQuoteID(ctx, quoteID)
}
