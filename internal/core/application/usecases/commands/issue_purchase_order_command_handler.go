package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// IssuePurchaseOrderCommandHandler creates at most one purchase order per
// sales quote, with the same return-existing behavior as conversion.
type IssuePurchaseOrderCommandHandler struct {
	uowFactory UoWFactory
	issuer     services.PurchaseOrderIssuer
}

func NewIssuePurchaseOrderCommandHandler(uowFactory UoWFactory) IssuePurchaseOrderCommandHandler {
	return IssuePurchaseOrderCommandHandler{
		uowFactory: uowFactory,
		issuer:     services.NewPurchaseOrderIssuer(),
	}
}

func (h IssuePurchaseOrderCommandHandler) Handle(
	ctx context.Context,
	command IssuePurchaseOrderCommand,
) (*purchaseorder.PurchaseOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.SalesQuote, transition.IssuePurchaseOrder, command.Actor().Role()); err != nil {
		return nil, err
	}

	var result *purchaseorder.PurchaseOrder
	err := retryOnConflict(ctx, transition.SalesQuote, transition.IssuePurchaseOrder, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	if errors.Is(err, errs.ErrDuplicateCreation) {
		return h.existing(ctx, command.QuoteID())
	}
	return result, err
}

func (h IssuePurchaseOrderCommandHandler) handle(
	ctx context.Context,
	command IssuePurchaseOrderCommand,
) (*purchaseorder.PurchaseOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	poRepo := uow.PurchaseOrderRepository()
	existing, err := poRepo.GetBySalesQuoteID(ctx, command.QuoteID())
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
	selected, err := uow.SupplierQuoteRepository().Get(ctx, quote.SupplierQuoteID())
	if err != nil {
		return nil, err
	}

	po, err := h.issuer.Issue(command.PurchaseOrderID(), quote, selected, command.DeliveryDate(), command.Actor())
	if err != nil {
		return nil, err
	}

	if err = poRepo.Add(ctx, po); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return po, nil
}

func (h IssuePurchaseOrderCommandHandler) existing(
	ctx context.Context,
	quoteID kernel.SalesQuoteID,
) (*purchaseorder.PurchaseOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.PurchaseOrderRepository().GetBySalesQuoteID(ctx, quoteID)
}
