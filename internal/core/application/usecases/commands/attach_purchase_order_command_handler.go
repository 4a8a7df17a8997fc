package commands

import (
	"context"

	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/transition"
)

// AttachPurchaseOrderCommandHandler stores the purchase order reference.
// Re-attaching the same reference writes nothing.
type AttachPurchaseOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAttachPurchaseOrderCommandHandler(uowFactory UoWFactory) AttachPurchaseOrderCommandHandler {
	return AttachPurchaseOrderCommandHandler{uowFactory: uowFactory}
}

func (h AttachPurchaseOrderCommandHandler) Handle(
	ctx context.Context,
	command AttachPurchaseOrderCommand,
) (*salesquote.SalesQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *salesquote.SalesQuote
	err := retryOnConflict(ctx, transition.SalesQuote, transition.AttachPurchaseOrder, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h AttachPurchaseOrderCommandHandler) handle(
	ctx context.Context,
	command AttachPurchaseOrderCommand,
) (*salesquote.SalesQuote, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SalesQuoteRepository()
	quote, err := repo.Get(ctx, command.QuoteID())
	if err != nil {
		return nil, err
	}

	changed, err := quote.AttachPurchaseOrder(command.Actor(), command.Reference())
	if err != nil {
		return nil, err
	}
	if !changed {
		return quote, nil
	}

	if err = repo.Update(ctx, quote); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return quote, nil
}
