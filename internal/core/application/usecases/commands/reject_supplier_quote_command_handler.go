package commands

import (
	"context"

	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
)

type RejectSupplierQuoteCommandHandler struct {
	uowFactory UoWFactory
}

func NewRejectSupplierQuoteCommandHandler(uowFactory UoWFactory) RejectSupplierQuoteCommandHandler {
	return RejectSupplierQuoteCommandHandler{uowFactory: uowFactory}
}

func (h RejectSupplierQuoteCommandHandler) Handle(
	ctx context.Context,
	command RejectSupplierQuoteCommand,
) (*supplierquote.SupplierQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *supplierquote.SupplierQuote
	err := retryOnConflict(ctx, transition.SupplierQuote, transition.RejectSupplierQuote, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h RejectSupplierQuoteCommandHandler) handle(
	ctx context.Context,
	command RejectSupplierQuoteCommand,
) (*supplierquote.SupplierQuote, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SupplierQuoteRepository()
	quote, err := repo.Get(ctx, command.QuoteID())
	if err != nil {
		return nil, err
	}

	if err = quote.Reject(command.Actor(), command.Reason()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, quote); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return quote, nil
}
