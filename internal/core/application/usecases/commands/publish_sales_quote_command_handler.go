package commands

import (
	"context"

	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/core/domain/services"
)

// PublishSalesQuoteCommandHandler selects a supplier quote and publishes the
// priced sales quote. The RFQ, the supplier quote and the new sales quote
// are written in one transaction.
type PublishSalesQuoteCommandHandler struct {
	uowFactory UoWFactory
	publisher  services.QuotePublisher
}

func NewPublishSalesQuoteCommandHandler(
	uowFactory UoWFactory,
	publisher services.QuotePublisher,
) PublishSalesQuoteCommandHandler {
	return PublishSalesQuoteCommandHandler{uowFactory: uowFactory, publisher: publisher}
}

func (h PublishSalesQuoteCommandHandler) Handle(
	ctx context.Context,
	command PublishSalesQuoteCommand,
) (*salesquote.SalesQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *salesquote.SalesQuote
	err := retryOnConflict(ctx, transition.RFQ, transition.PublishQuote, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h PublishSalesQuoteCommandHandler) handle(
	ctx context.Context,
	command PublishSalesQuoteCommand,
) (*salesquote.SalesQuote, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rfqRepo := uow.RFQRepository()
	supplierQuoteRepo := uow.SupplierQuoteRepository()

	r, err := rfqRepo.Get(ctx, command.RFQID())
	if err != nil {
		return nil, err
	}
	selected, err := supplierQuoteRepo.Get(ctx, command.SupplierQuoteID())
	if err != nil {
		return nil, err
	}

	published, err := h.publisher.Publish(
		command.SalesQuoteID(),
		r,
		selected,
		command.Markup(),
		command.ValidUntil(),
		command.Actor(),
	)
	if err != nil {
		return nil, err
	}

	if err = rfqRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	if err = supplierQuoteRepo.Update(ctx, selected); err != nil {
		return nil, err
	}
	if err = uow.SalesQuoteRepository().Add(ctx, published); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return published, nil
}
