package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

// OverrideQuoteStatusCommandHandler applies an admin correction to a sales
// quote and mirrors it on the RFQ so both keep telling the same story.
// Declining is refused once a sales order exists for the quote.
type OverrideQuoteStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewOverrideQuoteStatusCommandHandler(uowFactory UoWFactory) OverrideQuoteStatusCommandHandler {
	return OverrideQuoteStatusCommandHandler{uowFactory: uowFactory}
}

func (h OverrideQuoteStatusCommandHandler) Handle(
	ctx context.Context,
	command OverrideQuoteStatusCommand,
) (*salesquote.SalesQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *salesquote.SalesQuote
	err := retryOnConflict(ctx, transition.SalesQuote, transition.OverrideQuoteStatus, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h OverrideQuoteStatusCommandHandler) handle(
	ctx context.Context,
	command OverrideQuoteStatusCommand,
) (*salesquote.SalesQuote, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.SalesQuoteRepository()
	rfqRepo := uow.RFQRepository()

	quote, err := quoteRepo.Get(ctx, command.QuoteID())
	if err != nil {
		return nil, err
	}

	hasSalesOrder := true
	_, err = uow.SalesOrderRepository().GetByQuoteID(ctx, quote.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		hasSalesOrder = false
	} else if err != nil {
		return nil, err
	}

	if err = quote.Override(command.Actor(), command.Target(), command.Note(), hasSalesOrder); err != nil {
		return nil, err
	}

	r, err := rfqRepo.Get(ctx, quote.RFQID())
	if err != nil {
		return nil, err
	}
	if mirrored := mirrorOnRFQ(command.Target()); r.Status() != mirrored {
		if err = r.Override(command.Actor(), mirrored, command.Note()); err != nil {
			return nil, err
		}
		if err = rfqRepo.Update(ctx, r); err != nil {
			return nil, err
		}
	}

	if err = quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return quote, nil
}

func mirrorOnRFQ(target salesquote.Status) rfq.Status {
	if target == salesquote.Accepted {
		return rfq.Accepted
	}
	return rfq.Declined
}
