package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/transition"
)

// AcceptQuoteCommandHandler accepts a sales quote and moves its RFQ from
// quoted to accepted in the same transaction. Acceptance after validUntil
// is refused.
type AcceptQuoteCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewAcceptQuoteCommandHandler(uowFactory UoWFactory) AcceptQuoteCommandHandler {
	return AcceptQuoteCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// WithClock returns a copy of the handler that reads time from now.
func (h AcceptQuoteCommandHandler) WithClock(now func() time.Time) AcceptQuoteCommandHandler {
	h.now = now
	return h
}

func (h AcceptQuoteCommandHandler) Handle(ctx context.Context, command AcceptQuoteCommand) (*salesquote.SalesQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *salesquote.SalesQuote
	err := retryOnConflict(ctx, transition.SalesQuote, transition.AcceptQuote, func() error {
		var err error
		result, err = decideQuote(ctx, h.uowFactory, command.QuoteID(),
			func(quote *salesquote.SalesQuote, r *rfq.RFQ) error {
				if err := quote.Accept(command.Actor(), h.now()); err != nil {
					return err
				}
				return r.AcceptQuote(command.Actor())
			})
		return err
	})
	return result, err
}

// DeclineQuoteCommandHandler declines a sales quote and moves its RFQ from
// quoted to declined.
type DeclineQuoteCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeclineQuoteCommandHandler(uowFactory UoWFactory) DeclineQuoteCommandHandler {
	return DeclineQuoteCommandHandler{uowFactory: uowFactory}
}

func (h DeclineQuoteCommandHandler) Handle(
	ctx context.Context,
	command DeclineQuoteCommand,
) (*salesquote.SalesQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *salesquote.SalesQuote
	err := retryOnConflict(ctx, transition.SalesQuote, transition.DeclineQuote, func() error {
		var err error
		result, err = decideQuote(ctx, h.uowFactory, command.QuoteID(),
			func(quote *salesquote.SalesQuote, r *rfq.RFQ) error {
				if err := quote.Decline(command.Actor(), command.Reason()); err != nil {
					return err
				}
				return r.DeclineQuote(command.Actor(), command.Reason())
			})
		return err
	})
	return result, err
}

// decideQuote loads a sales quote with its RFQ, applies decide to both and
// writes both back.
func decideQuote(
	ctx context.Context,
	factory UoWFactory,
	id kernel.SalesQuoteID,
	decide func(*salesquote.SalesQuote, *rfq.RFQ) error,
) (*salesquote.SalesQuote, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.SalesQuoteRepository()
	rfqRepo := uow.RFQRepository()

	quote, err := quoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := rfqRepo.Get(ctx, quote.RFQID())
	if err != nil {
		return nil, err
	}

	if err = decide(quote, r); err != nil {
		return nil, err
	}

	if err = quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	if err = rfqRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return quote, nil
}
