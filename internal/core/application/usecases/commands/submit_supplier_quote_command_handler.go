package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

var (
	ErrSupplierNotAssigned = errors.New("supplier is not assigned to the rfq")
	ErrRFQNotOpenForQuotes = errors.New("rfq is not open for supplier quotes")
	ErrSupplierAlreadyBid  = errors.New("supplier already quoted on the rfq")
)

// SubmitSupplierQuoteCommandHandler stores a supplier bid.
//
// Business rules:
//   - the RFQ must be in sent_to_suppliers
//   - the supplier must be one the RFQ was assigned to
//   - a supplier bids at most once per RFQ (unique index, reported as PreconditionFailed)
type SubmitSupplierQuoteCommandHandler struct {
	uowFactory UoWFactory
}

func NewSubmitSupplierQuoteCommandHandler(uowFactory UoWFactory) SubmitSupplierQuoteCommandHandler {
	return SubmitSupplierQuoteCommandHandler{uowFactory: uowFactory}
}

func (h SubmitSupplierQuoteCommandHandler) Handle(
	ctx context.Context,
	command SubmitSupplierQuoteCommand,
) (*supplierquote.SupplierQuote, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	quote, err := supplierquote.NewSupplierQuote(
		command.QuoteID(),
		command.RFQID(),
		command.Actor(),
		command.Price(),
		command.LeadTimeDays(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RFQRepository().Get(ctx, command.RFQID())
	if err != nil {
		return nil, err
	}
	if err = ensureOpenFor(r, quote); err != nil {
		return nil, err
	}

	err = uow.SupplierQuoteRepository().Add(ctx, quote)
	if errors.Is(err, errs.ErrDuplicateCreation) {
		return nil, denySubmit(fmt.Errorf("%w: %w", ErrSupplierAlreadyBid, err))
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return quote, nil
}

func ensureOpenFor(r *rfq.RFQ, quote *supplierquote.SupplierQuote) error {
	if r.Status() != rfq.SentToSuppliers {
		return denySubmit(fmt.Errorf("%w: %s is %s", ErrRFQNotOpenForQuotes, r.ID(), r.Status()))
	}
	if !r.IsAssigned(quote.SupplierID()) {
		return denySubmit(fmt.Errorf("%w: %s", ErrSupplierNotAssigned, quote.SupplierID()))
	}
	return nil
}

func denySubmit(cause error) error {
	return errs.NewPreconditionFailedError(transition.SupplierQuote.String(),
		transition.SubmitSupplierQuote.String(), cause)
}
