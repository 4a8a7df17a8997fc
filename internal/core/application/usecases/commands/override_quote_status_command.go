package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrOverrideQuoteStatusCommandIsNotConstructed = errors.New(
	"OverrideQuoteStatusCommand must be created via NewOverrideQuoteStatusCommand constructor",
)

// OverrideQuoteStatusCommand is an admin correction flipping a decided
// sales quote between accepted and declined. A note is mandatory since the
// change bypasses the customer.
type OverrideQuoteStatusCommand struct {
	quoteID kernel.SalesQuoteID
	actor   kernel.Actor
	target  salesquote.Status
	note    string

	guard guard.ConstructorGuard
}

func NewOverrideQuoteStatusCommand(
	quoteID kernel.SalesQuoteID,
	actor kernel.Actor,
	target salesquote.Status,
	note string,
) (OverrideQuoteStatusCommand, error) {
	var targetErr, noteErr error
	if target != salesquote.Accepted && target != salesquote.Declined {
		targetErr = errs.NewValueIsInvalidError("targetStatus")
	}
	if note == "" {
		noteErr = errs.NewValueIsRequiredError("note")
	}
	if err := errors.Join(quoteID.Validate(), actor.Validate(), targetErr, noteErr); err != nil {
		return OverrideQuoteStatusCommand{}, err
	}

	return OverrideQuoteStatusCommand{
		quoteID: quoteID,
		actor:   actor,
		target:  target,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OverrideQuoteStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideQuoteStatusCommandIsNotConstructed)
}

func (c OverrideQuoteStatusCommand) QuoteID() kernel.SalesQuoteID { return c.quoteID }
func (c OverrideQuoteStatusCommand) Actor() kernel.Actor          { return c.actor }
func (c OverrideQuoteStatusCommand) Target() salesquote.Status    { return c.target }
func (c OverrideQuoteStatusCommand) Note() string                 { return c.note }
