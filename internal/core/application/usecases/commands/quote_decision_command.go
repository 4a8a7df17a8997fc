package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAcceptQuoteCommandIsNotConstructed = errors.New(
		"AcceptQuoteCommand must be created via NewAcceptQuoteCommand constructor",
	)
	ErrDeclineQuoteCommandIsNotConstructed = errors.New(
		"DeclineQuoteCommand must be created via NewDeclineQuoteCommand constructor",
	)
)

// AcceptQuoteCommand is the customer's acceptance of a pending sales quote.
type AcceptQuoteCommand struct {
	quoteID kernel.SalesQuoteID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewAcceptQuoteCommand(quoteID kernel.SalesQuoteID, actor kernel.Actor) (AcceptQuoteCommand, error) {
	if err := errors.Join(quoteID.Validate(), actor.Validate()); err != nil {
		return AcceptQuoteCommand{}, err
	}
	return AcceptQuoteCommand{quoteID: quoteID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptQuoteCommand) Validate() error {
	return c.guard.Validate(ErrAcceptQuoteCommandIsNotConstructed)
}

func (c AcceptQuoteCommand) QuoteID() kernel.SalesQuoteID { return c.quoteID }
func (c AcceptQuoteCommand) Actor() kernel.Actor          { return c.actor }

// DeclineQuoteCommand is the customer's refusal of a pending sales quote.
type DeclineQuoteCommand struct {
	quoteID kernel.SalesQuoteID
	actor   kernel.Actor
	reason  string

	guard guard.ConstructorGuard
}

func NewDeclineQuoteCommand(quoteID kernel.SalesQuoteID, actor kernel.Actor, reason string) (DeclineQuoteCommand, error) {
	if err := errors.Join(quoteID.Validate(), actor.Validate()); err != nil {
		return DeclineQuoteCommand{}, err
	}
	return DeclineQuoteCommand{quoteID: quoteID, actor: actor, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c DeclineQuoteCommand) Validate() error {
	return c.guard.Validate(ErrDeclineQuoteCommandIsNotConstructed)
}

func (c DeclineQuoteCommand) QuoteID() kernel.SalesQuoteID { return c.quoteID }
func (c DeclineQuoteCommand) Actor() kernel.Actor          { return c.actor }
func (c DeclineQuoteCommand) Reason() string               { return c.reason }
