package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRFQTransitionCommandIsNotConstructed = errors.New(
	"RFQTransitionCommand must be created via NewRFQTransitionCommand constructor",
)

// RFQTransitionCommand applies an admin step to an RFQ that carries no
// payload beyond an optional reason: ReviewRFQ or CancelRFQ.
type RFQTransitionCommand struct {
	rfqID  kernel.RFQID
	actor  kernel.Actor
	via    transition.Name
	reason string

	guard guard.ConstructorGuard
}

func NewRFQTransitionCommand(
	rfqID kernel.RFQID,
	actor kernel.Actor,
	via transition.Name,
	reason string,
) (RFQTransitionCommand, error) {
	var viaErr error
	if via != transition.ReviewRFQ && via != transition.CancelRFQ {
		viaErr = errs.NewTransitionDeniedError(errs.ErrUnknownTransition, transition.RFQ.String(),
			via.String(), "", actor.Role().String())
	}
	if err := errors.Join(rfqID.Validate(), actor.Validate(), viaErr); err != nil {
		return RFQTransitionCommand{}, err
	}

	return RFQTransitionCommand{
		rfqID:  rfqID,
		actor:  actor,
		via:    via,
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RFQTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRFQTransitionCommandIsNotConstructed)
}

func (c RFQTransitionCommand) RFQID() kernel.RFQID         { return c.rfqID }
func (c RFQTransitionCommand) Actor() kernel.Actor         { return c.actor }
func (c RFQTransitionCommand) Transition() transition.Name { return c.via }
func (c RFQTransitionCommand) Reason() string              { return c.reason }
