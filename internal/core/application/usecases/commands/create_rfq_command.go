package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateRFQCommandIsNotConstructed = errors.New(
	"CreateRFQCommand must be created via NewCreateRFQCommand constructor",
)

// CreateRFQCommand represents a customer's request for quotation.
//
// Example:
//
//	spec, _ := rfq.NewSpecification("aluminum", "6061", "anodized", "0.1mm", 50, "cnc_machining")
//	cmd, err := NewCreateRFQCommand(kernel.NewRFQID(), customer, "Bracket", spec)
//	if err != nil {
//	    return fmt.Errorf("invalid rfq: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateRFQCommand struct { //nolint:recvcheck //using for validation
	rfqID         kernel.RFQID
	actor         kernel.Actor
	projectName   string
	specification rfq.Specification

	guard guard.ConstructorGuard
}

// NewCreateRFQCommand validates identifiers and that a specification was
// built. Field level rules of the RFQ itself are enforced by the aggregate.
func NewCreateRFQCommand(
	rfqID kernel.RFQID,
	actor kernel.Actor,
	projectName string,
	specification rfq.Specification,
) (CreateRFQCommand, error) {
	cmd := CreateRFQCommand{
		rfqID:         rfqID,
		actor:         actor,
		projectName:   projectName,
		specification: specification,
		guard:         guard.NewConstructorGuard(),
	}

	var specErr error
	if specification.IsZero() {
		specErr = errs.NewValueIsRequiredError("specification")
	}
	if err := errors.Join(rfqID.Validate(), actor.Validate(), specErr); err != nil {
		return CreateRFQCommand{}, err
	}
	return cmd, nil
}

func (c CreateRFQCommand) Validate() error {
	return c.guard.Validate(ErrCreateRFQCommandIsNotConstructed)
}

func (c CreateRFQCommand) RFQID() kernel.RFQID              { return c.rfqID }
func (c CreateRFQCommand) Actor() kernel.Actor              { return c.actor }
func (c CreateRFQCommand) ProjectName() string              { return c.projectName }
func (c CreateRFQCommand) Specification() rfq.Specification { return c.specification }
