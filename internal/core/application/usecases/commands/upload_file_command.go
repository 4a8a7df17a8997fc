package commands

import (
	"errors"
	"io"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUploadFileCommandIsNotConstructed = errors.New(
	"UploadFileCommand must be created via NewUploadFileCommand constructor",
)

// UploadFileCommand stores a document (purchase order, invoice) and yields
// the reference later passed to attach operations.
type UploadFileCommand struct {
	actor       kernel.Actor
	name        string
	contentType string
	body        io.Reader

	guard guard.ConstructorGuard
}

func NewUploadFileCommand(actor kernel.Actor, name, contentType string, body io.Reader) (UploadFileCommand, error) {
	var nameErr, bodyErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if body == nil {
		bodyErr = errs.NewValueIsRequiredError("file")
	}
	if err := errors.Join(actor.Validate(), nameErr, bodyErr); err != nil {
		return UploadFileCommand{}, err
	}
	return UploadFileCommand{
		actor:       actor,
		name:        name,
		contentType: contentType,
		body:        body,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadFileCommand) Validate() error {
	return c.guard.Validate(ErrUploadFileCommandIsNotConstructed)
}

func (c UploadFileCommand) Actor() kernel.Actor { return c.actor }
func (c UploadFileCommand) Name() string        { return c.name }
func (c UploadFileCommand) ContentType() string { return c.contentType }
func (c UploadFileCommand) Body() io.Reader     { return c.body }
