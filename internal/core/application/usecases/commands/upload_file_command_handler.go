package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

type UploadFileCommandHandler struct {
	files ports.FileStore
}

func NewUploadFileCommandHandler(files ports.FileStore) UploadFileCommandHandler {
	return UploadFileCommandHandler{files: files}
}

// Handle returns the stored file's reference. Identical content yields the
// identical reference.
func (h UploadFileCommandHandler) Handle(ctx context.Context, command UploadFileCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}
	return h.files.Upload(ctx, command.Name(), command.ContentType(), command.Body())
}
