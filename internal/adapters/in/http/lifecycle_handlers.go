package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const uploadField = "file"

// Archive handles POST /api/v1/archive/{entityType}/{id}.
func (s *Server) Archive(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	entity, err := pathEntityType(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewArchiveCommand(entity, id, actor)
	if err != nil {
		return err
	}
	state, err := s.h.Archive.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArchiveStateResponse(state))
}

// Reopen handles POST /api/v1/reopen/{entityType}/{id}.
func (s *Server) Reopen(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	entity, err := pathEntityType(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewReopenCommand(entity, id, actor)
	if err != nil {
		return err
	}
	state, err := s.h.Reopen.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArchiveStateResponse(state))
}

// GetHistory handles GET /api/v1/history/{entityType}/{id}.
func (s *Server) GetHistory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	entity, err := pathEntityType(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetHistoryQuery(entity, id, actor)
	if err != nil {
		return err
	}
	entries, err := s.h.GetHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(entries, toHistoryEntry))
}

// UploadFile handles POST /api/v1/files (multipart, field "file").
func (s *Server) UploadFile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile(uploadField)
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause(uploadField, err)
	}
	body, err := header.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	cmd, err := commands.NewUploadFileCommand(actor, header.Filename, header.Header.Get(echo.HeaderContentType), body)
	if err != nil {
		return err
	}
	ref, err := s.h.UploadFile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, FileResponse{FileRef: ref})
}
