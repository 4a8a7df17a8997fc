package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/adapters/out/filestore"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type statusRule struct {
	target error
	status int
	reason string
}

// statusRules is checked in order. PreconditionFailed comes first: an
// exhausted conflict retry is a PreconditionFailed that carries the
// concurrent modification as its cause.
var statusRules = []statusRule{
	{errs.ErrPreconditionFailed, http.StatusConflict, "precondition_failed"},
	{errs.ErrUnknownTransition, http.StatusBadRequest, "unknown_transition"},
	{errs.ErrRoleNotPermitted, http.StatusForbidden, "role_not_permitted"},
	{errs.ErrNotOwner, http.StatusForbidden, "not_owner"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrIllegalFromState, http.StatusConflict, "illegal_from_state"},
	{errs.ErrNotArchived, http.StatusConflict, "not_archived"},
	{errs.ErrAlreadyArchived, http.StatusConflict, "already_archived"},
	{errs.ErrConcurrentModification, http.StatusConflict, "concurrent_modification"},
	{errs.ErrDuplicateCreation, http.StatusConflict, "duplicate_creation"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "value_is_required"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "value_is_invalid"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "value_is_out_of_range"},
	{ports.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{filestore.ErrTooLarge, http.StatusRequestEntityTooLarge, "file_too_large"},
	{filestore.ErrInvalidRef, http.StatusBadRequest, "invalid_file_reference"},
}

// classify maps err to a response. ok is false for errors outside the
// lifecycle taxonomy, which are reported as 500 without their text.
func classify(err error) (resp ErrorResponse, ok bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, isString := he.Message.(string)
		if !isString {
			msg = http.StatusText(he.Code)
		}
		return ErrorResponse{Code: he.Code, Message: msg}, true
	}
	for _, rule := range statusRules {
		if errors.Is(err, rule.target) {
			return ErrorResponse{Code: rule.status, Message: err.Error(), Reason: rule.reason}, true
		}
	}
	return ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
	}, false
}

// NewErrorHandler renders every error as ErrorResponse and logs the ones
// classify does not recognise.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		resp, ok := classify(err)
		if !ok || resp.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"route", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(resp.Code)
		} else {
			writeErr = c.JSON(resp.Code, resp)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
