package http

import (
	"errors"
	"net/http"

	"traiteur/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body of every non-2xx response.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError maps the application error taxonomy onto HTTP statuses.
// Conflicts carry their machine-readable details (current status, allowed
// successors, remaining stock) so clients can react without parsing the
// message.
func writeError(ctx echo.Context, err error) error {
	var conflictErr *errs.ConflictError
	if errors.As(err, &conflictErr) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: conflictErr.Message,
			Details: conflictErr.Details,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNotAuthorized):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
