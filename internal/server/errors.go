package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-pathfinder/internal/careergraph"
	"github.com/jonathan/career-pathfinder/internal/embedding"
	"github.com/jonathan/career-pathfinder/internal/matching"
	"github.com/jonathan/career-pathfinder/internal/profiles"
	"github.com/jonathan/career-pathfinder/internal/recommend"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		fieldErrs      validator.ValidationErrors
		notFound       *profiles.NotFoundError
		unknownRole    *careergraph.UnknownRoleError
		noRoles        *matching.NoRolesAvailableError
		embeddingError *embedding.UnavailableError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.Is(err, recommend.ErrInvalidMaxPaths):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &unknownRole):
		return http.StatusNotFound
	case errors.As(err, &noRoles), errors.As(err, &embeddingError):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage flattens validator field errors into one line
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	msg := fmt.Sprintf("invalid field %s: failed %q", fe.Field(), fe.Tag())
	if len(fieldErrs) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(fieldErrs)-1)
	}
	return msg
}
