// Package server provides the HTTP REST API for cv-studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/generation"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/merge"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrCVNotFound indicates the CV does not exist for the requesting user.
// A CV owned by someone else produces the same error, so callers cannot
// probe for other users' documents.
type ErrCVNotFound struct {
	CVID uuid.UUID
}

func (e *ErrCVNotFound) Error() string {
	return fmt.Sprintf("cv not found: %s", e.CVID)
}

// ErrForbidden indicates the account lacks permission for the endpoint
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// ErrUpstream indicates the generation backend failed after a well-formed
// request reached it.
type ErrUpstream struct {
	Err error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("generation backend error: %v", e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, llm.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}

	var (
		formatErr    *generation.FormatError
		unknownKind  *generation.UnknownKindError
		missingInput *generation.MissingInputError
		mismatch     *merge.MismatchError
		upstream     *ErrUpstream
	)
	switch {
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unknownKind), errors.As(err, &missingInput), errors.As(err, &mismatch):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrUserNotFound, *ErrCVNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
