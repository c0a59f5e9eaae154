package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "snippetapi/internal/repository"
)

const (
	msgNotFound         = "not found"
	msgPermissionDenied = "You do not have permission to perform this action."
	msgUnauthorized     = "Authentication credentials were not provided."
	msgInternal         = "internal error"
)

// HTTPError carries the status and body the handler should render.
type HTTPError struct {
	Status  int
	Message string
	// フィールドごとの検証エラー（JSON名 -> メッセージ）
	Fields map[string]string

	cause error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.cause }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// NewValidationError is a 400 with per-field messages.
func NewValidationError(fields map[string]string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation error",
		Fields:  fields,
	}
}

func fieldError(field, message string) error {
	return NewValidationError(map[string]string{field: message})
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errNotFound() error  { return NewHTTPError(http.StatusNotFound, msgNotFound) }
func errForbidden() error { return NewHTTPError(http.StatusForbidden, msgPermissionDenied) }

func errUnauthenticated() error {
	return NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
}

func internalError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: msgInternal, cause: err}
}

// fromRepo maps repository sentinels onto HTTP errors.
func fromRepo(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrUserNotFound):
		return errNotFound()
	case errors.Is(err, repo.ErrProtected):
		return &HTTPError{Status: http.StatusConflict, Message: "cannot delete: referenced by other records", cause: err}
	case errors.Is(err, repo.ErrConflict):
		return &HTTPError{Status: http.StatusConflict, Message: "conflict", cause: err}
	default:
		return internalError(err)
	}
}
