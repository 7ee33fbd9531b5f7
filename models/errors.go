package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoActiveStep is returned when an action expects an active approval step
// and none exists (e.g. a double-submission race).
var ErrNoActiveStep = errors.New("request has no active approval step")

// ErrConcurrencyConflict is returned when a concurrent action completed the
// active step first. The caller should re-fetch the request state.
var ErrConcurrencyConflict = errors.New("approval step was already acted on, refresh and retry")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries a field-level error list for malformed input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(format string, args ...interface{}) *AuthorizationError {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// InvalidTransitionError is returned when an action is attempted against a
// request status that does not permit it.
type InvalidTransitionError struct {
	Status RequestStatus
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %s is not allowed for request in status %s", e.Action, e.Status)
}

func NewInvalidTransitionError(status RequestStatus, action string) *InvalidTransitionError {
	return &InvalidTransitionError{Status: status, Action: action}
}
