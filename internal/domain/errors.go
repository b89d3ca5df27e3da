// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation indicates structured input failed validation before any
	// network call was made.
	ErrValidation = errors.New("validation failed")

	// ErrGeneration indicates the external text-generation call failed or
	// returned a payload that does not conform to the declared output schema.
	ErrGeneration = errors.New("generation failed")

	// ErrPrecondition indicates a workflow step was invoked without its
	// required prior state.
	ErrPrecondition = errors.New("precondition failed")

	// ErrEmail indicates email dispatch failed, either on input validation
	// or at the mail relay.
	ErrEmail = errors.New("email dispatch failed")

	// ErrConflict indicates a state conflict such as an operation already
	// in flight for the session.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// GenerationError provides context for text-generation failures.
type GenerationError struct {
	Operation string
	Reason    string
	Err       error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
// The wrapped cause remains reachable through the error chain.
func (e *GenerationError) Unwrap() error {
	return ErrGeneration
}

// NewGenerationError creates a generation error with context.
func NewGenerationError(operation, reason string, err error) error {
	return &GenerationError{Operation: operation, Reason: reason, Err: err}
}

// PreconditionError provides context for workflow precondition failures.
type PreconditionError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("operation %q precondition failed: %s", e.Operation, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// NewPreconditionError creates a precondition error with context.
func NewPreconditionError(operation, reason string) error {
	return &PreconditionError{Operation: operation, Reason: reason}
}

// EmailError provides context for email dispatch failures.
type EmailError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("email dispatch: %s: %v", e.Reason, e.Err)
	}

	return "email dispatch: " + e.Reason
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *EmailError) Unwrap() error {
	return ErrEmail
}

// NewEmailError creates an email dispatch error with context.
func NewEmailError(reason string, err error) error {
	return &EmailError{Reason: reason, Err: err}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity string
	Reason string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsGeneration checks if an error is a generation error.
func IsGeneration(err error) bool {
	return errors.Is(err, ErrGeneration)
}

// IsPrecondition checks if an error is a precondition error.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// IsEmail checks if an error is an email dispatch error.
func IsEmail(err error) bool {
	return errors.Is(err, ErrEmail)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
