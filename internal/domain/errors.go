package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found. A resource owned
	// by a different user is also reported as not found, never as
	// forbidden, so existence is not leaked across accounts.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidMove  = errors.New("invalid move")
	ErrStorage      = errors.New("storage failure")
)

// Is bridges typed errors to the matching sentinel
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, folder)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Move rejection reasons
const (
	MoveReasonSelf       = "self"
	MoveReasonDescendant = "descendant"
)

// InvalidMoveError rejects a folder move that would corrupt the tree.
// Reason is MoveReasonSelf (folder moved into itself) or
// MoveReasonDescendant (folder moved into its own subtree).
type InvalidMoveError struct {
	Message string
	Reason  string
}

// Error implements the error interface
func (e *InvalidMoveError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *InvalidMoveError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrInvalidMove
func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}
