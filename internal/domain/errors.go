package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrUpstream marks failures of a remote collaborator (auth provider, mail delivery).
	ErrUpstream = errors.New("upstream service failed")
)

// ConflictError represents a resource conflict with details about the existing resource,
// e.g. inviting an email that is already on a campaign's member list.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (member, campaign, scenario)
	ResourceID   string // ID of the existing/conflicting resource
}

// NewConflictError builds a ConflictError for a resource type and key.
func NewConflictError(resourceType, resourceID, format string, args ...any) *ConflictError {
	return &ConflictError{
		Message:      fmt.Sprintf(format, args...),
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
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

// UpstreamError carries the status code reported by a remote service.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Service, e.Status, e.Message)
}

// StatusCode maps client-side rejections from the remote service through and
// everything else to 502.
func (e *UpstreamError) StatusCode() int {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusTooManyRequests:
		return e.Status
	default:
		return http.StatusBadGateway
	}
}

// Is allows errors.Is() to match against ErrUpstream
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
