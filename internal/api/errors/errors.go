package errors

import (
	stderrors "errors"
	"net/http"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// FromPipelineError maps the pipeline error taxonomy onto API errors. The
// message is taken from the taxonomy error's user-facing text; wrapped
// internals are dropped for auth failures so credentials can never leak.
func FromPipelineError(err error) *APIError {
	var pipelineErr *apperrors.Error
	if !stderrors.As(err, &pipelineErr) {
		return NewInternalError("Internal server error")
	}

	switch pipelineErr.Kind() {
	case apperrors.KindValidation:
		return &APIError{Kind: KindValidation, Message: pipelineErr.Message()}
	case apperrors.KindAuth:
		return &APIError{Kind: KindUnauthorized, Message: pipelineErr.Message()}
	case apperrors.KindTransient:
		return &APIError{Kind: KindServiceUnavailable, Message: pipelineErr.Message()}
	case apperrors.KindStorage:
		return &APIError{Kind: KindServiceUnavailable, Message: pipelineErr.Message()}
	default:
		return NewInternalError(pipelineErr.Message())
	}
}
