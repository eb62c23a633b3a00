package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTransport    = "TRANSPORT_FAILURE"
	CodeRemote       = "REMOTE_REJECTED"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeAccessDenied = "ACCESS_DENIED"
	CodeMalformed    = "MALFORMED_RESPONSE"
)

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewTransportError reports a request that never reached the remote service
// or received no response.
func NewTransportError(operation string, err error) error {
	return &DomainError{
		Code:       CodeTransport,
		Message:    fmt.Sprintf("%s failed: remote service unreachable", operation),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": operation},
		Err:        err,
	}
}

// NewRemoteError reports a non-2xx answer from the remote service. The body is
// kept for logs only; callers surface the generic message.
func NewRemoteError(operation string, status int, body string) error {
	return &DomainError{
		Code:       CodeRemote,
		Message:    fmt.Sprintf("%s failed", operation),
		HTTPStatus: gatewayStatus(status),
		Details: map[string]any{
			"operation":      operation,
			"upstreamStatus": status,
		},
		Err: fmt.Errorf("upstream status %d: %s", status, body),
	}
}

// NewMalformedResponse reports a 2xx answer whose body could not be decoded.
func NewMalformedResponse(operation string, err error) error {
	return &DomainError{
		Code:       CodeMalformed,
		Message:    fmt.Sprintf("%s failed: unexpected response", operation),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": operation},
		Err:        err,
	}
}

// NewPreconditionError reports a local precondition that blocked a call
// before it was attempted.
func NewPreconditionError(message string) error {
	return NewDomainError(CodePrecondition, message, http.StatusPreconditionFailed, nil)
}

// UpstreamStatus returns the remote HTTP status carried by err, or 0.
func UpstreamStatus(err error) int {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != CodeRemote {
		return 0
	}
	status, _ := domainErr.Details["upstreamStatus"].(int)
	return status
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

func gatewayStatus(upstream int) int {
	switch upstream {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict:
		return upstream
	default:
		return http.StatusBadGateway
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
