// Package errors provides custom error types for the tradebot client and server.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrServiceError    = errors.New("service error")
	ErrUnreachable     = errors.New("backend unreachable")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no content in response")
	ErrEmptyQuestion   = errors.New("question cannot be empty")
)

// ServiceError is a well-formed response that carries an explicit error field.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail == "" {
		return "service error"
	}
	return fmt.Sprintf("service error: %s", e.Detail)
}

// Is allows comparison with sentinel errors
func (e *ServiceError) Is(target error) bool {
	if target == ErrServiceError {
		return true
	}
	_, ok := target.(*ServiceError)
	return ok
}

// NewServiceError creates a new ServiceError
func NewServiceError(statusCode int, detail string) *ServiceError {
	return &ServiceError{StatusCode: statusCode, Detail: detail}
}

// APIError represents an API request failure without a usable payload
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NetworkError wraps a failure to reach the backend at all.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error at %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	return target == ErrUnreachable
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(endpoint string, err error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Err: err}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *TimeoutError) Is(target error) bool {
	return target == ErrUnreachable
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	if ok {
		return true
	}
	return target != nil && target.Error() == "parse error"
}

// IsServiceError reports whether err carries a service-level error payload.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsNetworkError reports whether err is a connection-level failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// IsTimeoutError reports whether err is a timeout, including context deadlines.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsParseError reports whether err is a malformed response.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// IsTransportError reports whether err belongs to the transport failure class:
// anything that is not a well-formed service error.
func IsTransportError(err error) bool {
	return err != nil && !IsServiceError(err)
}

// GetHTTPStatus extracts an HTTP status from err, or 0 when there is none.
func GetHTTPStatus(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// ServiceDetail returns the error detail carried by a ServiceError.
func ServiceDetail(err error) (string, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Detail, true
	}
	return "", false
}
