package connector

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Type classifies connector errors.
type Type string

const (
	TypeAuthentication Type = "authentication_error"
	TypeValidation     Type = "validation_error"
	TypeNetwork        Type = "network_error"
	TypeRateLimit      Type = "rate_limit_error"
	TypeProvider       Type = "provider_error"
	TypeNotFound       Type = "not_found"
)

// Error is the error returned by vendor connectors. It carries the HTTP
// status and message from the vendor response when one was received.
type Error struct {
	Vendor     string `json:"vendor"`
	Type       Type   `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	Cause      error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Vendor, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Vendor, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a typed connector error.
func NewError(vendor string, errType Type, message string) *Error {
	return &Error{Vendor: vendor, Type: errType, Message: message}
}

// AuthError reports a missing or rejected credential.
func AuthError(vendor, message string) *Error {
	return NewError(vendor, TypeAuthentication, message)
}

// NotFoundError reports an unknown resource, connector, or tool.
func NotFoundError(vendor, message string) *Error {
	return NewError(vendor, TypeNotFound, message)
}

// ValidationError reports bad input to a vendor call.
func ValidationError(vendor, message string) *Error {
	return NewError(vendor, TypeValidation, message)
}

// NetworkError wraps a transport-level failure.
func NetworkError(vendor string, cause error) *Error {
	return &Error{Vendor: vendor, Type: TypeNetwork, Message: cause.Error(), Cause: cause}
}

// FromStatus maps a non-2xx HTTP status to a typed error.
func FromStatus(vendor string, status int, message string) *Error {
	var errType Type
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		errType = TypeAuthentication
	case status == http.StatusNotFound:
		errType = TypeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		errType = TypeValidation
	case status == http.StatusTooManyRequests:
		errType = TypeRateLimit
	default:
		errType = TypeProvider
	}
	return &Error{Vendor: vendor, Type: errType, Message: message, StatusCode: status}
}

// fromResponseBody extracts a vendor error message from a JSON error body.
// Vendors disagree on shape; the common ones are {"error": {"message": ...}},
// {"error": "..."} and {"message": "..."}.
func fromResponseBody(vendor string, status int, body []byte) *Error {
	message := http.StatusText(status)

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case len(envelope.Error) > 0:
			var nested struct {
				Message string `json:"message"`
			}
			var plain string
			if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
				message = nested.Message
			} else if json.Unmarshal(envelope.Error, &plain) == nil && plain != "" {
				message = plain
			}
		case envelope.Message != "":
			message = envelope.Message
		}
	} else if len(body) > 0 {
		message = string(body)
	}

	return FromStatus(vendor, status, message)
}

// TypeOf returns the error type, or TypeProvider for untyped errors.
func TypeOf(err error) Type {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type
	}
	return TypeProvider
}

// IsNotFound reports whether err is a not-found connector error.
func IsNotFound(err error) bool {
	return TypeOf(err) == TypeNotFound
}

// IsAuth reports whether err is an authentication connector error.
func IsAuth(err error) bool {
	return TypeOf(err) == TypeAuthentication
}

// FormatError renders err the way the CLI and MCP dispatcher report tool
// failures: "Error: <type>: <message>".
func FormatError(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return fmt.Sprintf("Error: %s: %s", ce.Type, ce.Message)
	}
	return fmt.Sprintf("Error: error: %s", err.Error())
}
