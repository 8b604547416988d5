package catalog

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed catalog call.
type ErrorKind string

const (
	// ErrorKindAPI - the catalog service answered with a non-2xx status
	ErrorKindAPI ErrorKind = "api"
	// ErrorKindConnection - the request was sent but no usable response
	// arrived (network failure or timeout)
	ErrorKindConnection ErrorKind = "connection"
	// ErrorKindInternal - the request could not be constructed or the
	// response could not be decoded
	ErrorKindInternal ErrorKind = "internal"
)

// ClientError represents an error encountered when communicating with the
// catalog API. StatusCode and Body are only set for ErrorKindAPI, where they
// preserve the exact status and body the service answered with.
type ClientError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a ClientError from an error response sent by the catalog service
func NewAPIError(res *http.Response, body []byte) *ClientError {
	return &ClientError{
		Kind:       ErrorKindAPI,
		StatusCode: res.StatusCode,
		Body:       string(body),
		Message:    fmt.Sprintf("catalog API responded with status %d", res.StatusCode),
	}
}

// NewConnectionError creates a ClientError for network/timeout failures
func NewConnectionError(err error) *ClientError {
	return &ClientError{
		Kind:    ErrorKindConnection,
		Message: fmt.Sprintf("network error: %v", err),
		Err:     err,
	}
}

// NewInternalError creates a ClientError for request construction or decode
// failures, supply the error and an explanation of what was being done when
// the error occurred
func NewInternalError(err error, while string) *ClientError {
	return &ClientError{
		Kind:    ErrorKindInternal,
		Message: fmt.Sprintf("internal error: %v while %v", err, while),
		Err:     err,
	}
}
