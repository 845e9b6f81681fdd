package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus marks a response outside the 2xx range.
	ErrUnexpectedStatus = errors.New("client: unexpected status")
	// ErrMalformedResponse marks a 2xx response whose body is not JSON.
	ErrMalformedResponse = errors.New("client: malformed response body")
)

// TransportError reports a request that never produced a response.
type TransportError struct {
	URL       string
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: post %s (request %s): %v", e.URL, e.RequestID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a response that does not count as success: either a
// non-2xx status or a body that does not parse as JSON.
type ProtocolError struct {
	StatusCode int
	RequestID  string
	// Body holds the start of the response body for diagnostics.
	Body string
	// Errors holds the per-field messages of an `{"errors": {...}}` body,
	// when the endpoint sent one.
	Errors map[string][]string
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("client: status %d (request %s): %v", e.StatusCode, e.RequestID, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// FieldErrors returns the per-field messages carried by a *ProtocolError
// anywhere in err's chain, or nil.
func FieldErrors(err error) map[string][]string {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr.Errors
	}
	return nil
}
