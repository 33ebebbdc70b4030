package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates the completion provider credential is absent.
// Complete returns it before issuing any request.
var ErrMissingAPIKey = errors.New("completion API key is not configured")

// TransportError means the provider could not be reached or its response
// body could not be read.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProviderError means the provider answered with a non-success status.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider rejected request (status %d): %s", e.StatusCode, e.Body)
}

// MalformedResponseError means the provider body could not be decoded or
// contained no choices.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed completion response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed completion response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
