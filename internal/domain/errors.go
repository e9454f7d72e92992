package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GenericErrorMessage is used whenever no upstream detail is available.
const GenericErrorMessage = "Something went wrong"

// ValidationError is a client-caused failure. It always maps to HTTP 400.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError is returned when a provider answered with a non-2xx status.
// Body holds the raw response payload, possibly empty.
type UpstreamError struct {
	Provider ProviderType
	Status   int
	Body     []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error [%d]: %s", e.Provider, e.Status, string(e.Body))
}

// Detail returns the value placed under "error" in the client response.
// JSON bodies are embedded as JSON, anything else as a string, and an empty
// body (or a falsy JSON scalar) falls back to GenericErrorMessage.
func (e *UpstreamError) Detail() any {
	trimmed := bytes.TrimSpace(e.Body)
	if len(trimmed) == 0 {
		return GenericErrorMessage
	}
	if json.Valid(trimmed) {
		if IsFalsy(trimmed) {
			return GenericErrorMessage
		}
		return json.RawMessage(trimmed)
	}
	return string(e.Body)
}

// NetworkError wraps a transport failure or an unreadable provider response.
type NetworkError struct {
	Provider ProviderType
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
