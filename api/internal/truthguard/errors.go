package truthguard

import (
	"errors"
	"fmt"
)

// Local input problems; these never reach the network.
var (
	ErrEmptyContent     = errors.New("content is empty")
	ErrUnsupportedMedia = errors.New("file is not an image")
	ErrNoFile           = errors.New("no file supplied")
	ErrUnknownLanguage  = errors.New("unsupported language")
)

// ValidationError wraps a bad-input failure from the request builder.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError covers any non-success HTTP status, network-level failure or
// non-JSON body. It retains the attempted endpoint and cause for diagnostics;
// it is never reinterpreted as a low-trust verdict.
type TransportError struct {
	Endpoint   string
	StatusCode int // 0 when the call never completed
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("truthguard %s: status %d: %v", e.Endpoint, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("truthguard %s: %v", e.Endpoint, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// SchemaError marks a transport-successful response whose shape does not
// match the verdict contract. Rendering is blocked; the UI shows a generic
// failure instead of partial data.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("bad verdict payload: %s: %s", e.Field, e.Reason)
	}
	return "bad verdict payload: " + e.Reason
}
