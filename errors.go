package wirely

import (
	"errors"
	"fmt"
)

// Sentinel errors for wirely. Use errors.Is to check.
var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrValidation    = errors.New("validation failed")
	ErrStreamAborted = errors.New("stream aborted")
)

// ArgumentError is an error that should be sent back to the model for
// self-correction (invalid argument JSON, schema validation failure, bad
// enum value). Do not expose stack traces or internal details to the model.
// Err optionally wraps a sentinel (e.g. ErrValidation) for errors.Is/As.
type ArgumentError struct {
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid tool arguments: %s", e.Reason)
}

// Unwrap supports errors.Is/errors.As on wrapped chains.
func (e *ArgumentError) Unwrap() error { return e.Err }

// ExecutionError represents an internal failure inside a tool (collaborator
// down, panic, etc.). The model should not see the underlying error message.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return "internal error during tool execution"
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// TransportError is the only error class that aborts a whole Execute call:
// the completion request failed or returned a non-success status. Status is
// zero when the request never produced a response.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("completion request failed [%d]: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsArgumentError returns true if err is or wraps an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// IsExecutionError returns true if err is or wraps an ExecutionError.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}

// IsTransportError returns true if err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// wrapJSONParseError returns an ArgumentError for JSON unmarshal failures so
// parse errors read the same everywhere (Extractor and dispatcher paths).
func wrapJSONParseError(err error) error {
	return &ArgumentError{Reason: "json parse error: " + err.Error()}
}

// panicError wraps a recovered panic value for ExecutionError.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
