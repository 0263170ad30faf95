package intent

import (
	"fmt"
	"strings"
)

// ValidationError reports an inbound payload that failed domain rules.
// It is the caller's fault and carries the offending value and the
// accepted set so the rejection can be shown as-is.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	quoted := make([]string, len(e.Allowed))
	for i, v := range e.Allowed {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("invalid %s: %q. Must be one of [%s]", e.Field, e.Value, strings.Join(quoted, ", "))
}

// ClockError reports that no usable signing timestamp could be taken.
type ClockError struct {
	Err error
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("failed to get current timestamp: %v", e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// EncodingError reports that an envelope could not be canonically encoded.
// The wrapped error may describe payload internals and is meant for logs only.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode intent: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// SigningError reports a failure of the process signer.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign intent: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}
