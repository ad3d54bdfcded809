package interfaces

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure the client can produce. Callers
// match them with errors.Is; each submission attempt surfaces at most one.
var (
	// ErrTransport indicates a network failure, a non-success HTTP status,
	// or a truncated response read.
	ErrTransport = errors.New("transport failure")

	// ErrConfigNotFound indicates a named configuration document could not
	// be located in any configured source.
	ErrConfigNotFound = errors.New("configuration document not found")

	// ErrSourceUnavailable indicates a configuration source is not reachable.
	ErrSourceUnavailable = errors.New("configuration source unavailable")

	// ErrInvalidSourceURI indicates a malformed configuration source location.
	ErrInvalidSourceURI = errors.New("invalid source location URI")

	// ErrStructural indicates the response is not parseable as the expected
	// top-level shape, or its architecture label is missing. No label is
	// known on this path.
	ErrStructural = errors.New("invalid response structure")

	// ErrMissingField indicates a mandatory top-level collection is absent.
	ErrMissingField = errors.New("missing required response field")

	// ErrDecoding indicates a certificate or key blob failed to decode.
	ErrDecoding = errors.New("blob decoding failure")

	// ErrResolution indicates a chain reference names a certificate label
	// that does not exist anywhere in the response.
	ErrResolution = errors.New("unresolved certificate reference")

	// ErrValidation indicates a service entry's address is not a valid URL.
	ErrValidation = errors.New("invalid service address")
)

// ArchError is the single error type raised by the response model builder.
// It carries the architecture label when one is known, a stage-specific
// message, the sentinel kind for errors.Is matching, and the underlying
// cause for decoding failures.
type ArchError struct {
	// Label is the architecture label, or empty when stage-1 envelope
	// validation failed before a label was available.
	Label string

	// Kind is one of the sentinel errors above.
	Kind error

	// Msg is the human-readable stage-specific message.
	Msg string

	// Cause is the underlying error, if any.
	Cause error
}

// Error formats the message with the architecture label, mirroring the
// service's own error reporting convention.
func (e *ArchError) Error() string {
	label := e.Label
	if label == "" {
		label = "<unknown>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (certomancer arch '%s'): %v", e.Msg, label, e.Cause)
	}
	return fmt.Sprintf("%s (certomancer arch '%s')", e.Msg, label)
}

// Unwrap exposes both the sentinel kind and the underlying cause so that
// errors.Is and errors.As see through the wrapper.
func (e *ArchError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewArchError creates an ArchError without an underlying cause.
func NewArchError(label string, kind error, msg string) *ArchError {
	return &ArchError{Label: label, Kind: kind, Msg: msg}
}

// WrapArchError creates an ArchError wrapping an underlying cause.
func WrapArchError(label string, kind error, msg string, cause error) *ArchError {
	return &ArchError{Label: label, Kind: kind, Msg: msg, Cause: cause}
}
