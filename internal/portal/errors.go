// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package portal

import "fmt"

// ErrorKind classifies a failed lookup so callers can distinguish
// failure modes without parsing display text.
type ErrorKind int

const (
	// KindTimeout covers HTTP timeouts on the token fetch or the form
	// submission.
	KindTimeout ErrorKind = iota

	// KindNetwork covers non-timeout transport failures.
	KindNetwork

	// KindParseFailure covers responses that cannot be parsed as HTML.
	KindParseFailure

	// KindServerReported covers an explicit error message from the
	// portal (e.g. an unknown roll number). Msg carries the server text.
	KindServerReported

	// KindMissingField covers pages missing the security tokens or all
	// of the expected result fields.
	KindMissingField
)

// String returns the kind name used in error text.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindParseFailure:
		return "parse failure"
	case KindServerReported:
		return "server reported"
	case KindMissingField:
		return "missing field"
	default:
		return "unknown"
	}
}

// Error describes a failed lookup. Lookup never returns any other error
// type; the scrape stage maps kinds to display text at the reporting
// boundary.
type Error struct {
	Kind ErrorKind
	Roll int
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
