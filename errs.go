package xmldoc

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument reports a load of zero-length input.
	ErrEmptyDocument = errors.New("empty document")
	// ErrMalformedXML reports input the engine could not parse; the
	// returned error is a *ParseError carrying the diagnostics.
	ErrMalformedXML = errors.New("malformed xml")
	// ErrNodeNotFound reports a canonicalization XPath that matched
	// nothing.
	ErrNodeNotFound = errors.New("no node matches xpath")
)

// ParseError carries the engine's structured parse diagnostics.
type ParseError struct {
	Line     int
	Column   int
	Severity string
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %s", ErrMalformedXML, e.Line, e.Msg)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedXML, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedXML, e.Err}
}
