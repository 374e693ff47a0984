package query

import "errors"

var (
	// ErrInvalidXML reports raw text the engine could not parse.
	ErrInvalidXML = errors.New("invalid xml")
	// ErrInvalidXPath reports a query the evaluator rejected; the
	// evaluator's own message is embedded.
	ErrInvalidXPath = errors.New("invalid xpath")
)
