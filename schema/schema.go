// Package schema validates documents against XSD schemas and translates
// the engine's diagnostics through caller-supplied message tables.
package schema

import (
	"errors"
	"fmt"

	xsderrors "github.com/jacoelho/xsd/errors"

	xmldoc "github.com/fiscalxml/go-xmldoc"
)

var (
	// ErrValidationFailed reports an invalid document; the returned
	// error is a *ValidationError carrying the diagnostics.
	ErrValidationFailed = errors.New("schema validation failed")
	// ErrNoSchema reports that no schema path was given and the
	// document carries no schemaLocation hint.
	ErrNoSchema = errors.New("no schema to validate against")
)

// Diagnostic is one validation finding, message already translated.
type Diagnostic struct {
	Code    string
	Message string
	Path    string
	Line    int
	Column  int
}

type ValidationError struct {
	Schema      string
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("%v against %s", ErrValidationFailed, e.Schema)
	}
	d := e.Diagnostics[0]
	msg := fmt.Sprintf("%v against %s: %s", ErrValidationFailed, e.Schema, d.Message)
	if len(e.Diagnostics) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Diagnostics)-1)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Validator checks documents against XSD schemas. Its message
// dictionary is explicit configuration, mapping engine error codes to
// replacement messages for user-facing output; codes without an entry
// keep the engine's message.
type Validator struct {
	dict map[string]string
}

type Option func(*Validator)

func WithDictionary(dict map[string]string) Option {
	return func(v *Validator) { v.dict = dict }
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks doc against the schema at schemaPath, falling back to
// the document's own schemaLocation hint when schemaPath is "". A nil
// return means valid.
func (v *Validator) Validate(doc *xmldoc.Document, schemaPath string) error {
	if schemaPath == "" {
		schemaPath = doc.SchemaLocationHint()
	}
	if schemaPath == "" {
		return ErrNoSchema
	}
	err := doc.SchemaValidate(schemaPath)
	if err == nil {
		return nil
	}
	var list xsderrors.ValidationList
	if !errors.As(err, &list) {
		// schema load or serialization failure, not a verdict
		return err
	}
	res := &ValidationError{Schema: schemaPath}
	for _, item := range list {
		res.Diagnostics = append(res.Diagnostics, v.translate(item))
	}
	return res
}

func (v *Validator) translate(item xsderrors.Validation) Diagnostic {
	msg := item.Message
	if t, ok := v.dict[item.Code]; ok {
		msg = t
	}
	return Diagnostic{
		Code:    item.Code,
		Message: msg,
		Path:    item.Path,
		Line:    item.Line,
		Column:  item.Column,
	}
}
