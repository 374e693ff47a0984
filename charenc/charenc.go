// Package charenc converts document bytes between UTF-8 and declared
// single-byte encodings, and keeps the XML declaration in sync with the
// bytes that follow it.
package charenc

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the working encoding of documents that do not
// declare another one.
const DefaultEncoding = "ISO-8859-1"

var ErrUnknownEncoding = errors.New("unknown encoding")

var (
	declRx     = regexp.MustCompile(`^\s*<\?xml[^?]*\?>`)
	versionRx  = regexp.MustCompile(`version\s*=\s*["']([^"']+)["']`)
	encodingRx = regexp.MustCompile(`encoding\s*=\s*["']([^"']+)["']`)
)

// Declaration holds the version and encoding pseudo-attributes of an
// XML declaration.
type Declaration struct {
	Version  string
	Encoding string
}

// DetectDeclaration inspects the start of data for an XML declaration.
// It returns false when the document has none.
func DetectDeclaration(data []byte) (Declaration, bool) {
	decl := declRx.Find(data)
	if decl == nil {
		return Declaration{}, false
	}
	res := Declaration{Version: "1.0"}
	if m := versionRx.FindSubmatch(decl); m != nil {
		res.Version = string(m[1])
	}
	if m := encodingRx.FindSubmatch(decl); m != nil {
		res.Encoding = string(m[1])
	}
	return res, true
}

// EnsureDeclaration returns data with an XML declaration in front. When
// data already starts with one, it is returned unchanged; the parser
// rejects undeclared non-UTF-8 input otherwise.
func EnsureDeclaration(data []byte, enc string) []byte {
	if declRx.Match(data) {
		return data
	}
	decl := fmt.Sprintf("<?xml version=\"1.0\" encoding=\"%s\"?>\n", enc)
	return append([]byte(decl), data...)
}

// SetDeclaredEncoding rewrites the encoding pseudo-attribute of the
// declaration at the start of data, adding a declaration when missing.
func SetDeclaredEncoding(data []byte, enc string) []byte {
	loc := declRx.FindIndex(data)
	if loc == nil {
		return EnsureDeclaration(data, enc)
	}
	decl := data[loc[0]:loc[1]]
	var newDecl []byte
	if encodingRx.Match(decl) {
		newDecl = encodingRx.ReplaceAll(decl, []byte(fmt.Sprintf(`encoding="%s"`, enc)))
	} else {
		newDecl = []byte(strings.Replace(string(decl), "?>", fmt.Sprintf(` encoding="%s"?>`, enc), 1))
	}
	res := make([]byte, 0, len(data)+len(newDecl)-len(decl))
	res = append(res, data[:loc[0]]...)
	res = append(res, newDecl...)
	res = append(res, data[loc[1]:]...)
	return res
}

// IsUTF8 reports whether label names UTF-8.
func IsUTF8(label string) bool {
	switch strings.ToUpper(label) {
	case "", "UTF-8", "UTF8":
		return true
	}
	return false
}

func lookup(label string) (encoding.Encoding, error) {
	e, err := ianaindex.IANA.Encoding(label)
	if err != nil || e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return e, nil
}

// UTF8ToCharset re-expresses UTF-8 bytes in the named encoding.
// Characters without a representation in the target become the
// encoding's substitution character; this narrowing is lossy by
// contract, not an error.
func UTF8ToCharset(data []byte, label string) ([]byte, error) {
	if IsUTF8(label) {
		return data, nil
	}
	e, err := lookup(label)
	if err != nil {
		return nil, err
	}
	out, err := encoding.ReplaceUnsupported(e.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encode to %s: %w", label, err)
	}
	return out, nil
}

// CharsetToUTF8 converts bytes in the named encoding to UTF-8.
func CharsetToUTF8(data []byte, label string) ([]byte, error) {
	if IsUTF8(label) {
		return data, nil
	}
	e, err := lookup(label)
	if err != nil {
		return nil, err
	}
	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode from %s: %w", label, err)
	}
	return out, nil
}

// NewReader wraps r so that bytes in the labeled encoding come out as
// UTF-8. It has the signature the XML engine's CharsetReader hook wants.
func NewReader(label string, r io.Reader) (io.Reader, error) {
	return charset.NewReaderLabel(label, r)
}
