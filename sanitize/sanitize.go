// Package sanitize normalizes text destined for XML documents that must
// survive canonicalization and digital-signature verification byte for
// byte.
package sanitize

import (
	"strconv"
	"strings"
)

// Clean prepares a scalar value for insertion as element text. It
// strips ASCII control characters (0x00-0x1F and 0x7F) and folds the
// five predefined XML entities back to literal characters, so that an
// already-escaped input and its literal form insert identical text.
// The engine's serializer escapes &, < and > exactly once at write
// time; quotes in text content are restored by FixEntities afterwards.
func Clean(s string) string {
	if s == "" || isNumeric(s) {
		return s
	}
	s = stripControl(s)
	return decodeEntities(s)
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func stripControl(s string) string {
	i := 0
	for i < len(s) && !isControl(s[i]) {
		i++
	}
	if i == len(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		if isControl(s[i]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isControl(c byte) bool {
	return c < 0x20 || c == 0x7F
}

// decodeEntities folds &amp; &lt; &gt; &quot; &apos; and their numeric
// forms back to literal characters. Other entities pass through.
func decodeEntities(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:amp])
	for i := amp; i < len(s); i++ {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			continue
		}
		lit, width := matchEntity(s[i:])
		if width == 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte(lit)
		i += width - 1
	}
	return b.String()
}

// matchEntity reports the literal character for a predefined entity at
// the start of s and the entity's width, or width 0 on no match.
func matchEntity(s string) (byte, int) {
	end := strings.IndexByte(s, ';')
	if end < 1 {
		return 0, 0
	}
	// numeric references get a wider window for zero padding
	limit := 6
	if s[1] == '#' {
		limit = 8
	}
	if end > limit {
		return 0, 0
	}
	name := s[1:end]
	switch name {
	case "amp":
		return '&', end + 1
	case "lt":
		return '<', end + 1
	case "gt":
		return '>', end + 1
	case "quot":
		return '"', end + 1
	case "apos":
		return '\'', end + 1
	}
	if len(name) < 2 || name[0] != '#' {
		return 0, 0
	}
	digits := name[1:]
	base := 10
	if digits[0] == 'x' || digits[0] == 'X' {
		digits = digits[1:]
		base = 16
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, 0
	}
	switch n {
	case '&', '<', '>', '"', '\'':
		return byte(n), end + 1
	}
	return 0, 0
}

// FixEntities escapes single and double quotes appearing literally in
// element text content of a serialized XML string. Quotes inside tags
// and inside attribute-value literals are left alone: the serializer
// already handles those regions. The scan is best effort on malformed
// input and is idempotent over its own output.
func FixEntities(xml string) string {
	var b strings.Builder
	b.Grow(len(xml))
	inText := false
	var quote byte
	for i := 0; i < len(xml); i++ {
		c := xml[i]
		if quote != 0 {
			// inside an attribute-value literal
			if c == quote {
				quote = 0
			}
			b.WriteByte(c)
			continue
		}
		if !inText {
			switch c {
			case '=':
				if i+1 < len(xml) && (xml[i+1] == '"' || xml[i+1] == '\'') {
					quote = xml[i+1]
					b.WriteByte(c)
					b.WriteByte(quote)
					i++
					continue
				}
			case '>':
				inText = true
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '<':
			inText = false
			b.WriteByte(c)
		case '\'':
			b.WriteString("&apos;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
