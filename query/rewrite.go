package query

import "strings"

// rewriteLocalName replaces every bare element name test in a query
// with *[local-name()="name"], so that a prefix-less query matches
// elements regardless of the namespace the document declares. String
// literals, attribute names, axis keywords, prefixed names, variable
// references, operators and function calls pass through untouched.
func rewriteLocalName(q string) string {
	var b strings.Builder
	b.Grow(len(q) * 2)
	i, n := 0, len(q)
	for i < n {
		c := q[i]
		switch {
		case c == '\'' || c == '"':
			j := i + 1
			for j < n && q[j] != c {
				j++
			}
			if j < n {
				j++
			}
			b.WriteString(q[i:j])
			i = j
		case isNameStart(c):
			j := i + 1
			for j < n && isNameChar(q[j]) {
				j++
			}
			name := q[i:j]
			if rewritable(q, i, j, name) {
				b.WriteString(`*[local-name()="`)
				b.WriteString(name)
				b.WriteString(`"]`)
			} else {
				b.WriteString(name)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// XPath operator names that parse as bare identifiers.
var xpathKeywords = map[string]bool{
	"and": true,
	"or":  true,
	"div": true,
	"mod": true,
}

func rewritable(q string, start, end int, name string) bool {
	if xpathKeywords[name] {
		return false
	}
	if start > 0 {
		switch q[start-1] {
		case '@', ':', '$':
			return false
		}
	}
	j := end
	for j < len(q) && q[j] == ' ' {
		j++
	}
	if j < len(q) {
		switch q[j] {
		case '(':
			// function call
			return false
		case ':':
			// axis (name::) or prefixed name (name:local)
			return false
		}
	}
	return true
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '.'
}
