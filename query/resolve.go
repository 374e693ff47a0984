package query

import (
	"sort"
	"strings"
)

// Resolve substitutes :name placeholders in a query with properly
// quoted XPath string literals. Substitution is textual and happens
// before the query reaches the evaluator; it is not engine-level
// parameter binding.
func Resolve(q string, params map[string]string) string {
	if len(params) == 0 {
		return q
	}
	// longest first so :id does not eat the front of :idDoc
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		q = strings.ReplaceAll(q, ":"+name, Literal(params[name]))
	}
	return q
}

// Literal renders v as a single valid XPath string literal. XPath 1.0
// has no escaping inside literals, so a value holding both quote kinds
// needs a concat() splice.
func Literal(v string) string {
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	if !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}
	parts := strings.Split(v, "'")
	frags := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if p != "" {
			frags = append(frags, "'"+p+"'")
		}
		if i < len(parts)-1 {
			frags = append(frags, `"'"`)
		}
	}
	return "concat(" + strings.Join(frags, ", ") + ")"
}
