// Package query wraps the XPath evaluator with parameterized queries,
// namespace-optional matching, and structural projection of matched
// nodes.
//
//	e, err := query.New(xmlBytes, nil)
//	v, err := e.Get("//Receipt[Code=:code]", map[string]string{"code": "33"}, nil)
//
// Placeholders of the form :name are textually replaced with quoted
// XPath string literals before evaluation; values holding both quote
// characters become concat() splices. With no namespaces registered,
// bare tag steps are rewritten to local-name() tests so the same query
// works on namespaced and plain documents alike.
package query
