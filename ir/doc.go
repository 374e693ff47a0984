// Package ir provides the structured-value representation shared by the
// codec, the document facade, and the query engine.
//
// A value is a tree of ir.Node, a closed tagged union over null, bool,
// number, string, object, and array. Objects keep their entries in
// insertion order (Fields[i] is the key for Values[i]); order is
// preserved so that generated XML is reproducible, but two objects with
// the same entries in different orders compare equal.
//
// Two object keys are reserved by the XML codec conventions:
// "@attributes" (a flat object of attribute name to scalar value on the
// enclosing element) and "@value" (the element's text content, used when
// attributes are also present). See the codec package.
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	obj := ir.FromKeyVals(
//	    ir.KeyVal{Key: "name", Val: ir.FromString("alice")},
//	)
//	arr := ir.FromStrings("a", "b", "c")
//
// Node structures are not safe for concurrent mutation.
package ir
