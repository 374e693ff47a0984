// Package codec converts between structured values (ir.Node trees) and
// XML element trees.
//
// # Conventions
//
// An object entry produces one element named after its key. An array
// entry produces one sibling element per item under the entry's key;
// this is the only way repeated elements are expressed, and arrays may
// not nest directly inside arrays. Two keys are reserved: "@attributes"
// holds a flat object of attribute values for the enclosing element,
// and "@value" holds its text content when attributes are also present.
//
// # Skip policy
//
// Null values, false, and empty objects or arrays omit their element
// entirely. The empty string and true produce an empty element.
//
//	doc, err := codec.Encode(ir.FromKeyVals(
//	    ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
//	        ir.KeyVal{Key: "item", Val: ir.FromStrings("a", "b")},
//	    )},
//	))
//
// Decode is the inverse projection; see Decode for its aggregation
// rules.
package codec
