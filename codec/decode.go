package codec

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/fiscalxml/go-xmldoc/ir"
)

type decState struct {
	twins bool
	acc   *ir.Node
}

type DecodeOption func(*decState)

// TwinsAsArray merges the element's content directly into the caller's
// accumulator instead of nesting it under the element's tag. Decode
// sets it internally when descending into repeated siblings.
func TwinsAsArray(v bool) DecodeOption {
	return func(ds *decState) { ds.twins = v }
}

// WithAccumulator decodes into an existing object instead of a fresh
// {tag: null} one, supporting recursive accumulation.
func WithAccumulator(acc *ir.Node) DecodeOption {
	return func(ds *decState) { ds.acc = acc }
}

// Decode projects an element subtree into a structured value following
// the codec conventions: attributes under "@attributes", text content
// of attributed elements under "@value", an element with just one text
// child as a bare scalar, and repeated sibling tags aggregated into an
// array. Decode never fails on a well-formed tree; a nil element yields
// an empty object.
func Decode(el *etree.Element, opts ...DecodeOption) *ir.Node {
	ds := &decState{}
	for _, opt := range opts {
		opt(ds)
	}
	if el == nil {
		return ir.Object()
	}
	result := ds.acc
	if result == nil {
		result = ir.FromKeyVals(ir.KeyVal{Key: FullTag(el), Val: ir.Null()})
	}
	decodeInto(el, result, ds.twins)
	return result
}

// FullTag returns the element's tag as written, prefix included.
func FullTag(el *etree.Element) string {
	if el.Space != "" {
		return el.Space + ":" + el.Tag
	}
	return el.Tag
}

func decodeInto(el *etree.Element, result *ir.Node, twins bool) {
	tag := FullTag(el)
	// own resolves the object holding this element's content. In twins
	// mode result already is that object; otherwise it lives under tag.
	own := func() *ir.Node {
		if twins {
			return result
		}
		return ensureObject(result, tag)
	}
	attrs := contentAttrs(el)
	if len(attrs) > 0 {
		attrObj := ir.Object()
		for _, a := range attrs {
			attrObj.Set(attrName(a), ir.FromString(a.Value))
		}
		own().Set(AttributesKey, attrObj)
	}

	counts := map[string]int{}
	for _, c := range el.ChildElements() {
		counts[FullTag(c)]++
	}

	for _, tok := range el.Child {
		switch c := tok.(type) {
		case *etree.CharData:
			text := strings.TrimSpace(c.Data)
			if text == "" {
				continue
			}
			if !twins && len(attrs) == 0 && len(el.Child) == 1 && emptyValue(ir.Get(result, tag)) {
				result.Set(tag, ir.FromString(text))
				continue
			}
			appendValue(own(), text)
		case *etree.Element:
			ctag := FullTag(c)
			if counts[ctag] == 1 {
				if twins {
					decodeInto(c, result, false)
				} else {
					decodeInto(c, own(), false)
				}
				continue
			}
			list := ensureArray(own(), ctag)
			if text, ok := leafText(c); ok {
				list.Append(ir.FromString(text))
				continue
			}
			sub := ir.Object()
			list.Append(sub)
			decodeInto(c, sub, true)
		}
	}
}

// contentAttrs returns the element's attributes minus namespace
// declarations, which belong to the tree and not to the data.
func contentAttrs(el *etree.Element) []etree.Attr {
	var res []etree.Attr
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		res = append(res, a)
	}
	return res
}

func attrName(a etree.Attr) string {
	if a.Space != "" {
		return a.Space + ":" + a.Key
	}
	return a.Key
}

// leafText reports the trimmed text of an element whose only child node
// is non-whitespace character data.
func leafText(el *etree.Element) (string, bool) {
	if len(el.Child) != 1 {
		return "", false
	}
	cd, ok := el.Child[0].(*etree.CharData)
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(cd.Data)
	if text == "" {
		return "", false
	}
	return text, true
}

// ensureObject returns the object stored under field, replacing a
// scalar or null slot by a fresh object.
func ensureObject(y *ir.Node, field string) *ir.Node {
	if v := ir.Get(y, field); v != nil && v.Type == ir.ObjectType {
		return v
	}
	obj := ir.Object()
	y.Set(field, obj)
	return obj
}

func ensureArray(y *ir.Node, field string) *ir.Node {
	if v := ir.Get(y, field); v != nil && v.Type == ir.ArrayType {
		return v
	}
	arr := ir.Array()
	y.Set(field, arr)
	return arr
}

// appendValue aggregates element text under the "@value" key in
// document order.
func appendValue(obj *ir.Node, text string) {
	if v := ir.Get(obj, ValueKey); v != nil && v.Type == ir.StringType {
		v.String += text
		return
	}
	obj.Set(ValueKey, ir.FromString(text))
}

func emptyValue(y *ir.Node) bool {
	if y == nil {
		return true
	}
	switch y.Type {
	case ir.NullType:
		return true
	case ir.StringType:
		return y.String == ""
	case ir.ObjectType, ir.ArrayType:
		return y.Len() == 0
	}
	return false
}
