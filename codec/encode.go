package codec

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/fiscalxml/go-xmldoc/debug"
	"github.com/fiscalxml/go-xmldoc/ir"
	"github.com/fiscalxml/go-xmldoc/sanitize"
)

// Reserved object keys of the codec conventions.
const (
	AttributesKey = "@attributes"
	ValueKey      = "@value"
)

// Encode builds XML elements from a structured value. data must be an
// object; its first top-level key becomes the root element unless
// WithParent points somewhere below one. All inserted scalar text is
// passed through sanitize.Clean. The returned document is the one given
// via WithDocument, or a fresh one.
func Encode(data *ir.Node, opts ...EncodeOption) (*etree.Document, error) {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	if es.doc == nil {
		es.doc = etree.NewDocument()
	}
	if data == nil || data.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: encode wants an object, got %s", ErrInvalidStructure, nodeType(data))
	}
	if err := encodeObject(data, es.parent, es); err != nil {
		return nil, err
	}
	return es.doc, nil
}

func nodeType(y *ir.Node) ir.Type {
	if y == nil {
		return ir.NullType
	}
	return y.Type
}

// skipScalar reports the skip policy for leaves: null and false omit
// the element entirely, while "" and true keep an empty element.
func skipScalar(y *ir.Node) bool {
	if y == nil {
		return true
	}
	switch y.Type {
	case ir.NullType:
		return true
	case ir.BoolType:
		return !y.Bool
	}
	return false
}

func encodeObject(data *ir.Node, parent *etree.Element, es *encState) error {
	for i := range data.Fields {
		key := data.Fields[i].String
		val := data.Values[i]
		switch key {
		case AttributesKey:
			if err := encodeAttributes(val, parent); err != nil {
				return err
			}
		case ValueKey:
			if parent == nil || !val.IsScalar() || skipScalar(val) {
				continue
			}
			parent.SetText(sanitize.Clean(val.ScalarText()))
		default:
			if err := encodeEntry(key, val, parent, es); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeAttributes(val *ir.Node, parent *etree.Element) error {
	if val == nil {
		return nil
	}
	switch val.Type {
	case ir.ObjectType:
	case ir.ArrayType:
		return fmt.Errorf("%w: attribute set must be a flat object", ErrInvalidStructure)
	default:
		return nil
	}
	for i := range val.Fields {
		name := val.Fields[i].String
		av := val.Values[i]
		if !av.IsScalar() {
			return fmt.Errorf("%w: attribute %q value must be scalar, got %s", ErrInvalidStructure, name, av.Type)
		}
		if skipScalar(av) {
			continue
		}
		if parent == nil {
			// no element to attach to yet
			continue
		}
		parent.CreateAttr(name, sanitize.Clean(av.ScalarText()))
	}
	return nil
}

func encodeEntry(key string, val *ir.Node, parent *etree.Element, es *encState) error {
	if val == nil {
		return nil
	}
	if val.IsScalar() {
		if skipScalar(val) {
			return nil
		}
		el := es.createElement(parent, key)
		el.SetText(sanitize.Clean(val.ScalarText()))
		return nil
	}
	if val.Len() == 0 {
		return nil
	}
	items := []*ir.Node{val}
	if val.Type == ir.ArrayType {
		items = val.Values
	}
	for _, item := range items {
		switch {
		case skipScalar(item):
			continue
		case item.Type == ir.ObjectType:
			if item.Len() == 0 {
				continue
			}
			el := es.createElement(parent, key)
			if err := encodeObject(item, el, es); err != nil {
				return err
			}
		case item.Type == ir.ArrayType:
			return fmt.Errorf("%w: sequence nested inside sequence at %q", ErrInvalidStructure, key)
		default:
			el := es.createElement(parent, key)
			el.SetText(sanitize.Clean(item.ScalarText()))
		}
	}
	return nil
}

func (es *encState) createElement(parent *etree.Element, tag string) *etree.Element {
	var el *etree.Element
	isRoot := false
	if parent == nil {
		isRoot = es.doc.Root() == nil
		el = es.doc.CreateElement(tag)
	} else {
		el = parent.CreateElement(tag)
	}
	if debug.Codec() {
		debug.Printf("codec: element %s (root=%v)", tag, isRoot)
	}
	if es.ns == nil {
		return el
	}
	if es.ns.Prefix != "" {
		el.Space = es.ns.Prefix
	}
	if isRoot {
		if es.ns.Prefix != "" {
			el.CreateAttr("xmlns:"+es.ns.Prefix, es.ns.URI)
		} else {
			el.CreateAttr("xmlns", es.ns.URI)
		}
	}
	return el
}
