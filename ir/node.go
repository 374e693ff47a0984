package ir

import (
	"strconv"
	"strings"
)

// Node is one value in a structured document. It is a closed tagged
// union: the Type field selects which of the remaining fields carry the
// value. Objects keep Fields[i] as the key for Values[i], preserving
// insertion order.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func Object() *Node {
	return &Node{Type: ObjectType}
}

func Array() *Node {
	return &Node{Type: ArrayType}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs ...KeyVal) *Node {
	return FromKeyValsAt(&Node{}, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Val == nil {
			kv.Val = Null()
		}
		field := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: kv.Key,
			Type:        StringType,
			String:      kv.Key,
		}
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = field
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(vs))
	for i, y := range vs {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

func FromStrings(vs ...string) *Node {
	res := make([]*Node, len(vs))
	for i, v := range vs {
		res[i] = FromString(v)
	}
	return FromSlice(res)
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

// Get returns the value stored under field, or nil if y is not an
// object or has no such field.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set stores v under field, replacing an existing entry in place or
// appending a new one. y must be an object.
func (y *Node) Set(field string, v *Node) *Node {
	if v == nil {
		v = Null()
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			v.Parent = y
			v.ParentIndex = i
			v.ParentField = field
			y.Values[i] = v
			return y
		}
	}
	i := len(y.Fields)
	yField := &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: field,
		Type:        StringType,
		String:      field,
	}
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = field
	y.Fields = append(y.Fields, yField)
	y.Values = append(y.Values, v)
	return y
}

// Append adds v to the end of an array node.
func (y *Node) Append(v *Node) *Node {
	if v == nil {
		v = Null()
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	y.Values = append(y.Values, v)
	return y
}

func ToMap(y *Node) map[string]*Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(y.Fields))
	for i := range y.Fields {
		res[y.Fields[i].String] = y.Values[i]
	}
	return res
}

// IsScalar reports whether y holds a leaf value (null, bool, number,
// or string).
func (y *Node) IsScalar() bool {
	switch y.Type {
	case NullType, BoolType, NumberType, StringType:
		return true
	}
	return false
}

// ScalarText renders a scalar node as element text. Bool true and null
// render empty; callers apply the skip policy before asking for text.
func (y *Node) ScalarText() string {
	switch y.Type {
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'f', -1, 64)
		}
		return y.Number
	}
	return ""
}

// Len returns the number of entries of an object or array, 0 otherwise.
func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	switch y.Type {
	case ObjectType, ArrayType:
		return len(y.Values)
	}
	return 0
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// GetPath resolves a dot separated path like "Doc.Header.ID" against y.
// A purely numeric step indexes into an array. It returns nil when any
// step is absent.
func (y *Node) GetPath(path string) *Node {
	cur := y
	if path == "" {
		return cur
	}
	for step := range strings.SplitSeq(path, ".") {
		if cur == nil {
			return nil
		}
		switch cur.Type {
		case ArrayType:
			i, err := strconv.Atoi(step)
			if err != nil || i < 0 || i >= len(cur.Values) {
				return nil
			}
			cur = cur.Values[i]
		case ObjectType:
			cur = Get(cur, step)
		default:
			return nil
		}
	}
	return cur
}
