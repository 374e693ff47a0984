package codec

import (
	"errors"
	"testing"

	"github.com/beevik/etree"

	"github.com/fiscalxml/go-xmldoc/ir"
)

func canonicalDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	return doc
}

func encodeString(t *testing.T, data *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	doc := canonicalDoc()
	opts = append(opts, WithDocument(doc))
	if _, err := Encode(data, opts...); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("WriteToString: %v", err)
	}
	return s
}

type encodeTest struct {
	name string
	data *ir.Node
	opts []EncodeOption
	want string
}

func TestEncode(t *testing.T) {
	tests := []encodeTest{
		{
			name: "plain scalars in order",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "a", Val: ir.FromString("1")},
				ir.KeyVal{Key: "b", Val: ir.FromString("x")},
			)}),
			want: `<root><a>1</a><b>x</b></root>`,
		},
		{
			name: "skip policy",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "n", Val: ir.Null()},
				ir.KeyVal{Key: "f", Val: ir.FromBool(false)},
				ir.KeyVal{Key: "e", Val: ir.FromString("")},
				ir.KeyVal{Key: "t", Val: ir.FromBool(true)},
			)}),
			want: `<root><e></e><t></t></root>`,
		},
		{
			name: "repeated siblings from array",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "i", Val: ir.FromStrings("1", "2")},
			)}),
			want: `<root><i>1</i><i>2</i></root>`,
		},
		{
			name: "array of objects",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "i", Val: ir.FromSlice([]*ir.Node{
					ir.FromKeyVals(ir.KeyVal{Key: "q", Val: ir.FromInt(1)}),
					ir.FromKeyVals(ir.KeyVal{Key: "q", Val: ir.FromInt(2)}),
				})},
			)}),
			want: `<root><i><q>1</q></i><i><q>2</q></i></root>`,
		},
		{
			name: "attributes and value",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: AttributesKey, Val: ir.FromKeyVals(
					ir.KeyVal{Key: "id", Val: ir.FromString("5")},
					ir.KeyVal{Key: "skip", Val: ir.Null()},
				)},
				ir.KeyVal{Key: ValueKey, Val: ir.FromString("x")},
			)}),
			want: `<root id="5">x</root>`,
		},
		{
			name: "escaped input folds before serialization",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "a", Val: ir.FromString("P &amp; S")},
			)}),
			want: `<root><a>P &amp; S</a></root>`,
		},
		{
			name: "control characters stripped",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "a", Val: ir.FromString("a\x07b")},
			)}),
			want: `<root><a>ab</a></root>`,
		},
		{
			name: "quotes stay literal in text",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "a", Val: ir.FromString(`it's "x"`)},
			)}),
			want: `<root><a>it's "x"</a></root>`,
		},
		{
			name: "empty composites omitted",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "o", Val: ir.Object()},
				ir.KeyVal{Key: "l", Val: ir.Array()},
				ir.KeyVal{Key: "a", Val: ir.FromString("1")},
			)}),
			want: `<root><a>1</a></root>`,
		},
		{
			name: "prefixed namespace",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "a", Val: ir.FromString("1")},
			)}),
			opts: []EncodeOption{WithNamespace("http://u", "ns")},
			want: `<ns:root xmlns:ns="http://u"><ns:a>1</ns:a></ns:root>`,
		},
		{
			name: "default namespace",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "a", Val: ir.FromString("1")},
			)}),
			opts: []EncodeOption{WithNamespace("http://u", "")},
			want: `<root xmlns="http://u"><a>1</a></root>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeString(t, tt.data, tt.opts...); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

type encodeErrTest struct {
	name string
	data *ir.Node
}

func TestEncodeErrors(t *testing.T) {
	tests := []encodeErrTest{
		{name: "nil", data: nil},
		{name: "scalar top level", data: ir.FromString("x")},
		{
			name: "sequence of sequences",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: "i", Val: ir.FromSlice([]*ir.Node{ir.FromStrings("x")})},
			)}),
		},
		{
			name: "attribute list",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: AttributesKey, Val: ir.FromStrings("x")},
			)}),
		},
		{
			name: "composite attribute value",
			data: ir.FromKeyVals(ir.KeyVal{Key: "root", Val: ir.FromKeyVals(
				ir.KeyVal{Key: AttributesKey, Val: ir.FromKeyVals(
					ir.KeyVal{Key: "id", Val: ir.Object()},
				)},
			)}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.data, WithDocument(canonicalDoc()))
			if !errors.Is(err, ErrInvalidStructure) {
				t.Errorf("want ErrInvalidStructure, got %v", err)
			}
		})
	}
}

func decodeString(t *testing.T, xml string, opts ...DecodeOption) *ir.Node {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("ReadFromString: %v", err)
	}
	return Decode(doc.Root(), opts...)
}

type decodeTest struct {
	name string
	in   string
	want string // json
}

func TestDecode(t *testing.T) {
	tests := []decodeTest{
		{
			name: "scalar root text",
			in:   `<root>hi</root>`,
			want: `{"root":"hi"}`,
		},
		{
			name: "nested scalars",
			in:   `<root><a>1</a><b>x</b></root>`,
			want: `{"root":{"a":"1","b":"x"}}`,
		},
		{
			name: "attributes",
			in:   `<root id="5"><a>x</a></root>`,
			want: `{"root":{"@attributes":{"id":"5"},"a":"x"}}`,
		},
		{
			name: "attributed leaf gains value key",
			in:   `<root><a id="1">x</a></root>`,
			want: `{"root":{"a":{"@attributes":{"id":"1"},"@value":"x"}}}`,
		},
		{
			name: "leaf twins",
			in:   `<root><i>1</i><i>2</i></root>`,
			want: `{"root":{"i":["1","2"]}}`,
		},
		{
			name: "object twins",
			in:   `<root><i><q>1</q></i><i><q>2</q></i></root>`,
			want: `{"root":{"i":[{"q":"1"},{"q":"2"}]}}`,
		},
		{
			name: "twins inside a twin",
			in:   `<root><i><q>1</q><q>2</q></i><i><q>3</q></i></root>`,
			want: `{"root":{"i":[{"q":["1","2"]},{"q":"3"}]}}`,
		},
		{
			name: "attributed object twins",
			in:   `<root><i id="1"><q>a</q></i><i id="2"><q>b</q></i></root>`,
			want: `{"root":{"i":[{"@attributes":{"id":"1"},"q":"a"},{"@attributes":{"id":"2"},"q":"b"}]}}`,
		},
		{
			name: "text inside an object twin",
			in:   `<root><i><q>x</q>tail</i><i>y</i></root>`,
			want: `{"root":{"i":[{"q":"x","@value":"tail"},"y"]}}`,
		},
		{
			name: "text around child aggregates",
			in:   `<root><a>x<b>1</b>y</a></root>`,
			want: `{"root":{"a":{"@value":"xy","b":"1"}}}`,
		},
		{
			name: "xmlns attrs excluded",
			in:   `<root xmlns="http://x" xmlns:a="http://a"><b>1</b></root>`,
			want: `{"root":{"b":"1"}}`,
		},
		{
			name: "prefixed tags kept whole",
			in:   `<ns:root xmlns:ns="u"><ns:a>1</ns:a></ns:root>`,
			want: `{"ns:root":{"ns:a":"1"}}`,
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "<root><a>\n  spaced  \n</a></root>",
			want: `{"root":{"a":"spaced"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ir.ToJSON(decodeString(t, tt.in))
			if err != nil {
				t.Fatalf("ToJSON: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecodeNil(t *testing.T) {
	y := Decode(nil)
	if y == nil || y.Type != ir.ObjectType || y.Len() != 0 {
		t.Errorf("want empty object, got %v", y)
	}
}

func TestRoundTrip(t *testing.T) {
	data := ir.FromKeyVals(ir.KeyVal{Key: "Doc", Val: ir.FromKeyVals(
		ir.KeyVal{Key: "Header", Val: ir.FromKeyVals(
			ir.KeyVal{Key: "ID", Val: ir.FromString("F60T33")},
			ir.KeyVal{Key: "Total", Val: ir.FromString("1000")},
		)},
		ir.KeyVal{Key: "Item", Val: ir.FromSlice([]*ir.Node{
			ir.FromKeyVals(ir.KeyVal{Key: "Name", Val: ir.FromString("first")}),
			ir.FromKeyVals(
				ir.KeyVal{Key: "Name", Val: ir.FromString("second")},
				ir.KeyVal{Key: "Qty", Val: ir.FromStrings("1", "2")},
			),
		})},
	)})
	doc := canonicalDoc()
	if _, err := Encode(data, WithDocument(doc)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := ir.ToJSON(Decode(doc.Root()))
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	want, err := ir.ToJSON(data)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("round trip:\nwant %s\ngot  %s", want, got)
	}
}
