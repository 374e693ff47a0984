package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fiscalxml/go-xmldoc/ir"
)

const invoiceXML = `<Doc xmlns="http://www.sii.cl/SiiDte"><Header><ID>F60T33</ID><Issuer>A &amp; B</Issuer></Header><Item><Name>first</Name><Qty>2</Qty></Item><Item><Name>second</Name><Qty>5</Qty></Item></Doc>`

func mustEngine(t *testing.T, namespaces map[string]string) *Engine {
	t.Helper()
	e, err := New([]byte(invoiceXML), namespaces)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func mustJSON(t *testing.T, y *ir.Node) string {
	t.Helper()
	d, err := ir.ToJSON(y)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	return string(d)
}

type getTest struct {
	name   string
	q      string
	params map[string]string
	want   string // json, "" for no match
}

func TestGet(t *testing.T) {
	e := mustEngine(t, nil)
	tests := []getTest{
		{
			name: "scalar leaf",
			q:    "//Header/ID",
			want: `"F60T33"`,
		},
		{
			name: "single subtree projection",
			q:    "/Doc/Header",
			want: `{"ID":"F60T33","Issuer":"A & B"}`,
		},
		{
			name: "multiple matches become array",
			q:    "//Item/Name",
			want: `["first","second"]`,
		},
		{
			name: "projection of repeated tags",
			q:    "/Doc",
			want: `{"Header":{"ID":"F60T33","Issuer":"A & B"},"Item":[{"Name":"first","Qty":"2"},{"Name":"second","Qty":"5"}]}`,
		},
		{
			name:   "parameterized",
			q:      "//Item[Name=:name]/Qty",
			params: map[string]string{"name": "second"},
			want:   `"5"`,
		},
		{
			name: "predicate with position",
			q:    "//Item[2]/Qty",
			want: `"5"`,
		},
		{
			name: "no match",
			q:    "//Nope",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Get(tt.q, tt.params, nil)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if tt.want == "" {
				if got != nil {
					t.Errorf("want nil, got %s", mustJSON(t, got))
				}
				return
			}
			if got == nil {
				t.Fatalf("want %s, got nil", tt.want)
			}
			if gotJSON := mustJSON(t, got); gotJSON != tt.want {
				t.Errorf("want %s, got %s", tt.want, gotJSON)
			}
		})
	}
}

func TestGetValues(t *testing.T) {
	e := mustEngine(t, nil)
	vals, err := e.GetValues("//Item/Qty", nil, nil)
	if err != nil {
		t.Fatalf("GetValues: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "5"}, vals); diff != "" {
		t.Errorf("GetValues mismatch (-want +got):\n%s", diff)
	}

	v, err := e.GetValue("//Header/ID", nil, nil)
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "F60T33" {
		t.Errorf("got %q", v)
	}
	v, err = e.GetValue("//Nope", nil, nil)
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "" {
		t.Errorf("want empty, got %q", v)
	}
}

func TestRegisteredNamespaces(t *testing.T) {
	e := mustEngine(t, map[string]string{"sii": "http://www.sii.cl/SiiDte"})
	v, err := e.GetValue("//sii:Header/sii:ID", nil, nil)
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "F60T33" {
		t.Errorf("got %q", v)
	}
	// a prefix bound to another uri does not match
	other, err := New([]byte(invoiceXML), map[string]string{"sii": "http://elsewhere"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vals, err := other.GetValues("//sii:Header/sii:ID", nil, nil)
	if err != nil {
		t.Fatalf("GetValues: %v", err)
	}
	if len(vals) != 0 {
		t.Errorf("want no match, got %v", vals)
	}
}

// A parameter holding both quote characters must still resolve to a
// literal the evaluator accepts and matches.
func TestBothQuotesParam(t *testing.T) {
	val := `both ' and "`
	e, err := New([]byte(`<r><a>both &apos; and &quot;</a><a>other</a></r>`), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vals, err := e.GetValues("//a[.=:v]", map[string]string{"v": val}, nil)
	if err != nil {
		t.Fatalf("GetValues: %v", err)
	}
	if len(vals) != 1 || vals[0] != val {
		t.Errorf("got %q", vals)
	}
}

func TestContextNode(t *testing.T) {
	e := mustEngine(t, nil)
	items, err := e.GetNodes("//Item", nil, nil)
	if err != nil {
		t.Fatalf("GetNodes: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	v, err := e.GetValue("Name", nil, items[1])
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "second" {
		t.Errorf("got %q", v)
	}
	got, err := e.Get("Qty", nil, items[1])
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotJSON := mustJSON(t, got); gotJSON != `"5"` {
		t.Errorf("got %s", gotJSON)
	}
	// the other item's children are out of scope
	vals, err := e.GetValues("Name[.='second']", nil, items[0])
	if err != nil {
		t.Fatalf("GetValues: %v", err)
	}
	if len(vals) != 0 {
		t.Errorf("want no match, got %v", vals)
	}
}

func TestInvalidXPath(t *testing.T) {
	e := mustEngine(t, nil)
	if _, err := e.Get("//Item[", nil, nil); !errors.Is(err, ErrInvalidXPath) {
		t.Errorf("want ErrInvalidXPath, got %v", err)
	}
}

func TestInvalidXML(t *testing.T) {
	if _, err := New([]byte("<a><b></a>"), nil); !errors.Is(err, ErrInvalidXML) {
		t.Errorf("want ErrInvalidXML, got %v", err)
	}
	if _, err := New(42, nil); !errors.Is(err, ErrInvalidXML) {
		t.Errorf("want ErrInvalidXML, got %v", err)
	}
}

func TestElementPath(t *testing.T) {
	e := mustEngine(t, nil)
	nodes, err := e.GetNodes("//Item[2]/Qty", nil, nil)
	if err != nil {
		t.Fatalf("GetNodes: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %d", len(nodes))
	}
	steps, ok := e.ElementPath(nodes[0])
	if !ok {
		t.Fatalf("no element path")
	}
	// second Item is element 2 under Doc, Qty is its element 1
	if len(steps) != 2 || steps[0] != 2 || steps[1] != 1 {
		t.Errorf("got %v", steps)
	}
}

type literalTest struct {
	in   string
	want string
}

func TestLiteral(t *testing.T) {
	tests := []literalTest{
		{in: "plain", want: "'plain'"},
		{in: "", want: "''"},
		{in: "it's", want: `"it's"`},
		{in: `say "hi"`, want: `'say "hi"'`},
		{in: `both ' and "`, want: `concat('both ', "'", ' and "')`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Literal(tt.in); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

type resolveTest struct {
	name   string
	q      string
	params map[string]string
	want   string
}

func TestResolve(t *testing.T) {
	tests := []resolveTest{
		{
			name: "no params",
			q:    "//a[b=:x]",
			want: "//a[b=:x]",
		},
		{
			name:   "simple",
			q:      "//a[b=:x]",
			params: map[string]string{"x": "v"},
			want:   "//a[b='v']",
		},
		{
			name:   "longest name first",
			q:      "//a[b=:id and c=:idDoc]",
			params: map[string]string{"id": "1", "idDoc": "2"},
			want:   "//a[b='1' and c='2']",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.q, tt.params); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

type rewriteTest struct {
	name string
	in   string
	want string
}

func TestRewriteLocalName(t *testing.T) {
	tests := []rewriteTest{
		{
			name: "bare steps",
			in:   "/Doc/Header",
			want: `/*[local-name()="Doc"]/*[local-name()="Header"]`,
		},
		{
			name: "attributes untouched",
			in:   "//Item/@id",
			want: `//*[local-name()="Item"]/@id`,
		},
		{
			name: "string literal untouched",
			in:   "//Item[Name='Name']",
			want: `//*[local-name()="Item"][*[local-name()="Name"]='Name']`,
		},
		{
			name: "functions untouched",
			in:   "count(//Item)",
			want: `count(//*[local-name()="Item"])`,
		},
		{
			name: "keywords untouched",
			in:   "//a[b and c]",
			want: `//*[local-name()="a"][*[local-name()="b"] and *[local-name()="c"]]`,
		},
		{
			name: "prefixed names untouched",
			in:   "//ns:Item",
			want: "//ns:Item",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewriteLocalName(tt.in); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}
