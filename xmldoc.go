package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/jacoelho/xsd"

	"github.com/fiscalxml/go-xmldoc/charenc"
	"github.com/fiscalxml/go-xmldoc/codec"
	"github.com/fiscalxml/go-xmldoc/debug"
	"github.com/fiscalxml/go-xmldoc/ir"
	"github.com/fiscalxml/go-xmldoc/query"
	"github.com/fiscalxml/go-xmldoc/sanitize"
)

// Document wraps one XML tree together with its declared version and
// working encoding. A Document is append-then-freeze: build or load it,
// then query it. The structured projection and the query engine are
// each created once on first use and are not refreshed if the tree is
// mutated afterwards.
type Document struct {
	doc      *etree.Document
	version  string
	encoding string

	engine *query.Engine
	node   *ir.Node
}

type Option func(*Document)

// WithEncoding sets the working encoding the document serializes to.
// The default is ISO-8859-1.
func WithEncoding(enc string) Option {
	return func(d *Document) { d.encoding = enc }
}

func WithVersion(v string) Option {
	return func(d *Document) { d.version = v }
}

func New(opts ...Option) *Document {
	d := &Document{
		version:  "1.0",
		encoding: charenc.DefaultEncoding,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.doc = newEngineDocument()
	return d
}

// newEngineDocument configures the underlying tree: character data is
// escaped the canonical way (quotes in text left alone, restored later
// by sanitize.FixEntities), empty elements keep explicit end tags, and
// declared charsets are honored on read.
func newEngineDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.ReadSettings.CharsetReader = charenc.NewReader
	return doc
}

// FromNode builds a document from a structured value via the codec.
func FromNode(data *ir.Node, opts ...Option) (*Document, error) {
	return FromNodeNS(data, nil, opts...)
}

// FromNodeNS builds a document from a structured value, qualifying the
// created elements with a namespace.
func FromNodeNS(data *ir.Node, ns *codec.Namespace, opts ...Option) (*Document, error) {
	d := New(opts...)
	encOpts := []codec.EncodeOption{codec.WithDocument(d.doc)}
	if ns != nil {
		encOpts = append(encOpts, codec.WithNamespace(ns.URI, ns.Prefix))
	}
	if _, err := codec.Encode(data, encOpts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Load parses raw document bytes. A declared UTF-8 document is
// re-expressed in the working encoding before parsing so that the bytes
// later produced by Bytes and C14N stay signature-compatible; a
// document declaring its own single-byte encoding makes that encoding
// the working one.
func Load(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.load(data); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) load(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}
	decl, declared := charenc.DetectDeclaration(data)
	declEnc := decl.Encoding
	if declEnc == "" {
		declEnc = "UTF-8"
	}
	if decl.Version != "" {
		d.version = decl.Version
	}
	switch {
	case charenc.IsUTF8(declEnc) && !charenc.IsUTF8(d.encoding):
		conv, err := charenc.UTF8ToCharset(data, d.encoding)
		if err != nil {
			return err
		}
		data = charenc.SetDeclaredEncoding(conv, d.encoding)
	case !charenc.IsUTF8(declEnc):
		d.encoding = declEnc
		if !declared {
			data = charenc.EnsureDeclaration(data, declEnc)
		}
	case !declared:
		data = charenc.EnsureDeclaration(data, declEnc)
	}
	if debug.Encoding() {
		debug.Printf("encoding: declared=%q working=%q", decl.Encoding, d.encoding)
	}
	if err := d.doc.ReadFromBytes(data); err != nil {
		return parseError(err)
	}
	if d.doc.Root() == nil {
		return &ParseError{Severity: "error", Msg: "no document element"}
	}
	return nil
}

func parseError(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{Line: syn.Line, Severity: "error", Msg: syn.Msg, Err: err}
	}
	return &ParseError{Severity: "error", Msg: err.Error(), Err: err}
}

// Root returns the document element, nil when the document is empty.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Tree exposes the underlying engine document.
func (d *Document) Tree() *etree.Document {
	return d.doc
}

func (d *Document) Version() string {
	return d.version
}

// Encoding returns the working encoding, the one Bytes and C14N
// produce.
func (d *Document) Encoding() string {
	return d.encoding
}

// Bytes serializes the document in its working encoding, declaration
// included, with text-content quotes escaped for signature
// compatibility.
func (d *Document) Bytes() ([]byte, error) {
	body, err := d.serializeRoot()
	if err != nil {
		return nil, err
	}
	body = sanitize.FixEntities(body)
	out, err := charenc.UTF8ToCharset([]byte(body), d.encoding)
	if err != nil {
		return nil, err
	}
	decl := fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n", d.version, d.encoding)
	return append([]byte(decl), append(out, '\n')...), nil
}

func (d *Document) String() string {
	out, err := d.Bytes()
	if err != nil {
		return ""
	}
	return string(out)
}

// utf8Bytes serializes the document as UTF-8 for collaborators that
// want universal text (the query engine, the schema validator).
func (d *Document) utf8Bytes() ([]byte, error) {
	body, err := d.serializeRoot()
	if err != nil {
		return nil, err
	}
	body = sanitize.FixEntities(body)
	decl := fmt.Sprintf("<?xml version=\"%s\" encoding=\"UTF-8\"?>\n", d.version)
	return append([]byte(decl), body...), nil
}

// serializeRoot writes the document element alone; the declaration is
// rendered by the callers, which control the encoding it names.
func (d *Document) serializeRoot() (string, error) {
	root := d.doc.Root()
	if root == nil {
		return "", ErrEmptyDocument
	}
	scratch := newEngineDocument()
	scratch.SetRoot(root.Copy())
	return scratch.WriteToString()
}

// ToNode projects the tree into a structured value. The projection is
// computed on first call and memoized; the document is frozen for
// query purposes from then on.
func (d *Document) ToNode() *ir.Node {
	if d.node == nil {
		d.node = codec.Decode(d.doc.Root())
	}
	return d.node
}

// Get resolves a dot separated path like "Doc.Header.ID" against the
// projection, nil when absent.
func (d *Document) Get(path string) *ir.Node {
	return d.ToNode().GetPath(path)
}

// QueryEngine returns the XPath engine bound to this document,
// building it on first use from the current serialization.
func (d *Document) QueryEngine() (*query.Engine, error) {
	if d.engine != nil {
		return d.engine, nil
	}
	data, err := d.utf8Bytes()
	if err != nil {
		return nil, err
	}
	e, err := query.New(data, nil)
	if err != nil {
		return nil, err
	}
	d.engine = e
	return e, nil
}

// Query runs a parameterized XPath query and projects the matches; see
// query.Engine.Get.
func (d *Document) Query(q string, params map[string]string) (*ir.Node, error) {
	e, err := d.QueryEngine()
	if err != nil {
		return nil, err
	}
	return e.Get(q, params, nil)
}

// Namespaces lists the namespace declarations on the document element
// as prefix to URI pairs; the default namespace has prefix "".
func (d *Document) Namespaces() map[string]string {
	root := d.doc.Root()
	if root == nil {
		return nil
	}
	res := map[string]string{}
	for _, a := range root.Attr {
		switch {
		case a.Space == "xmlns":
			res[a.Key] = a.Value
		case a.Space == "" && a.Key == "xmlns":
			res[""] = a.Value
		}
	}
	return res
}

// SchemaLocationHint returns the schema path portion of the document
// element's xsi:schemaLocation-style attribute, "" when absent. The
// attribute value is a pair: target namespace, then location.
func (d *Document) SchemaLocationHint() string {
	root := d.doc.Root()
	if root == nil {
		return ""
	}
	for _, a := range root.Attr {
		if a.Key != "schemaLocation" {
			continue
		}
		parts := strings.Fields(a.Value)
		if len(parts) >= 2 {
			return parts[1]
		}
	}
	return ""
}

// SchemaValidate validates the document against the schema at path,
// delegating straight to the XSD engine. A nil return means valid; the
// engine's diagnostic list comes back as the error otherwise. The
// schema package layers message translation on top of this.
func (d *Document) SchemaValidate(path string) error {
	sch, err := xsd.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", path, err)
	}
	data, err := d.utf8Bytes()
	if err != nil {
		return err
	}
	return sch.Validate(bytes.NewReader(data))
}
