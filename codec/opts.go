package codec

import "github.com/beevik/etree"

// Namespace qualifies the elements created by Encode. The root element
// additionally receives the matching xmlns declaration.
type Namespace struct {
	URI    string
	Prefix string
}

type encState struct {
	doc    *etree.Document
	parent *etree.Element
	ns     *Namespace
}

type EncodeOption func(*encState)

func WithNamespace(uri, prefix string) EncodeOption {
	return func(es *encState) { es.ns = &Namespace{URI: uri, Prefix: prefix} }
}

// WithParent makes Encode append under an existing element instead of
// starting at the document root.
func WithParent(el *etree.Element) EncodeOption {
	return func(es *encState) { es.parent = el }
}

// WithDocument makes Encode build into an existing document instead of
// creating a fresh one.
func WithDocument(doc *etree.Document) EncodeOption {
	return func(es *encState) { es.doc = doc }
}
