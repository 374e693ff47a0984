package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/fiscalxml/go-xmldoc/debug"
	"github.com/fiscalxml/go-xmldoc/ir"
)

// Engine evaluates parameterized XPath queries against one parsed
// document and projects matched subtrees back into structured values.
//
// When constructed without namespaces, namespace matching is disabled
// entirely: every bare tag step of a query is rewritten to a
// local-name() test so that prefix-less queries still match namespaced
// documents. When namespaces are given, each prefix is registered and
// matching is namespace-aware.
type Engine struct {
	doc        *xmlquery.Node
	namespaces map[string]string
}

// New builds an engine from raw XML text ([]byte or string) or an
// already-parsed node.
func New(source any, namespaces map[string]string) (*Engine, error) {
	e := &Engine{namespaces: namespaces}
	switch src := source.(type) {
	case []byte:
		return e.parse(src)
	case string:
		return e.parse([]byte(src))
	case *xmlquery.Node:
		e.doc = src
		return e, nil
	default:
		return nil, fmt.Errorf("%w: unsupported source %T", ErrInvalidXML, source)
	}
}

func (e *Engine) parse(data []byte) (*Engine, error) {
	n, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}
	e.doc = n
	return e, nil
}

// Document returns the engine's parsed document node.
func (e *Engine) Document() *xmlquery.Node {
	return e.doc
}

// GetNodes resolves the query's :name placeholders against params,
// evaluates it (relative to ctx when given), and returns the matched
// nodes in document order.
func (e *Engine) GetNodes(q string, params map[string]string, ctx *xmlquery.Node) ([]*xmlquery.Node, error) {
	resolved := Resolve(q, params)
	if len(e.namespaces) == 0 {
		resolved = rewriteLocalName(resolved)
	}
	if debug.Query() {
		debug.Printf("query: %s -> %s", q, resolved)
	}
	var (
		expr *xpath.Expr
		err  error
	)
	if len(e.namespaces) > 0 {
		expr, err = xpath.CompileWithNS(resolved, e.namespaces)
	} else {
		expr, err = xpath.Compile(resolved)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidXPath, q, err)
	}
	if ctx == nil {
		ctx = e.doc
	}
	return xmlquery.QuerySelectorAll(ctx, expr), nil
}

// Get projects the query's matches: nil for none, the projection of a
// single match, or an ordered array of projections.
func (e *Engine) Get(q string, params map[string]string, ctx *xmlquery.Node) (*ir.Node, error) {
	nodes, err := e.GetNodes(q, params, ctx)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return ProjectNode(nodes[0]), nil
	}
	arr := ir.Array()
	for _, n := range nodes {
		arr.Append(ProjectNode(n))
	}
	return arr, nil
}

// GetValues returns the text content of every match, no structural
// projection.
func (e *Engine) GetValues(q string, params map[string]string, ctx *xmlquery.Node) ([]string, error) {
	nodes, err := e.GetNodes(q, params, ctx)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(nodes))
	for i, n := range nodes {
		res[i] = strings.TrimSpace(n.InnerText())
	}
	return res, nil
}

// GetValue returns the text content of the first match, "" when none.
func (e *Engine) GetValue(q string, params map[string]string, ctx *xmlquery.Node) (string, error) {
	values, err := e.GetValues(q, params, ctx)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

// ProjectNode turns a matched node into a structured value: the text
// value for nodes without element children, otherwise an object of
// child projections with repeated tags aggregated into ordered arrays.
func ProjectNode(n *xmlquery.Node) *ir.Node {
	res := ir.Object()
	counts := map[string]int{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		tag := nodeTag(c)
		child := ProjectNode(c)
		switch counts[tag] {
		case 0:
			res.Set(tag, child)
		case 1:
			arr := ir.Array()
			arr.Append(ir.Get(res, tag))
			arr.Append(child)
			res.Set(tag, arr)
		default:
			ir.Get(res, tag).Append(child)
		}
		counts[tag]++
	}
	if len(counts) == 0 {
		return ir.FromString(strings.TrimSpace(n.InnerText()))
	}
	return res
}

func nodeTag(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// ElementPath returns the match's element-index path below the
// document element: at each level, the count of preceding element
// siblings. Non-element matches resolve to their nearest element
// ancestor; ok is false when there is none.
func (e *Engine) ElementPath(n *xmlquery.Node) ([]int, bool) {
	cur := n
	for cur != nil && cur.Type != xmlquery.ElementNode {
		cur = cur.Parent
	}
	if cur == nil {
		return nil, false
	}
	var steps []int
	for cur.Parent != nil && cur.Parent.Type == xmlquery.ElementNode {
		idx := 0
		for sib := cur.Parent.FirstChild; sib != nil && sib != cur; sib = sib.NextSibling {
			if sib.Type == xmlquery.ElementNode {
				idx++
			}
		}
		steps = append([]int{idx}, steps...)
		cur = cur.Parent
	}
	return steps, true
}
