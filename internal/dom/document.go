package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/petrarca/component-resolver/internal/types"
)

// Document is a parsed, read-only DOM snapshot.
// Element wrappers are built once at parse time, so the same markup node always
// yields the same *Element and the document is safe for concurrent readers.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
	order    []*Element
}

// Parse parses an HTML snapshot
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return newDocument(root), nil
}

// ParseString parses an HTML snapshot held in memory
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func newDocument(root *html.Node) *Document {
	doc := &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			el := &Element{node: n, doc: doc}
			doc.elements[n] = el
			doc.order = append(doc.order, el)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, el := range doc.order {
		el.index()
	}
	return doc
}

// Root returns the document element (<html>), or nil for an empty document
func (d *Document) Root() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return d.elements[c]
		}
	}
	return nil
}

// Len returns the number of elements in the document
func (d *Document) Len() int {
	return len(d.order)
}

// Select returns every element matching the CSS selector, in document order
func (d *Document) Select(selector string) ([]*Element, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	nodes := cascadia.QueryAll(d.root, sel)
	result := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if el, ok := d.elements[n]; ok {
			result = append(result, el)
		}
	}
	return result, nil
}

// First returns the first element matching the CSS selector
func (d *Document) First(selector string) (*Element, error) {
	matches, err := d.Select(selector)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no element matches selector %q", selector)
	}
	return matches[0], nil
}

// Wrap returns the element wrapper of a markup node belonging to this document
func (d *Document) Wrap(n *html.Node) (*Element, bool) {
	el, ok := d.elements[n]
	return el, ok
}

var _ types.Element = (*Element)(nil)
