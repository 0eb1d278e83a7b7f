package dom

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/petrarca/component-resolver/internal/types"
)

// Element adapts an element node of a parsed snapshot to types.Element
type Element struct {
	node    *html.Node
	doc     *Document
	classes []string
	attrs   []types.Attribute

	textOnce sync.Once
	text     string
}

func (e *Element) index() {
	for _, a := range e.node.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		e.attrs = append(e.attrs, types.Attribute{Key: key, Value: a.Val})
		if key == "class" {
			e.classes = strings.Fields(a.Val)
		}
	}
}

// TagName returns the lower-case tag name
func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

// ID returns the id attribute
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Classes returns the class tokens
func (e *Element) Classes() []string {
	return e.classes
}

// Attr returns an attribute value by key
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attributes returns all attributes
func (e *Element) Attributes() []types.Attribute {
	return e.attrs
}

// Text returns the collapsed text content
func (e *Element) Text() string {
	e.textOnce.Do(func() {
		e.text = collectText(e.node)
	})
	return e.text
}

// Parent returns the parent element or nil at the document root
func (e *Element) Parent() types.Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if el, ok := e.doc.elements[p]; ok {
			return el
		}
	}
	return nil
}

// Node returns the underlying markup node
func (e *Element) Node() *html.Node {
	return e.node
}

func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
