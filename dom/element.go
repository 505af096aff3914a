package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ElementRef is an opaque, copyable handle to one element of a Document.
// The zero value is invalid; handles are obtained from Document.Root,
// Document.Element, or navigation methods.
type ElementRef struct {
	doc *Document
	n   *html.Node
}

// Equal reports whether two handles denote the same tree node.
func (e ElementRef) Equal(other ElementRef) bool {
	return e.n == other.n
}

// Valid reports whether the handle references an element.
func (e ElementRef) Valid() bool {
	return e.n != nil
}

// Key returns the element's identity key.
//
// Key panics for a handle that is not covered by its document's key table:
// such a handle can only be produced by mixing handles from different
// documents, which is a programming error.
func (e ElementRef) Key() NodeKey {
	key, ok := e.doc.keys[e.n]
	if !ok {
		panic(fmt.Sprintf("element <%s> is not part of this document", e.n.Data))
	}
	return key
}

// HTMLNode exposes the underlying parse-tree node, e.g. for handing the
// element to a selector engine.
func (e ElementRef) HTMLNode() *html.Node {
	return e.n
}

// TagName returns the element's tag name (lower-cased by the parser).
func (e ElementRef) TagName() string {
	return e.n.Data
}

// Attr looks up an attribute value by key.
func (e ElementRef) Attr(key string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs returns the element's attributes in source order.
func (e ElementRef) Attrs() []html.Attribute {
	return e.n.Attr
}

// ID returns the value of the id attribute, or "".
func (e ElementRef) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Classes returns the element's class list. The list is interned per raw
// attribute value in the document's interning table, so repeated lookups on
// elements with identical class attributes share one slice.
func (e ElementRef) Classes() []string {
	raw, ok := e.Attr("class")
	if !ok {
		return nil
	}
	return e.doc.classList(raw)
}

// ParentElement returns the parent handle. ok is false for the topmost
// element (its parse-tree parent is the document node, not an element).
func (e ElementRef) ParentElement() (ElementRef, bool) {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return ElementRef{}, false
	}
	return ElementRef{doc: e.doc, n: p}, true
}

// ChildElements returns the element children in document order. Non-element
// nodes (text, comments) are skipped; every traversal strategy sees the same
// child sequence.
func (e ElementRef) ChildElements() []ElementRef {
	var children []ElementRef
	for ch := e.n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			children = append(children, ElementRef{doc: e.doc, n: ch})
		}
	}
	return children
}

// StartTag renders the serialized open tag of the element, attributes in
// source order. Used to identify elements in reports and error messages.
func (e ElementRef) StartTag() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(e.n.Data)
	for _, a := range e.n.Attr {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
	}
	sb.WriteByte('>')
	return sb.String()
}

func (e ElementRef) String() string {
	if e.n == nil {
		return "<nil element>"
	}
	return e.StartTag()
}
