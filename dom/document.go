package dom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoRootElement is returned when a parse tree contains no element node at
// all, i.e. there is nothing to match selectors against.
var ErrNoRootElement = errors.New("document has no root element")

// NodeKey is a stable 64-bit identity fingerprint for one element of one
// document. Keys are derived from node identity (the element's position in
// preorder), never from node content, and are injective over the lifetime of
// a document: a collision is a defect of the key scheme, not an expected
// condition, and is therefore fatal.
type NodeKey uint64

func (k NodeKey) String() string {
	return fmt.Sprintf("element_%d", uint64(k))
}

// Document wraps an HTML parse tree and owns the identity-key table for its
// elements, together with an interning table for class lists. Both tables are
// scoped to this document; there is no process-global state.
type Document struct {
	root     *html.Node // the document node handed to NewDocument
	rootElem *html.Node // topmost element node, usually <html>
	keys     map[*html.Node]NodeKey
	nodes    map[NodeKey]*html.Node
	classes  map[string][]string // raw class attribute -> split class list
}

// NewDocument builds the adapter for a parse tree. Every element node
// reachable from root is assigned an identity key in preorder.
//
// NewDocument panics if two elements receive the same key; by the contract
// of NodeKey this cannot happen for a sane key scheme, and continuing with an
// ambiguous key table would corrupt every downstream result.
func NewDocument(root *html.Node) (*Document, error) {
	d := &Document{
		root:    root,
		keys:    make(map[*html.Node]NodeKey),
		nodes:   make(map[NodeKey]*html.Node),
		classes: make(map[string][]string),
	}
	ordinal := uint64(0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if d.rootElem == nil {
				d.rootElem = n
			}
			key := keyForOrdinal(ordinal)
			if prev, ok := d.nodes[key]; ok {
				panic(fmt.Sprintf("identity key collision: %s assigned to <%s> and <%s>",
					key, prev.Data, n.Data))
			}
			d.keys[n] = key
			d.nodes[key] = n
			ordinal++
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(root)
	if d.rootElem == nil {
		return nil, ErrNoRootElement
	}
	tracer().Debugf("document adapter covers %d elements", len(d.keys))
	return d, nil
}

// Parse reads and parses an HTML document and wraps it into a Document.
func Parse(r io.Reader) (*Document, error) {
	tree, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(tree)
}

// keyForOrdinal hashes a preorder ordinal into a NodeKey. FNV-1a over the
// 8 ordinal bytes; injective in practice for any realistic document size.
func keyForOrdinal(ordinal uint64) NodeKey {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], ordinal)
	h := fnv.New64a()
	h.Write(buf[:])
	return NodeKey(h.Sum64())
}

// Root returns the handle for the topmost element of the document.
func (d *Document) Root() ElementRef {
	return ElementRef{doc: d, n: d.rootElem}
}

// NumElements returns the number of elements covered by the key table.
func (d *Document) NumElements() int {
	return len(d.keys)
}

// Element resolves an identity key back to a handle.
func (d *Document) Element(key NodeKey) (ElementRef, bool) {
	n, ok := d.nodes[key]
	if !ok {
		return ElementRef{}, false
	}
	return ElementRef{doc: d, n: n}, true
}

// classList returns the interned class list for a raw class attribute value.
func (d *Document) classList(raw string) []string {
	if list, ok := d.classes[raw]; ok {
		return list
	}
	list := strings.Fields(raw)
	d.classes[raw] = list
	return list
}
