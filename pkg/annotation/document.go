// Package annotation is a headless stand-in for the host document: a tree
// of nodes carrying friendly-* attributes, text, and layout boxes.
//
// Every structural write is recorded and published to subscribers as one
// Batch per Commit, which is what drives live tree rebuilds.
package annotation

import (
	"fmt"
	"sync"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// svgTags are element names that live in the SVG namespace
var svgTags = map[string]bool{
	"svg": true, "g": true, "rect": true, "path": true, "circle": true,
	"ellipse": true, "line": true, "polyline": true, "polygon": true,
	"text": true, "tspan": true, "foreignObject": true,
}

// Layout resolves the layout box of a node by id.
// A missing node yields false and must be skipped by callers.
type Layout interface {
	Rect(id string) (model.Rect, bool)
}

// LayoutFunc adapts a function to Layout
type LayoutFunc func(id string) (model.Rect, bool)

func (f LayoutFunc) Rect(id string) (model.Rect, bool) { return f(id) }

// Node is a single element of a Document
type Node struct {
	doc      *Document
	id       string
	tag      string
	svg      bool
	parent   *Node
	children []*Node
	attrs    map[string]string
	attrKeys []string
	text     string
	bounds   *model.Rect
}

// Document holds the node tree and its pending mutations
type Document struct {
	mu      sync.RWMutex
	body    *Node
	byID    map[string]*Node
	pending Batch
	subs    map[int]*Subscription
	nextSub int
}

// NewDocument creates an empty document with a body node
func NewDocument() *Document {
	d := &Document{
		byID: make(map[string]*Node),
		subs: make(map[int]*Subscription),
	}
	d.body = &Node{doc: d, tag: "body", attrs: make(map[string]string)}
	return d
}

// Body returns the top-level node
func (d *Document) Body() *Node {
	return d.body
}

// Append creates a node as last child of parent (the body when nil)
func (d *Document) Append(parent *Node, tag, id string) (*Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if parent == nil {
		parent = d.body
	}
	if parent.doc != d {
		return nil, fmt.Errorf("parent node belongs to another document")
	}
	if id != "" {
		if _, exists := d.byID[id]; exists {
			return nil, fmt.Errorf("duplicate node id: %s", id)
		}
	}

	n := &Node{
		doc:    d,
		id:     id,
		tag:    tag,
		svg:    svgTags[tag] || parent.svg,
		parent: parent,
		attrs:  make(map[string]string),
	}
	parent.children = append(parent.children, n)
	if id != "" {
		d.byID[id] = n
	}
	return n, nil
}

// MustAppend is Append for fixtures; it panics on error
func (d *Document) MustAppend(parent *Node, tag, id string) *Node {
	n, err := d.Append(parent, tag, id)
	if err != nil {
		panic(err)
	}
	return n
}

// Remove detaches n and its subtree. Annotated nodes in the subtree are
// recorded as removals.
func (d *Document) Remove(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n == nil || n == d.body || n.parent == nil {
		return
	}
	walkNode(n, func(c *Node) {
		if kind := model.Kind(c.attrs[KindAttr]); kind != "" {
			d.pending = append(d.pending, Mutation{Type: MutationRemoved, NodeID: c.id, OldKind: kind})
		}
		if c.id != "" && d.byID[c.id] == c {
			delete(d.byID, c.id)
		}
	})
	n.parent.children = removeChild(n.parent.children, n)
	n.parent = nil
}

// Move reparents n under parent (the body when nil)
func (d *Document) Move(n, parent *Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if parent == nil {
		parent = d.body
	}
	if n == nil || n == d.body {
		return fmt.Errorf("cannot move the document body")
	}
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return fmt.Errorf("cannot move node %q into its own subtree", n.id)
		}
	}
	if n.parent != nil {
		n.parent.children = removeChild(n.parent.children, n)
	}
	n.parent = parent
	parent.children = append(parent.children, n)

	walkNode(n, func(c *Node) {
		if kind := model.Kind(c.attrs[KindAttr]); kind != "" {
			d.pending = append(d.pending, Mutation{Type: MutationMoved, NodeID: c.id, OldKind: kind, NewKind: kind})
		}
	})
	return nil
}

// ByID looks a node up by its id
func (d *Document) ByID(id string) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.byID[id]
	return n, ok
}

// SetID changes the id of n, keeping the index current
func (d *Document) SetID(n *Node, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n.id == id {
		return nil
	}
	if other, exists := d.byID[id]; exists && other != n {
		return fmt.Errorf("duplicate node id: %s", id)
	}
	if n.id != "" && d.byID[n.id] == n {
		delete(d.byID, n.id)
	}
	n.id = id
	if id != "" {
		d.byID[id] = n
	}
	return nil
}

// SetText replaces the text content of n
func (d *Document) SetText(n *Node, text string) {
	d.mu.Lock()
	n.text = text
	d.mu.Unlock()
}

// SetBounds sets the layout box of n
func (d *Document) SetBounds(n *Node, r model.Rect) {
	d.mu.Lock()
	rect := r
	n.bounds = &rect
	d.mu.Unlock()
}

// ClearBounds marks n as not laid out
func (d *Document) ClearBounds(n *Node) {
	d.mu.Lock()
	n.bounds = nil
	d.mu.Unlock()
}

// Rect implements Layout over node bounds
func (d *Document) Rect(id string) (model.Rect, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, ok := d.byID[id]
	if !ok || n.bounds == nil {
		return model.Rect{}, false
	}
	return *n.bounds, true
}

// ID returns the node id
func (n *Node) ID() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.id
}

// Tag returns the element name
func (n *Node) Tag() string {
	return n.tag
}

// IsSVG reports whether the node lives in the SVG namespace
func (n *Node) IsSVG() bool {
	return n.svg
}

// Text returns the text content of n and its descendants
func (n *Node) Text() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return textContent(n)
}

// Parent returns the parent node, nil for the body or detached nodes
func (n *Node) Parent() *Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.parent
}

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func textContent(n *Node) string {
	s := n.text
	for _, c := range n.children {
		s += textContent(c)
	}
	return s
}

func walkNode(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		walkNode(c, fn)
	}
}

// walkDescendants visits every node below n in document order, excluding n
func walkDescendants(n *Node, fn func(*Node)) {
	for _, c := range n.children {
		walkNode(c, fn)
	}
}

func removeChild(children []*Node, n *Node) []*Node {
	for i, c := range children {
		if c == n {
			return append(children[:i:i], children[i+1:]...)
		}
	}
	return children
}

// Descendants returns every node below n in document order
func (n *Node) Descendants() []*Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	var out []*Node
	walkDescendants(n, func(c *Node) {
		out = append(out, c)
	})
	return out
}

// Document returns the document n belongs to
func (n *Node) Document() *Document {
	return n.doc
}
