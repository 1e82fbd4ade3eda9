// Package tree builds the navigable chart tree from flat element records
// and answers structural queries on it.
package tree

import (
	"math"
	"strings"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// ControlSuffix is appended to a node id to form its control element id
const ControlSuffix = "__control"

// Node is one navigable element of a chart. Trees are rebuilt wholesale on
// every change; nodes are never mutated after Build returns.
type Node struct {
	Element model.Element
	Label   string

	Parent   *Node
	Children []*Node

	// Left and Right form a ring over Parent.Children
	Left  *Node
	Right *Node
	// Up and Down point at the nearest-position child of Parent.Right and Parent.Left
	Up   *Node
	Down *Node

	// Descendants maps id to node, including the root itself. Only set on the root.
	Descendants map[string]*Node

	index int
}

// ID returns the element id
func (n *Node) ID() string {
	return n.Element.ID()
}

// Kind returns the element kind
func (n *Node) Kind() model.Kind {
	return n.Element.Kind()
}

// Position returns the sibling ordering value
func (n *Node) Position() float64 {
	return n.Element.Position()
}

// Type returns the symbol type, empty for untyped groups and the root
func (n *Node) Type() model.SymbolType {
	return n.Element.SymbolType()
}

// IsRoot reports whether n is the synthetic root
func (n *Node) IsRoot() bool {
	return n.Element.Kind() == model.KindRoot
}

// Index returns the 0-based index among siblings
func (n *Node) Index() int {
	return n.index
}

// Root follows parents to the top of the tree
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Lookup resolves an id through the root's descendant map
func (n *Node) Lookup(id string) (*Node, bool) {
	found, ok := n.Root().Descendants[id]
	return found, ok
}

// FindChild returns the child whose position is closest to position.
// Ties go to the lowest index. Nil when n has no children.
func (n *Node) FindChild(position float64) *Node {
	var best *Node
	bestDiff := math.Inf(1)
	for _, c := range n.Children {
		if diff := math.Abs(position - c.Position()); diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	return best
}

// ControlID is the id of the control element announcing n
func (n *Node) ControlID() string {
	return n.ID() + ControlSuffix
}

// NodeIDFromControl reverses ControlID
func NodeIDFromControl(controlID string) string {
	return strings.TrimSuffix(controlID, ControlSuffix)
}

// BoundingBox returns the layout box of n. The root box is the union of
// its children's boxes; children missing from the layout are skipped.
func (n *Node) BoundingBox(layout annotation.Layout) (model.Rect, bool) {
	if layout == nil {
		return model.Rect{}, false
	}
	if !n.IsRoot() {
		return layout.Rect(n.ID())
	}

	var box model.Rect
	found := false
	for _, c := range n.Children {
		r, ok := layout.Rect(c.ID())
		if !ok {
			continue
		}
		if !found {
			box, found = r, true
			continue
		}
		box = box.Union(r)
	}
	return box, found
}
