package tree

import (
	"fmt"
	"sort"

	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// Build assembles the navigable tree from flat element records.
//
// Axes and focus markers are ignored. Records naming a parent id that is not
// part of the batch are attached to the root. Records that stay unreachable
// (parentId cycles) and repeated ids are dropped. Every such case is reported
// to reporter; Build itself never fails.
func Build(elements []model.Element, labeler locale.Labeler, reporter diag.Reporter) *Node {
	reporter = diag.Or(reporter)
	if labeler == nil {
		labeler = locale.Default()
	}

	root := &Node{
		Element:     model.Root{RootID: model.JoinID("root", model.UniqueID())},
		Descendants: make(map[string]*Node),
	}
	root.Descendants[root.ID()] = root

	// Collect tree records, first occurrence of an id wins
	pool := make([]*Node, 0, len(elements))
	known := make(map[string]bool, len(elements))
	for _, e := range elements {
		if e == nil || !e.Kind().IsTreeKind() {
			continue
		}
		if e.ID() == "" {
			reporter.Warn(
				fmt.Sprintf("The %s labelled %q has no id and is ignored.", e.Kind(), e.Label()),
				"Annotate the element through the annotators or pass an `id`.",
			)
			continue
		}
		if known[e.ID()] {
			reporter.Warn(
				fmt.Sprintf("The id #%s is used by more than one element.", e.ID()),
				"Make sure every group and symbol has a unique `id`.",
			)
			continue
		}
		known[e.ID()] = true
		pool = append(pool, &Node{Element: e})
	}

	// Build parent -> children map keyed by parent node; dangling parents
	// fall back to the root
	byID := make(map[string]*Node, len(pool))
	for _, n := range pool {
		byID[n.ID()] = n
	}
	childrenMap := make(map[*Node][]*Node)
	for _, n := range pool {
		parentID := n.Element.ParentID()
		parent := root
		switch {
		case parentID == "" || parentID == root.ID():
		case byID[parentID] != nil:
			parent = byID[parentID]
		default:
			reporter.Warn(
				fmt.Sprintf("No element with id #%s exists.", parentID),
				fmt.Sprintf("Make sure to pass %q as `id` to a group or symbol.", parentID),
			)
		}
		childrenMap[parent] = append(childrenMap[parent], n)
	}

	// BFS from the root
	placed := 0
	queue := []*Node{root}
	for len(queue) > 0 && placed < len(pool) {
		current := queue[0]
		queue = queue[1:]

		children := childrenMap[current]
		if len(children) == 0 {
			continue
		}
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].Position() < children[j].Position()
		})

		count := len(children)
		for i, child := range children {
			child.Parent = current
			child.index = i
			child.Left = children[(i-1+count)%count]
			child.Right = children[(i+1)%count]
			root.Descendants[child.ID()] = child
			queue = append(queue, child)
		}
		current.Children = children
		placed += count
	}

	if placed < len(pool) {
		for _, n := range pool {
			if n.Parent == nil {
				reporter.Warn(
					fmt.Sprintf("The %s labelled %q is not reachable from the chart.", n.Kind(), n.Element.Label()),
					fmt.Sprintf("Check the parent chain of #%s for cycles.", n.ID()),
				)
			}
		}
	}

	Walk(root, func(n *Node) {
		link(n, reporter)
		n.Label = labeler.Label(facts(n))
	})

	return root
}

// link checks structural expectations and sets up and down
func link(n *Node, reporter diag.Reporter) {
	switch {
	case n.Kind() == model.KindGroup && len(n.Children) == 0:
		reporter.Warn(
			fmt.Sprintf("The group labelled %q is empty.", n.Element.Label()),
			"Either remove the group or add at least one symbol or group as child.",
		)
	case n.Kind() == model.KindSymbol && len(n.Children) > 0:
		reporter.Warn(
			fmt.Sprintf("The symbol labelled %q has children.", n.Element.Label()),
			"Use a group with a symbol type instead.",
		)
	}

	if n.Parent == nil {
		return
	}
	position := n.Position()
	// an only child is its own ring neighbour and has no parallel group
	if p := n.Parent.Right; p != nil && p != n.Parent {
		n.Up = p.FindChild(position)
	}
	if p := n.Parent.Left; p != nil && p != n.Parent {
		n.Down = p.FindChild(position)
	}
}

func facts(n *Node) locale.Facts {
	f := locale.Facts{
		Kind:       n.Kind(),
		Label:      n.Element.Label(),
		Type:       n.Type(),
		Highlight:  n.Element.Highlight(),
		Members:    len(n.Children),
		MemberType: memberType(n),
	}
	if n.Parent != nil {
		f.Position = n.index + 1
		f.Siblings = len(n.Parent.Children)
	}
	return f
}

// memberType is locale.MemberGroup when the first child is an untyped group,
// otherwise the first child's type. Empty when n has no children.
func memberType(n *Node) string {
	if len(n.Children) == 0 {
		return ""
	}
	first := n.Children[0]
	if first.Kind() == model.KindGroup && first.Type() == "" {
		return locale.MemberGroup
	}
	return string(first.Type())
}
