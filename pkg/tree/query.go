package tree

import (
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// Walk visits n and every node below it in pre-order
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindAll collects every node matching pred in pre-order: parents before
// children, children in sibling order
func FindAll(n *Node, pred func(*Node) bool) []*Node {
	var result []*Node
	Walk(n, func(c *Node) {
		if pred(c) {
			result = append(result, c)
		}
	})
	return result
}

// FindAllOnLevel collects the nodes exactly level edges below n
func FindAllOnLevel(n *Node, level int) []*Node {
	var result []*Node
	var visit func(c *Node, depth int)
	visit = func(c *Node, depth int) {
		if depth == level {
			result = append(result, c)
			return
		}
		for _, child := range c.Children {
			visit(child, depth+1)
		}
	}
	if n != nil && level >= 0 {
		visit(n, 0)
	}
	return result
}

// Depth counts the edges between n and the root
func Depth(n *Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Features summarizes the top-level interactive elements of a chart
type Features struct {
	// Count is 0 for non-interactive charts
	Count int
	Type  model.SymbolType
}

// Interactive reports whether the chart has anything to navigate
func (f Features) Interactive() bool {
	return f.Count > 0
}

// ChartFeatures finds the shallowest type-bearing nodes and returns their
// count and the type of the first one
func ChartFeatures(root *Node) Features {
	typed := FindAll(root, func(n *Node) bool {
		return n.Type() != ""
	})
	if len(typed) == 0 {
		return Features{}
	}

	minDepth := -1
	depths := make([]int, len(typed))
	for i, n := range typed {
		depths[i] = Depth(n)
		if minDepth < 0 || depths[i] < minDepth {
			minDepth = depths[i]
		}
	}

	var f Features
	for i, n := range typed {
		if depths[i] != minDepth {
			continue
		}
		if f.Count == 0 {
			f.Type = n.Type()
		}
		f.Count++
	}
	return f
}

// labelSource adapts a node list to fuzzy.Source
type labelSource []*Node

func (s labelSource) String(i int) string { return s[i].Label }
func (s labelSource) Len() int            { return len(s) }

// Search fuzzy-matches query against the labels of every node below root,
// best match first. An empty query matches nothing.
func Search(root *Node, query string) []*Node {
	if query == "" || root == nil {
		return nil
	}
	candidates := labelSource(FindAll(root, func(n *Node) bool {
		return !n.IsRoot()
	}))
	matches := fuzzy.FindFrom(query, candidates)
	out := make([]*Node, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index])
	}
	return out
}
