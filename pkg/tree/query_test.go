package tree

import (
	"strings"
	"testing"

	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

func TestFindAllPreOrder(t *testing.T) {
	root := Build(groupedFixture(), locale.EnUS, diag.Discard{})

	all := FindAll(root, func(n *Node) bool { return !n.IsRoot() })
	if got := strings.Join(ids(all), ","); got != "a,a0,a1,a2,b,b0,b1,b2,c,c0" {
		t.Errorf("Unexpected pre-order: %s", got)
	}

	groups := FindAll(root, func(n *Node) bool { return n.Kind() == model.KindGroup })
	if len(groups) != 3 {
		t.Errorf("Expected 3 groups, got %d", len(groups))
	}
}

func TestFindAllOnLevel(t *testing.T) {
	root := Build(groupedFixture(), locale.EnUS, diag.Discard{})

	tests := []struct {
		level int
		want  string
	}{
		{0, root.ID()},
		{1, "a,b,c"},
		{2, "a0,a1,a2,b0,b1,b2,c0"},
		{3, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := strings.Join(ids(FindAllOnLevel(root, tt.level)), ","); got != tt.want {
			t.Errorf("Level %d: expected %q, got %q", tt.level, tt.want, got)
		}
	}
}

func TestDepth(t *testing.T) {
	root := Build(groupedFixture(), locale.EnUS, diag.Discard{})
	b2, _ := root.Lookup("b2")
	b, _ := root.Lookup("b")

	if Depth(root) != 0 || Depth(b) != 1 || Depth(b2) != 2 {
		t.Errorf("Unexpected depths: root=%d b=%d b2=%d", Depth(root), Depth(b), Depth(b2))
	}
}

func TestScenarioChartFeaturesShallowestLevel(t *testing.T) {
	line := grp("line", "gB1", 0)
	line.Type = model.SymbolLine
	elements := []model.Element{
		grp("gA", "", 0),
		grp("gA1", "gA", 0), grp("gA2", "gA", 1),
		sym("p1", "gA1", 0), sym("p2", "gA1", 1),
		sym("p3", "gA2", 0), sym("p4", "gA2", 1),
		grp("gB", "", 1),
		grp("gB1", "gB", 0),
		line,
		sym("l1", "line", 0), sym("l2", "line", 1), sym("l3", "line", 2),
	}
	root := Build(elements, locale.EnUS, diag.Discard{})

	f := ChartFeatures(root)
	// four points and one line group sit at depth 3, the line's points are deeper
	if f.Count != 5 {
		t.Errorf("Expected 5 top-level elements, got %d", f.Count)
	}
	if f.Type != model.SymbolPoint {
		t.Errorf("Expected type of the first one, got %q", f.Type)
	}
	if !f.Interactive() {
		t.Error("Expected interactive chart")
	}
}

func TestChartFeaturesNonInteractive(t *testing.T) {
	root := Build([]model.Element{grp("g", "", 0)}, locale.EnUS, diag.Discard{})
	f := ChartFeatures(root)
	if f.Count != 0 || f.Type != "" || f.Interactive() {
		t.Errorf("Expected zero features, got %+v", f)
	}
}

func TestChartFeaturesFlatBars(t *testing.T) {
	bars := []model.Element{}
	for i, id := range []string{"x", "y", "z"} {
		bars = append(bars, model.Symbol{SymbolID: id, Type: model.SymbolBar, Text: id, Pos: float64(i)})
	}
	f := ChartFeatures(Build(bars, locale.EnUS, diag.Discard{}))
	if f.Count != 3 || f.Type != model.SymbolBar {
		t.Errorf("Expected 3 bars, got %+v", f)
	}
}

func TestSearch(t *testing.T) {
	elements := []model.Element{
		model.Symbol{SymbolID: "s1", Type: model.SymbolBar, Text: "Apples", Pos: 0},
		model.Symbol{SymbolID: "s2", Type: model.SymbolBar, Text: "Pears", Pos: 1},
		model.Symbol{SymbolID: "s3", Type: model.SymbolBar, Text: "Pineapples", Pos: 2},
	}
	root := Build(elements, locale.EnUS, diag.Discard{})

	got := Search(root, "apples")
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	for _, n := range got {
		if n.IsRoot() {
			t.Error("Search must not return the root")
		}
	}
	if Search(root, "") != nil {
		t.Error("Expected no matches for empty query")
	}
	if len(Search(root, "zzz")) != 0 {
		t.Error("Expected no matches for unrelated query")
	}
}
