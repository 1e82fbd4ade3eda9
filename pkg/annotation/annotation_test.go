package annotation

import (
	"testing"

	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

func TestReadDataDecodesJSON(t *testing.T) {
	doc := NewDocument()
	n := doc.MustAppend(nil, "g", "s1")
	doc.SetAttr(n, "friendly-position", "3")
	doc.SetAttr(n, "friendly-ticks", `["a","b"]`)
	doc.SetAttr(n, "friendly-label", "Revenue {2021")
	doc.SetAttr(n, "friendly-empty", "")
	doc.SetAttr(n, "class", "bar")

	data := ReadData(n)

	if data["position"] != float64(3) {
		t.Errorf("Expected position 3, got %#v", data["position"])
	}
	ticks, ok := data["ticks"].([]any)
	if !ok || len(ticks) != 2 {
		t.Errorf("Expected 2 ticks, got %#v", data["ticks"])
	}
	if data["label"] != "Revenue {2021" {
		t.Errorf("Expected invalid JSON to stay raw, got %#v", data["label"])
	}
	if _, ok := data["empty"]; ok {
		t.Error("Empty attribute values should be skipped")
	}
	if _, ok := data["class"]; ok {
		t.Error("Attributes outside the namespace should be skipped")
	}
}

func TestWriteDataThenDecode(t *testing.T) {
	doc := NewDocument()
	n := doc.MustAppend(nil, "rect", "bar-1")

	err := doc.WriteData(n, map[string]any{
		"element":  "symbol",
		"id":       "bar-1",
		"type":     "bar",
		"label":    "Apples",
		"parentId": "g1",
		"position": 2,
	})
	if err != nil {
		t.Fatalf("WriteData failed: %v", err)
	}

	e, err := Decode(n)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	s, ok := e.(model.Symbol)
	if !ok {
		t.Fatalf("Expected model.Symbol, got %T", e)
	}
	if s.SymbolID != "bar-1" || s.Type != model.SymbolBar || s.Parent != "g1" || s.Pos != 2 {
		t.Errorf("Unexpected symbol: %+v", s)
	}

	// the kind marker is written last, so it is the final pending mutation
	if doc.Pending() != 1 {
		t.Errorf("Expected 1 pending mutation, got %d", doc.Pending())
	}
}

func TestWriteDataKeepsJSONLikeStrings(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"number", "1.50"},
		{"integer id", "1.0"},
		{"null", "null"},
		{"bool", "true"},
		{"quoted", `"Apples"`},
		{"array", `["a"]`},
		{"plain", "Apples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument()
			n := doc.MustAppend(nil, "g", "")
			if err := doc.WriteData(n, map[string]any{"element": "group", "id": tt.value, "label": tt.value}); err != nil {
				t.Fatalf("WriteData failed: %v", err)
			}
			e, err := Decode(n)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if e.ID() != tt.value || e.Label() != tt.value {
				t.Errorf("Expected id and label %q, got %q and %q", tt.value, e.ID(), e.Label())
			}
		})
	}

	doc := NewDocument()
	n := doc.MustAppend(nil, "g", "")
	if err := doc.WriteData(n, map[string]any{"label": "Apples"}); err != nil {
		t.Fatal(err)
	}
	if raw, _ := n.Attr("friendly-label"); raw != "Apples" {
		t.Errorf("Expected plain text stored raw, got %q", raw)
	}
}

func TestDecodeRejectsUnannotated(t *testing.T) {
	doc := NewDocument()
	n := doc.MustAppend(nil, "div", "plain")
	if _, err := Decode(n); err == nil {
		t.Error("Expected error for unannotated node")
	}
	doc.SetAttr(n, KindAttr, "focus")
	if _, err := Decode(n); err == nil {
		t.Error("Expected error for focus marker")
	}
}

func TestCommitProducesOneBatch(t *testing.T) {
	doc := NewDocument()
	sub := doc.Subscribe()
	defer sub.Close()

	for _, id := range []string{"a", "b", "c"} {
		n := doc.MustAppend(nil, "circle", id)
		doc.SetAttr(n, KindAttr, "symbol")
	}
	if !doc.Commit() {
		t.Fatal("Expected Commit to publish")
	}
	if doc.Commit() {
		t.Error("Second Commit with nothing pending should return false")
	}

	<-sub.Ready()
	batches := sub.Drain()
	if len(batches) != 1 {
		t.Fatalf("Expected 1 batch, got %d", len(batches))
	}
	if len(batches[0]) != 3 {
		t.Errorf("Expected 3 mutations, got %d", len(batches[0]))
	}
	for _, m := range batches[0] {
		if !m.Touches(model.KindSymbol) {
			t.Errorf("Expected symbol mutation, got %+v", m)
		}
	}
}

func TestClosedSubscriptionReceivesNothing(t *testing.T) {
	doc := NewDocument()
	sub := doc.Subscribe()
	sub.Close()
	sub.Close()

	n := doc.MustAppend(nil, "g", "g1")
	doc.SetAttr(n, KindAttr, "group")
	doc.Commit()

	if got := sub.Drain(); len(got) != 0 {
		t.Errorf("Expected no batches after Close, got %d", len(got))
	}
}

func TestRemoveAndMoveRecordMutations(t *testing.T) {
	doc := NewDocument()
	g := doc.MustAppend(nil, "g", "g1")
	doc.SetAttr(g, KindAttr, "group")
	s := doc.MustAppend(g, "circle", "s1")
	doc.SetAttr(s, KindAttr, "symbol")
	other := doc.MustAppend(nil, "g", "other")
	doc.Discard()

	if err := doc.Move(s, other); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := doc.Move(other, other); err == nil {
		t.Error("Expected error moving a node into itself")
	}
	doc.Remove(g)

	sub := doc.Subscribe()
	defer sub.Close()
	doc.Commit()
	<-sub.Ready()
	batch := sub.Drain()[0]

	if len(batch) != 2 {
		t.Fatalf("Expected 2 mutations, got %d", len(batch))
	}
	if batch[0].Type != MutationMoved || batch[0].NodeID != "s1" {
		t.Errorf("Expected move of s1, got %+v", batch[0])
	}
	if batch[1].Type != MutationRemoved || batch[1].NodeID != "g1" {
		t.Errorf("Expected removal of g1, got %+v", batch[1])
	}
	if _, ok := doc.ByID("g1"); ok {
		t.Error("Removed node should not be found by id")
	}
}

func TestClosestSkipsSelf(t *testing.T) {
	doc := NewDocument()
	outer := doc.MustAppend(nil, "g", "outer")
	doc.SetAttr(outer, KindAttr, "group")
	inner := doc.MustAppend(outer, "g", "inner")
	doc.SetAttr(inner, KindAttr, "group")
	leaf := doc.MustAppend(inner, "circle", "leaf")

	if got := Closest(leaf, model.KindGroup); got != inner {
		t.Errorf("Expected inner, got %v", got)
	}
	if got := Closest(inner, model.KindGroup); got != outer {
		t.Errorf("Expected outer, got %v", got)
	}
	if got := Closest(outer, model.KindGroup); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestRectAndSVG(t *testing.T) {
	doc := NewDocument()
	svg := doc.MustAppend(nil, "svg", "chart")
	rect := doc.MustAppend(svg, "rect", "bar")
	div := doc.MustAppend(nil, "div", "host")

	if !rect.IsSVG() || div.IsSVG() {
		t.Error("SVG namespace not inherited correctly")
	}

	if _, ok := doc.Rect("bar"); ok {
		t.Error("Expected no rect before layout")
	}
	doc.SetBounds(rect, model.Rect{Top: 1, Left: 2, Width: 3, Height: 4})
	r, ok := doc.Rect("bar")
	if !ok || r.Width != 3 {
		t.Errorf("Expected laid out rect, got %+v %v", r, ok)
	}
	doc.ClearBounds(rect)
	if _, ok := doc.Rect("bar"); ok {
		t.Error("Expected no rect after ClearBounds")
	}
	if _, ok := doc.Rect("missing"); ok {
		t.Error("Expected no rect for missing id")
	}
}

func TestIsSelector(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#title", true},
		{".subtitle", true},
		{"[data-x]", true},
		{":first-child", true},
		{"  #padded  ", true},
		{"#", false},
		{"Revenue 2021", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSelector(tt.in); got != tt.want {
			t.Errorf("IsSelector(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuerySelector(t *testing.T) {
	doc := NewDocument()
	host := doc.MustAppend(nil, "div", "host")
	h := doc.MustAppend(host, "h2", "title")
	doc.SetText(h, "Sales")
	p := doc.MustAppend(host, "p", "")
	doc.SetAttr(p, "class", "note sub")
	doc.SetText(p, "by month")
	ticks := doc.MustAppend(host, "g", "ticks")
	for _, label := range []string{"Jan", "Feb"} {
		tick := doc.MustAppend(ticks, "text", "")
		doc.SetAttr(tick, "class", "tick")
		doc.SetText(tick, label)
	}

	tests := []struct {
		name     string
		selector string
		want     int
	}{
		{"id", "#title", 1},
		{"class", ".sub", 1},
		{"tag and class", "p.note", 1},
		{"attribute", "[class]", 3},
		{"attribute value", `[class="tick"]`, 2},
		{"descendant", "#ticks .tick", 2},
		{"no match", "#nope", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuerySelectorAll(host, tt.selector)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Expected %d matches, got %d", tt.want, len(got))
			}
		})
	}

	if _, err := QuerySelector(host, "a:hover"); err == nil {
		t.Error("Expected error for pseudo-class")
	}
	if _, err := QuerySelector(host, "[unterminated"); err == nil {
		t.Error("Expected error for unterminated attribute")
	}
}

func TestResolveText(t *testing.T) {
	doc := NewDocument()
	host := doc.MustAppend(nil, "div", "host")
	h := doc.MustAppend(host, "h2", "title")
	doc.SetText(h, "  Sales  ")

	var rec diag.Recorder
	if got, _ := ResolveText(host, "Plain", &rec); got != "Plain" {
		t.Errorf("Expected literal text, got %q", got)
	}
	if got, n := ResolveText(host, "#title", &rec); got != "Sales" || n != h {
		t.Errorf("Expected resolved text, got %q", got)
	}
	if got, _ := ResolveText(host, "#missing", &rec); got != "" {
		t.Errorf("Expected empty text, got %q", got)
	}
	if rec.Len() != 1 {
		t.Fatalf("Expected 1 warning, got %d", rec.Len())
	}
	if w := rec.Warnings()[0]; w.Message != "No element found by selecting `#missing`." {
		t.Errorf("Unexpected warning: %q", w.Message)
	}
}
