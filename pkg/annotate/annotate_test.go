package annotate

import (
	"strings"
	"testing"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

func TestSymbolGeneratesID(t *testing.T) {
	doc := annotation.NewDocument()
	n := doc.MustAppend(nil, "rect", "")
	var rec diag.Recorder

	if !New(&rec).Symbol(n, SymbolOptions{Type: model.SymbolBar, Label: "Apples", Position: 1}) {
		t.Fatal("Expected symbol to be annotated")
	}
	if !strings.HasPrefix(n.ID(), "friendly-symbol-") {
		t.Errorf("Expected generated id, got %q", n.ID())
	}
	if rec.Len() != 0 {
		t.Errorf("Expected no warnings, got %v", rec.Warnings())
	}

	e, err := annotation.Decode(n)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	s := e.(model.Symbol)
	if s.SymbolID != n.ID() || s.Text != "Apples" || s.Pos != 1 || s.Type != model.SymbolBar {
		t.Errorf("Unexpected record %+v", s)
	}
}

func TestOverwrittenIDWarns(t *testing.T) {
	doc := annotation.NewDocument()
	n := doc.MustAppend(nil, "g", "old")
	var rec diag.Recorder

	New(&rec).Group(n, GroupOptions{ID: "new", Label: "2021"})

	if n.ID() != "new" {
		t.Errorf("Expected id new, got %q", n.ID())
	}
	if rec.Len() != 1 {
		t.Fatalf("Expected 1 warning, got %d", rec.Len())
	}
	w := rec.Warnings()[0]
	if w.Message != "The group's id `old` is overwritten with `new`." {
		t.Errorf("Unexpected warning %q", w.Message)
	}
	if w.Hint != "If you want to keep `old`, pass it to the group as `id`." {
		t.Errorf("Unexpected hint %q", w.Hint)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	doc := annotation.NewDocument()
	doc.MustAppend(nil, "g", "taken")
	n := doc.MustAppend(nil, "g", "")
	var rec diag.Recorder

	if New(&rec).Group(n, GroupOptions{ID: "taken", Label: "x"}) {
		t.Error("Expected annotation to fail on a duplicate id")
	}
	if _, ok := n.Attr(annotation.KindAttr); ok {
		t.Error("Node must stay unannotated")
	}
}

func TestInvalidOptionsSkipped(t *testing.T) {
	tests := []struct {
		name string
		run  func(a *Annotator, n *annotation.Node) bool
	}{
		{"symbol without type", func(a *Annotator, n *annotation.Node) bool {
			return a.Symbol(n, SymbolOptions{Label: "x"})
		}},
		{"symbol with bad type", func(a *Annotator, n *annotation.Node) bool {
			return a.Symbol(n, SymbolOptions{Label: "x", Type: "pie"})
		}},
		{"group without label", func(a *Annotator, n *annotation.Node) bool {
			return a.Group(n, GroupOptions{})
		}},
		{"axis with bad direction", func(a *Annotator, n *annotation.Node) bool {
			return a.Axis(n, AxisOptions{Label: "x", Direction: "z"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := annotation.NewDocument()
			n := doc.MustAppend(nil, "g", "")
			var rec diag.Recorder

			if tt.run(New(&rec), n) {
				t.Error("Expected annotation to be skipped")
			}
			if rec.Len() != 1 || !strings.Contains(rec.Warnings()[0].Message, "options are invalid") {
				t.Errorf("Expected one validation warning, got %v", rec.Warnings())
			}
			if doc.Pending() != 0 {
				t.Error("Invalid options must not touch the document")
			}
		})
	}
}

func TestAxisWithSelectors(t *testing.T) {
	doc := annotation.NewDocument()
	axis := doc.MustAppend(nil, "g", "x-axis")
	title := doc.MustAppend(axis, "text", "")
	doc.SetAttr(title, "class", "title")
	doc.SetText(title, "Year")
	for _, label := range []string{"2019", "2020", ""} {
		tick := doc.MustAppend(axis, "text", "")
		doc.SetAttr(tick, "class", "tick")
		doc.SetText(tick, label)
	}

	ok := New(diag.Discard{}).Axis(axis, AxisOptions{
		Label:         ".title",
		Direction:     model.DirectionX,
		Type:          model.AxisCategorical,
		TicksSelector: ".tick",
	})
	if !ok {
		t.Fatal("Expected axis to be annotated")
	}

	e, err := annotation.Decode(axis)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	a := e.(model.Axis)
	if a.Text != "Year" || a.Direction != model.DirectionX || a.Type != model.AxisCategorical {
		t.Errorf("Unexpected axis %+v", a)
	}
	if len(a.Ticks) != 2 || a.Ticks[0] != "2019" || a.Ticks[1] != "2020" {
		t.Errorf("Expected non-empty tick texts, got %v", a.Ticks)
	}
}

func TestFocus(t *testing.T) {
	doc := annotation.NewDocument()
	n := doc.MustAppend(nil, "rect", "ring")

	if !New(diag.Discard{}).Focus(n) {
		t.Fatal("Expected focus to be annotated")
	}
	if n.Kind() != model.KindFocus {
		t.Errorf("Expected focus kind, got %q", n.Kind())
	}
	if style, _ := n.Attr("style"); style != "display: none" {
		t.Errorf("Expected hidden focus element, got %q", style)
	}
}
