package controller

import (
	"testing"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
	"github.com/Dicklesworthstone/friendly_charts/pkg/tree"
)

var boxes = map[string]model.Rect{
	"chart": {Top: 100, Left: 100, Width: 400, Height: 300},
	"g0":    {Top: 150, Left: 120, Width: 100, Height: 200},
	"g1":    {Top: 150, Left: 250, Width: 100, Height: 200},
	"s00":   {Top: 200, Left: 120, Width: 40, Height: 150},
	"s01":   {Top: 250, Left: 170, Width: 40, Height: 100},
	"s10":   {Top: 180, Left: 250, Width: 40, Height: 170},
}

var layout = annotation.LayoutFunc(func(id string) (model.Rect, bool) {
	r, ok := boxes[id]
	return r, ok
})

// two typed groups of bars; s11 has no layout box
func buildTree() *tree.Node {
	return tree.Build([]model.Element{
		model.Group{GroupID: "g0", Type: model.SymbolBar, Text: "2020", Pos: 0},
		model.Group{GroupID: "g1", Type: model.SymbolBar, Text: "2021", Pos: 1},
		model.Symbol{SymbolID: "s00", Type: model.SymbolBar, Text: "A", Parent: "g0", Pos: 0},
		model.Symbol{SymbolID: "s01", Type: model.SymbolBar, Text: "B", Parent: "g0", Pos: 1},
		model.Symbol{SymbolID: "s10", Type: model.SymbolBar, Text: "A", Parent: "g1", Pos: 0},
		model.Symbol{SymbolID: "s11", Type: model.SymbolBar, Text: "B", Parent: "g1", Pos: 1},
	}, locale.EnUS, diag.Discard{})
}

func newController(t *testing.T, debug bool) *Controller {
	t.Helper()
	c := New(Options{
		Title:          "Fruit sales",
		Subtitle:       "per year",
		ChartID:        "abc123",
		ChartType:      model.ChartBar,
		Strings:        locale.EnUS.Controller,
		Layout:         layout,
		ChartElementID: "chart",
		DescribedBy:    "friendly-keyboard-instructions-paragraph-abc123",
		Debug:          debug,
	})
	c.Update(buildTree())
	return c
}

const fullLabel = "Fruit sales. per year. Navigate into the chart area by pressing ENTER."

func controlIDs(r Region) []string {
	out := make([]string, len(r.Controls))
	for i, ctl := range r.Controls {
		out[i] = ctl.ID
	}
	return out
}

func TestNewRegion(t *testing.T) {
	c := newController(t, false)
	r := c.Region()

	if r.ID != "friendly-application-abc123" || r.Role != "application" || r.TabIndex != 0 {
		t.Errorf("Unexpected region: %+v", r)
	}
	if r.Label != fullLabel {
		t.Errorf("Expected full label, got %q", r.Label)
	}
	if r.Text != "Interactive bar chart." {
		t.Errorf("Expected short label as text, got %q", r.Text)
	}
	if c.State() != StateIdle {
		t.Errorf("Expected idle, got %s", c.State())
	}
}

func TestScenarioEnterThenEscape(t *testing.T) {
	c := newController(t, false)
	c.HandleFocus()

	if !c.HandleKey(KeyEnter) {
		t.Fatal("Enter should be handled")
	}
	if c.ActiveID() != "g0" {
		t.Fatalf("Expected first child of root active, got %q", c.ActiveID())
	}
	if c.Region().Label != "Interactive bar chart." {
		t.Errorf("Expected short label after Enter, got %q", c.Region().Label)
	}
	if c.State() != StateActive {
		t.Errorf("Expected active, got %s", c.State())
	}

	c.HandleKey(KeyEscape)
	if c.ActiveID() != "" {
		t.Errorf("Expected no active element, got %q", c.ActiveID())
	}
	if c.State() != StateFocusedRoot {
		t.Errorf("Expected focused root, got %s", c.State())
	}
	r := c.Region()
	if r.Label != fullLabel {
		t.Errorf("Expected full label restored, got %q", r.Label)
	}
	if len(r.Controls) != 0 {
		t.Errorf("Expected controls cleared, got %v", controlIDs(r))
	}
	ring := c.FocusRing()
	if !ring.Visible || ring.Rect != (model.Rect{Width: 400, Height: 300}) {
		t.Errorf("Expected ring on whole chart, got %+v", ring)
	}
}

func TestDrillDownAndNavigate(t *testing.T) {
	c := newController(t, false)

	steps := []struct {
		key    string
		active string
	}{
		{KeyEnter, "g0"},
		{KeyEnter, "s00"},
		{KeyEnter, "s00"},
		{KeyArrowRight, "s01"},
		{KeyArrowRight, "s00"},
		{KeyArrowLeft, "s01"},
		{KeyArrowUp, "s11"},
		{KeyArrowDown, "s01"},
		{KeyEscape, "g0"},
		{KeyArrowRight, "g1"},
		{KeyArrowUp, "g1"},
		{KeyEscape, ""},
	}
	for i, step := range steps {
		if !c.HandleKey(step.key) {
			t.Fatalf("Step %d: %s not handled", i, step.key)
		}
		if got := c.ActiveID(); got != step.active {
			t.Fatalf("Step %d (%s): expected %q, got %q", i, step.key, step.active, got)
		}
	}
}

func TestControlElements(t *testing.T) {
	c := newController(t, false)
	c.HandleKey(KeyEnter)
	c.HandleKey(KeyEnter)

	// ring of two: left equals right and is rendered once
	r := c.Region()
	ids := controlIDs(r)
	if len(ids) != 2 || ids[0] != "s00__control" || ids[1] != "s01__control" {
		t.Errorf("Unexpected controls %v", ids)
	}
	if r.ActiveDescendant != "s00__control" {
		t.Errorf("Unexpected active descendant %q", r.ActiveDescendant)
	}
	if r.Controls[0].Role != "img" || r.Controls[0].Label != "A. Bar 1 of 2." {
		t.Errorf("Unexpected control %+v", r.Controls[0])
	}
}

func TestControlElementsThreeRing(t *testing.T) {
	root := tree.Build([]model.Element{
		model.Symbol{SymbolID: "a", Type: model.SymbolPoint, Text: "a", Pos: 0},
		model.Symbol{SymbolID: "b", Type: model.SymbolPoint, Text: "b", Pos: 1},
		model.Symbol{SymbolID: "c", Type: model.SymbolPoint, Text: "c", Pos: 2},
	}, locale.EnUS, diag.Discard{})
	c := New(Options{Title: "t", Strings: locale.EnUS.Controller})
	c.Update(root)

	c.HandleKey(KeyEnter)
	ids := controlIDs(c.Region())
	if len(ids) != 3 || ids[0] != "c__control" || ids[1] != "a__control" || ids[2] != "b__control" {
		t.Errorf("Expected left, self, right; got %v", ids)
	}
}

func TestSingleChildRendersOnce(t *testing.T) {
	root := tree.Build([]model.Element{
		model.Symbol{SymbolID: "solo", Type: model.SymbolPoint, Text: "solo", Pos: 0},
	}, locale.EnUS, diag.Discard{})
	c := New(Options{Title: "t", Strings: locale.EnUS.Controller})
	c.Update(root)

	c.HandleKey(KeyEnter)
	if ids := controlIDs(c.Region()); len(ids) != 1 || ids[0] != "solo__control" {
		t.Errorf("Expected only the node itself, got %v", ids)
	}
}

func TestFocusRingFollowsActive(t *testing.T) {
	c := newController(t, false)
	c.HandleKey(KeyEnter)

	ring := c.FocusRing()
	want := model.Rect{Top: 50, Left: 20, Width: 100, Height: 200}
	if !ring.Visible || ring.Rect != want {
		t.Errorf("Expected ring %+v, got %+v", want, ring)
	}

	// s11 has no box: ring stays where it was
	c.HandleKey(KeyArrowRight)
	c.HandleKey(KeyEnter)
	c.HandleKey(KeyArrowRight)
	if c.ActiveID() != "s11" {
		t.Fatalf("Expected s11, got %q", c.ActiveID())
	}
	if got := c.FocusRing().Rect; got != (model.Rect{Top: 80, Left: 150, Width: 40, Height: 170}) {
		t.Errorf("Expected ring unchanged from s10, got %+v", got)
	}
	if c.FocusRing().Custom || c.FocusRing().ElementID != "friendly-focus-abc123" {
		t.Errorf("Expected default ring, got %+v", c.FocusRing())
	}
}

func TestUnhandledKeys(t *testing.T) {
	c := newController(t, false)
	for _, key := range []string{"Tab", "a", " ", "Home", "enter"} {
		if c.HandleKey(key) {
			t.Errorf("%q must not be handled", key)
		}
	}
	if c.ActiveID() != "" {
		t.Error("Unhandled keys must not change state")
	}
}

func TestNoTreeIgnoresKeys(t *testing.T) {
	c := New(Options{Title: "t", Strings: locale.EnUS.Controller})
	if c.HandleKey(KeyEnter) {
		t.Error("Keys must be ignored before the first tree")
	}
}

func TestArrowsWithoutActiveAreNoOps(t *testing.T) {
	c := newController(t, false)
	for _, key := range []string{KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown, KeyEscape} {
		if !c.HandleKey(key) {
			t.Errorf("%s should be handled", key)
		}
		if c.ActiveID() != "" {
			t.Errorf("%s must not activate anything", key)
		}
	}
	if c.Region().Label != fullLabel {
		t.Errorf("Expected full label, got %q", c.Region().Label)
	}
}

func TestEmptyTreeEnter(t *testing.T) {
	c := New(Options{Title: "t", Strings: locale.EnUS.Controller})
	c.Update(tree.Build(nil, locale.EnUS, diag.Discard{}))

	if !c.HandleKey(KeyEnter) {
		t.Error("Enter should be handled")
	}
	if c.ActiveID() != "" {
		t.Error("Enter on an empty chart must not activate anything")
	}
	if c.Region().Text != "Interactive chart." {
		t.Errorf("Expected default short label, got %q", c.Region().Text)
	}
}

func TestStaleActiveAfterUpdate(t *testing.T) {
	c := newController(t, false)
	c.HandleKey(KeyEnter)
	c.HandleKey(KeyEnter)

	c.Update(tree.Build([]model.Element{
		model.Symbol{SymbolID: "other", Type: model.SymbolBar, Text: "x", Pos: 0},
	}, locale.EnUS, diag.Discard{}))

	for _, key := range []string{KeyArrowRight, KeyEnter, KeyEscape} {
		if !c.HandleKey(key) {
			t.Errorf("%s should be handled", key)
		}
		if c.ActiveID() != "s00" {
			t.Errorf("%s on a stale id must be a no-op, got %q", key, c.ActiveID())
		}
	}

	// leaving the chart clears the stale id
	c.HandleBlur()
	c.HandleKey(KeyEnter)
	if c.ActiveID() != "other" {
		t.Errorf("Expected fresh navigation after blur, got %q", c.ActiveID())
	}
}

func TestBlurResets(t *testing.T) {
	c := newController(t, true)
	c.HandleFocus()
	c.HandleKey(KeyEnter)
	c.HandleBlur()

	r := c.Region()
	if r.ActiveDescendant != "" || len(r.Controls) != 0 || r.Label != fullLabel {
		t.Errorf("Region not reset: %+v", r)
	}
	if c.FocusRing().Visible {
		t.Error("Ring should be hidden after blur")
	}
	if c.State() != StateIdle {
		t.Errorf("Expected idle, got %s", c.State())
	}
	if c.DebugLine() != "No element selected" {
		t.Errorf("Unexpected debug line %q", c.DebugLine())
	}
}

func TestDebugLine(t *testing.T) {
	c := newController(t, true)
	c.HandleKey(KeyEnter)
	if got := c.DebugLine(); got != "Announced by screen readers: 2020. Bar 1 of 2. Group that contains 2 bars." {
		t.Errorf("Unexpected debug line %q", got)
	}

	quiet := newController(t, false)
	quiet.HandleKey(KeyEnter)
	if quiet.DebugLine() != "" {
		t.Error("Expected no debug line outside debug mode")
	}
}

func TestDestroyIgnoresEvents(t *testing.T) {
	c := newController(t, false)
	c.Destroy()

	if c.HandleKey(KeyEnter) {
		t.Error("Destroyed controller must not handle keys")
	}
	c.HandleFocus()
	if c.FocusRing().Visible {
		t.Error("Destroyed controller must ignore focus")
	}
	if !c.Destroyed() {
		t.Error("Expected Destroyed to report true")
	}
}

func TestCustomFocusElement(t *testing.T) {
	c := New(Options{Title: "t", Strings: locale.EnUS.Controller, FocusElementID: "my-focus"})
	ring := c.FocusRing()
	if !ring.Custom || ring.ElementID != "my-focus" {
		t.Errorf("Expected custom focus element, got %+v", ring)
	}
}
