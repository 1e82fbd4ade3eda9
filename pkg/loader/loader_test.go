package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/chart"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/loader"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

func TestLoadTestdata(t *testing.T) {
	files := []struct {
		path    string
		host    string
		symbols int
	}{
		{"testdata/fruit.yaml", "fruit", 4},
		{"testdata/line.json", loader.DefaultHostID, 2},
	}

	for _, tt := range files {
		t.Run(tt.path, func(t *testing.T) {
			f, err := loader.LoadFile(tt.path)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", tt.path, err)
			}
			if f.HostID() != tt.host {
				t.Errorf("Expected host %s, got %s", tt.host, f.HostID())
			}

			var rec diag.Recorder
			doc, err := f.Build(&rec)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if rec.Len() != 0 {
				t.Errorf("Expected no warnings, got %v", rec.Warnings())
			}
			host, ok := doc.ByID(tt.host)
			if !ok {
				t.Fatalf("Expected host #%s", tt.host)
			}
			if got := len(annotation.FindByKind(host, model.KindSymbol)); got != tt.symbols {
				t.Errorf("Expected %d symbols, got %d", tt.symbols, got)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "no chart document found") {
		t.Errorf("Expected missing file error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "chart: {title: x}\n"},
		{"invalid yaml", "nodes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Parse([]byte(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := loader.Parse([]byte("chart: {title: x}\n")); !errors.Is(err, loader.ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}
}

func TestSelectorsResolvedAfterBuild(t *testing.T) {
	f, err := loader.LoadFile("testdata/fruit.yaml")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := f.Build(diag.Discard{})
	if err != nil {
		t.Fatal(err)
	}
	host, _ := doc.ByID("fruit")

	axes := annotation.FindByKind(host, model.KindAxis)
	if len(axes) != 1 {
		t.Fatalf("Expected 1 axis, got %d", len(axes))
	}
	e, err := annotation.Decode(axes[0])
	if err != nil {
		t.Fatal(err)
	}
	a := e.(model.Axis)
	if a.Text != "Year" || len(a.Ticks) != 2 || a.Ticks[1] != "2021" {
		t.Errorf("Unexpected axis %+v", a)
	}
	if r, ok := doc.Rect("y2020-apples"); !ok || r.Height != 200 {
		t.Errorf("Expected symbol bounds, got %+v %v", r, ok)
	}
}

func TestChartOptions(t *testing.T) {
	f, err := loader.LoadFile("testdata/fruit.yaml")
	if err != nil {
		t.Fatal(err)
	}
	opts := f.ChartOptions()
	if opts.Title != "#fruit-title" || opts.Type != model.ChartBar {
		t.Errorf("Unexpected options %+v", opts)
	}
	if len(opts.Axes) != 1 || opts.Axes[0].Text != "Amount" || opts.Axes[0].Direction != model.DirectionY {
		t.Errorf("Unexpected option axes %+v", opts.Axes)
	}
	if opts.Locale != locale.EnUS {
		t.Error("Expected en-US locale")
	}

	g, err := loader.LoadFile("testdata/line.json")
	if err != nil {
		t.Fatal(err)
	}
	if g.Locale() != locale.DeDE {
		t.Error("Expected de-DE locale")
	}
}

func TestMountLoadedChart(t *testing.T) {
	f, err := loader.LoadFile("testdata/fruit.yaml")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := f.Build(diag.Discard{})
	if err != nil {
		t.Fatal(err)
	}
	opts := f.ChartOptions()
	opts.Reporter = diag.Discard{}
	c, err := chart.Mount(doc, f.HostID(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Destroy()

	s := c.Snapshot()
	if !s.Interactive || len(s.Tree.Children) != 2 {
		t.Fatalf("Expected interactive chart with 2 groups, got %+v", s)
	}
	if !strings.HasPrefix(s.Region.Label, "Fruit sales. Sales per year.") {
		t.Errorf("Expected resolved title in label, got %q", s.Region.Label)
	}
	if !s.FocusRing.Custom {
		t.Error("Expected the annotated focus element to be used")
	}
}

func TestReloadAppliesOneBatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruit.yaml")
	data, err := os.ReadFile("testdata/fruit.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := loader.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := f.Build(diag.Discard{})
	if err != nil {
		t.Fatal(err)
	}
	doc.Commit()
	opts := f.ChartOptions()
	opts.Reporter = diag.Discard{}
	c, err := chart.Mount(doc, f.HostID(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Destroy()

	edited := strings.Replace(string(data), "label: Pears", "label: Plums", 2)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := loader.Reload(doc, path, diag.Discard{}); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	c.Flush()

	s := c.Snapshot()
	if s.Rebuilds != 2 {
		t.Errorf("Expected one rebuild for the reload, got %d builds", s.Rebuilds)
	}
	n, ok := s.Tree.Lookup("y2020-pears")
	if !ok {
		t.Fatal("Expected y2020-pears after reload")
	}
	if !strings.HasPrefix(n.Label, "Plums") {
		t.Errorf("Expected relabelled symbol, got %q", n.Label)
	}
}
