// Package loader reads chart documents from YAML or JSON files and builds
// annotated documents from them.
package loader

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotate"
	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/chart"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// DefaultHostID is the host node id used when a file does not name one
const DefaultHostID = "chart"

// ErrEmptyDocument is returned for files without any nodes
var ErrEmptyDocument = errors.New("chart document has no nodes")

// File is a chart document as stored on disk
type File struct {
	Chart ChartSpec  `yaml:"chart" json:"chart"`
	Nodes []NodeSpec `yaml:"nodes" json:"nodes"`
}

// ChartSpec holds the chart-level options
type ChartSpec struct {
	ID          string                 `yaml:"id,omitempty" json:"id,omitempty"`
	Title       string                 `yaml:"title" json:"title"`
	Subtitle    string                 `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Type        model.ChartType        `yaml:"type,omitempty" json:"type,omitempty"`
	Summary     string                 `yaml:"summary,omitempty" json:"summary,omitempty"`
	Purpose     string                 `yaml:"purpose,omitempty" json:"purpose,omitempty"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Context     string                 `yaml:"context,omitempty" json:"context,omitempty"`
	Locale      string                 `yaml:"locale,omitempty" json:"locale,omitempty"`
	Bounds      *model.Rect            `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	Axes        []annotate.AxisOptions `yaml:"axes,omitempty" json:"axes,omitempty"`
}

// NodeSpec is one document node. At most one of Axis, Group, Symbol and
// Focus should be set.
type NodeSpec struct {
	Tag      string                  `yaml:"tag" json:"tag"`
	ID       string                  `yaml:"id,omitempty" json:"id,omitempty"`
	Class    string                  `yaml:"class,omitempty" json:"class,omitempty"`
	Text     string                  `yaml:"text,omitempty" json:"text,omitempty"`
	Attrs    map[string]string       `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Bounds   *model.Rect             `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	Axis     *annotate.AxisOptions   `yaml:"axis,omitempty" json:"axis,omitempty"`
	Group    *annotate.GroupOptions  `yaml:"group,omitempty" json:"group,omitempty"`
	Symbol   *annotate.SymbolOptions `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Focus    bool                    `yaml:"focus,omitempty" json:"focus,omitempty"`
	Children []NodeSpec              `yaml:"children,omitempty" json:"children,omitempty"`
}

// LoadFile reads a chart document. JSON files parse as YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no chart document found at %s", path)
		}
		return nil, fmt.Errorf("failed to read chart document: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a chart document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chart document: %w", err)
	}
	if len(f.Nodes) == 0 {
		return nil, ErrEmptyDocument
	}
	return &f, nil
}

// HostID returns the id of the chart host node
func (f *File) HostID() string {
	if f.Chart.ID != "" {
		return f.Chart.ID
	}
	return DefaultHostID
}

// Locale resolves the locale tag, falling back to the default locale
func (f *File) Locale() *locale.Locale {
	if loc, ok := locale.Lookup(f.Chart.Locale); ok {
		return loc
	}
	return locale.Default()
}

// ChartOptions returns mount options for the chart
func (f *File) ChartOptions() chart.Options {
	axes := make([]model.Axis, 0, len(f.Chart.Axes))
	for _, a := range f.Chart.Axes {
		axes = append(axes, model.Axis{
			AxisID:    a.ID,
			Text:      a.Label,
			Direction: a.Direction,
			Type:      a.Type,
			Ticks:     a.Ticks,
		})
	}
	return chart.Options{
		Title:       f.Chart.Title,
		Subtitle:    f.Chart.Subtitle,
		Summary:     f.Chart.Summary,
		Purpose:     f.Chart.Purpose,
		Description: f.Chart.Description,
		Context:     f.Chart.Context,
		Type:        f.Chart.Type,
		Locale:      f.Locale(),
		Axes:        axes,
	}
}

// Build creates a document holding the chart host and its annotated nodes.
// The writes are left uncommitted.
func (f *File) Build(reporter diag.Reporter) (*annotation.Document, error) {
	doc := annotation.NewDocument()
	host, err := doc.Append(nil, "div", f.HostID())
	if err != nil {
		return nil, err
	}
	if err := f.fill(doc, host, reporter); err != nil {
		return nil, err
	}
	return doc, nil
}

// Apply replaces the content of the chart host in doc with the file's nodes
// and commits the change as one batch
func (f *File) Apply(doc *annotation.Document, reporter diag.Reporter) error {
	host, ok := doc.ByID(f.HostID())
	if !ok {
		return fmt.Errorf("no chart host #%s in document", f.HostID())
	}
	for _, c := range host.Children() {
		doc.Remove(c)
	}
	if err := f.fill(doc, host, reporter); err != nil {
		doc.Commit()
		return err
	}
	doc.Commit()
	return nil
}

// Reload reads path and applies it to doc
func Reload(doc *annotation.Document, path string, reporter diag.Reporter) error {
	f, err := LoadFile(path)
	if err != nil {
		return err
	}
	return f.Apply(doc, reporter)
}

type pendingAnnotation struct {
	node *annotation.Node
	spec *NodeSpec
}

// fill appends all nodes below host, then annotates them in document order.
// Annotating after the whole subtree exists lets selector labels see it.
func (f *File) fill(doc *annotation.Document, host *annotation.Node, reporter diag.Reporter) error {
	if f.Chart.Bounds != nil {
		doc.SetBounds(host, *f.Chart.Bounds)
	}

	var todo []pendingAnnotation
	var add func(parent *annotation.Node, specs []NodeSpec) error
	add = func(parent *annotation.Node, specs []NodeSpec) error {
		for i := range specs {
			spec := &specs[i]
			tag := spec.Tag
			if tag == "" {
				tag = "div"
			}
			n, err := doc.Append(parent, tag, spec.ID)
			if err != nil {
				return fmt.Errorf("adding <%s>: %w", tag, err)
			}
			if spec.Class != "" {
				doc.SetAttr(n, "class", spec.Class)
			}
			for k, v := range spec.Attrs {
				doc.SetAttr(n, k, v)
			}
			if spec.Text != "" {
				doc.SetText(n, spec.Text)
			}
			if spec.Bounds != nil {
				doc.SetBounds(n, *spec.Bounds)
			}
			todo = append(todo, pendingAnnotation{node: n, spec: spec})
			if err := add(n, spec.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(host, f.Nodes); err != nil {
		return err
	}

	a := annotate.New(reporter)
	for _, p := range todo {
		switch {
		case p.spec.Axis != nil:
			a.Axis(p.node, *p.spec.Axis)
		case p.spec.Group != nil:
			a.Group(p.node, *p.spec.Group)
		case p.spec.Symbol != nil:
			a.Symbol(p.node, *p.spec.Symbol)
		case p.spec.Focus:
			a.Focus(p.node)
		}
	}
	return nil
}
