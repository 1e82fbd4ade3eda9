// Package describe builds the visually hidden instructions section that
// precedes a chart: title, screen reader information, optional summary and
// purpose texts, keyboard instructions and the layout description.
package describe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
	"github.com/Dicklesworthstone/friendly_charts/pkg/tree"
)

// Element ids and classes of the instructions section. Ids are suffixed
// with the chart id.
const (
	ClassInstructions                  = "friendly-instructions"
	ClassTitle                         = "friendly-title"
	ClassSubtitle                      = "friendly-subtitle"
	ClassScreenReaderInfo              = "friendly-screen-reader-information"
	ClassSummary                       = "friendly-summary"
	ClassPurpose                       = "friendly-purpose"
	ClassDescription                   = "friendly-description"
	ClassContext                       = "friendly-context"
	ClassKeyboardInstructions          = "friendly-keyboard-instructions"
	ClassKeyboardInstructionsParagraph = "friendly-keyboard-instructions-paragraph"
	ClassLayoutDescription             = "friendly-layout-description"
	ClassLayoutDescriptionGeneral      = "friendly-general-layout-description"
	ClassLayoutDescriptionAxis         = "friendly-axis-description"
)

// Options are the host-supplied texts. Every text except the title is
// optional; any of them may be a selector resolved against the chart.
type Options struct {
	Title       string
	Subtitle    string
	Summary     string
	Purpose     string
	Description string
	Context     string
	ChartType   model.ChartType
}

// Section is one element of the instructions, in display order
type Section struct {
	ID    string
	Class string
	// Tag is h2, h3, h4 or p
	Tag  string
	Text string
}

// Description is the instructions section of one chart
type Description struct {
	chartID   string
	chartType model.ChartType
	loc       *locale.Locale

	Title       string
	Subtitle    string
	Summary     string
	Purpose     string
	Description string
	Context     string

	features tree.Features
	axes     []string
}

// New resolves opts against scope and creates a static (non-interactive)
// description. Title and subtitle targets are hidden from assistive
// technology since the description repeats them.
func New(scope *annotation.Node, chartID string, opts Options, loc *locale.Locale, reporter diag.Reporter) *Description {
	if loc == nil {
		loc = locale.Default()
	}
	d := &Description{chartID: chartID, chartType: opts.ChartType, loc: loc}

	resolve := func(value string, hide bool) string {
		if value == "" {
			return ""
		}
		if scope == nil {
			return strings.TrimSpace(value)
		}
		text, target := annotation.ResolveText(scope, value, reporter)
		if hide && target != nil {
			target.Document().SetAttr(target, "aria-hidden", "true")
		}
		return strings.TrimSpace(text)
	}

	d.Title = resolve(opts.Title, true)
	d.Subtitle = resolve(opts.Subtitle, true)
	d.Summary = resolve(opts.Summary, false)
	d.Purpose = resolve(opts.Purpose, false)
	d.Description = resolve(opts.Description, false)
	d.Context = resolve(opts.Context, false)
	return d
}

func (d *Description) id(class string) string {
	return model.JoinID(class, d.chartID)
}

// ID is the id of the instructions container
func (d *Description) ID() string {
	return d.id(ClassInstructions)
}

// KeyboardInstructionsID is the id the application region is described by
func (d *Description) KeyboardInstructionsID() string {
	return d.id(ClassKeyboardInstructionsParagraph)
}

// UpdateTree refreshes the parts derived from the tree. Non-interactive
// trees leave the description untouched.
func (d *Description) UpdateTree(root *tree.Node) {
	f := tree.ChartFeatures(root)
	if !f.Interactive() {
		return
	}
	d.features = f
}

// UpdateAxes replaces all axis paragraphs. Axes are ordered x, y, then undirected.
func (d *Description) UpdateAxes(axes []model.Axis) {
	sorted := append([]model.Axis(nil), axes...)
	rank := func(a model.Axis) int {
		switch a.Direction {
		case model.DirectionX:
			return 0
		case model.DirectionY:
			return 1
		}
		return 2
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})

	d.axes = d.axes[:0]
	for _, a := range sorted {
		d.axes = append(d.axes, d.loc.Axis(a))
	}
}

// Interactive reports whether a tree with navigable elements has been seen
func (d *Description) Interactive() bool {
	return d.features.Interactive()
}

// Features returns the features of the last interactive tree
func (d *Description) Features() tree.Features {
	return d.features
}

// Axes returns the axis paragraphs
func (d *Description) Axes() []string {
	return append([]string(nil), d.axes...)
}

// ScreenReaderInfo is the first paragraph of the section
func (d *Description) ScreenReaderInfo() string {
	if d.Interactive() {
		return d.loc.ScreenReaderInteractive(d.Title, d.chartType)
	}
	return d.loc.ScreenReaderStatic(d.Title)
}

// Sections lists the section elements in display order
func (d *Description) Sections() []Section {
	out := []Section{
		{ID: d.id(ClassScreenReaderInfo), Class: ClassScreenReaderInfo, Tag: "p", Text: d.ScreenReaderInfo()},
		{Class: ClassTitle, Tag: "h2", Text: d.loc.ChartTitle(d.Title)},
	}
	if d.Subtitle != "" {
		out = append(out, Section{Class: ClassSubtitle, Tag: "p", Text: d.loc.ChartSubtitle(d.Subtitle)})
	}
	if d.Summary != "" {
		out = append(out, Section{Class: ClassSummary, Tag: "p", Text: d.Summary})
	}
	if d.Purpose != "" {
		out = append(out,
			Section{Class: ClassPurpose, Tag: "h3", Text: d.loc.Headings.Purpose},
			Section{Tag: "p", Text: d.Purpose},
		)
	}
	if d.Description != "" {
		out = append(out,
			Section{Class: ClassDescription, Tag: "h3", Text: d.loc.Headings.Description},
			Section{Tag: "p", Text: d.Description},
		)
	}
	if d.Context != "" {
		out = append(out, Section{Class: ClassContext, Tag: "p", Text: d.Context})
	}
	if d.Interactive() {
		out = append(out,
			Section{ID: d.id(ClassKeyboardInstructions), Class: ClassKeyboardInstructions, Tag: "h4", Text: d.loc.Headings.KeyboardInstructions},
			Section{ID: d.KeyboardInstructionsID(), Class: ClassKeyboardInstructionsParagraph, Tag: "p", Text: d.loc.KeyboardInstructions},
		)
	}
	if d.Interactive() || len(d.axes) > 0 {
		out = append(out, Section{ID: d.id(ClassLayoutDescription), Class: ClassLayoutDescription, Tag: "h4", Text: d.loc.Headings.ChartLayoutDescription})
		general := ""
		if d.Interactive() {
			general = d.loc.ChartLayout(d.chartType, d.features.Count)
		}
		out = append(out, Section{ID: d.id(ClassLayoutDescriptionGeneral), Class: ClassLayoutDescriptionGeneral, Tag: "p", Text: general})
		for _, a := range d.axes {
			out = append(out, Section{Class: ClassLayoutDescriptionAxis, Tag: "p", Text: a})
		}
	}
	return out
}

// Text renders the sections as plain paragraphs
func (d *Description) Text() string {
	var b strings.Builder
	for _, s := range d.Sections() {
		if s.Text == "" {
			continue
		}
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Markdown renders the sections as markdown
func (d *Description) Markdown() string {
	var b strings.Builder
	for _, s := range d.Sections() {
		if s.Text == "" {
			continue
		}
		switch s.Tag {
		case "h2":
			fmt.Fprintf(&b, "## %s\n\n", s.Text)
		case "h3":
			fmt.Fprintf(&b, "### %s\n\n", s.Text)
		case "h4":
			fmt.Fprintf(&b, "#### %s\n\n", s.Text)
		default:
			fmt.Fprintf(&b, "%s\n\n", s.Text)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Render renders the markdown for a terminal of the given width
func (d *Description) Render(width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(d.Markdown())
	if err != nil {
		return "", fmt.Errorf("rendering description: %w", err)
	}
	return out, nil
}
