// Package annotate attaches element records to document nodes. Each
// annotator validates its options, resolves selector labels and writes the
// record through the friendly-* attribute store.
package annotate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// AxisOptions configure an axis. Ticks may be given literally or collected
// from the text of nodes matched by TicksSelector.
type AxisOptions struct {
	ID            string              `json:"id,omitempty" yaml:"id,omitempty"`
	Label         string              `json:"label" yaml:"label" validate:"required"`
	Direction     model.AxisDirection `json:"direction,omitempty" yaml:"direction,omitempty" validate:"omitempty,oneof=x y"`
	Type          model.AxisType      `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=continuous categorical"`
	Ticks         []string            `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	TicksSelector string              `json:"ticksSelector,omitempty" yaml:"ticksSelector,omitempty"`
}

// GroupOptions configure a group. Type marks a group that stands for one
// symbol, e.g. a line made of points.
type GroupOptions struct {
	ID        string           `json:"id,omitempty" yaml:"id,omitempty"`
	Type      model.SymbolType `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=line point bar area"`
	Label     string           `json:"label" yaml:"label" validate:"required"`
	Highlight string           `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	ParentID  string           `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Position  float64          `json:"position" yaml:"position"`
}

// SymbolOptions configure a symbol
type SymbolOptions struct {
	ID        string           `json:"id,omitempty" yaml:"id,omitempty"`
	Type      model.SymbolType `json:"type" yaml:"type" validate:"required,oneof=line point bar area"`
	Label     string           `json:"label" yaml:"label" validate:"required"`
	Highlight string           `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	ParentID  string           `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Position  float64          `json:"position" yaml:"position"`
}

// Annotator writes element records. Invalid options are reported and the
// node is left untouched.
type Annotator struct {
	validate *validator.Validate
	reporter diag.Reporter
}

// New creates an annotator reporting to reporter (the default reporter when nil)
func New(reporter diag.Reporter) *Annotator {
	return &Annotator{
		validate: validator.New(),
		reporter: diag.Or(reporter),
	}
}

func (a *Annotator) check(kind model.Kind, opts any) bool {
	err := a.validate.Struct(opts)
	if err == nil {
		return true
	}
	var problems []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			if fe.Param() != "" {
				problems = append(problems, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			} else {
				problems = append(problems, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
			}
		}
	} else {
		problems = append(problems, err.Error())
	}
	a.reporter.Warn(
		fmt.Sprintf("The %s options are invalid: %s.", kind, strings.Join(problems, "; ")),
		fmt.Sprintf("The %s is not annotated.", kind),
	)
	return false
}

// assignID gives n its element id, generating one when id is empty
func (a *Annotator) assignID(n *annotation.Node, kind model.Kind, id string) (string, bool) {
	if id == "" {
		id = model.JoinID("friendly", string(kind), model.UniqueID())
	}
	if current := n.ID(); current != "" && current != id {
		a.reporter.Warn(
			fmt.Sprintf("The %s's id `%s` is overwritten with `%s`.", kind, current, id),
			fmt.Sprintf("If you want to keep `%s`, pass it to the %s as `id`.", current, kind),
		)
	}
	if err := n.Document().SetID(n, id); err != nil {
		a.reporter.Warn(
			fmt.Sprintf("The %s's id `%s` is already in use.", kind, id),
			"Every group and symbol needs a unique `id`.",
		)
		return "", false
	}
	return id, true
}

// Axis marks n as an axis
func (a *Annotator) Axis(n *annotation.Node, opts AxisOptions) bool {
	if !a.check(model.KindAxis, opts) {
		return false
	}
	label, _ := annotation.ResolveText(n, opts.Label, a.reporter)

	ticks := opts.Ticks
	if opts.TicksSelector != "" {
		ticks = annotation.ResolveTexts(n, opts.TicksSelector, a.reporter)
	}
	if ticks == nil {
		ticks = []string{}
	}

	data := map[string]any{
		"element":   string(model.KindAxis),
		"direction": string(opts.Direction),
		"label":     label,
		"ticks":     ticks,
	}
	if opts.Type != model.AxisUnspecified {
		data["type"] = string(opts.Type)
	}
	if opts.ID != "" {
		data["id"] = opts.ID
	}
	return a.write(n, model.KindAxis, data)
}

// Group marks n as a group
func (a *Annotator) Group(n *annotation.Node, opts GroupOptions) bool {
	if !a.check(model.KindGroup, opts) {
		return false
	}
	id, ok := a.assignID(n, model.KindGroup, opts.ID)
	if !ok {
		return false
	}
	label, _ := annotation.ResolveText(n, opts.Label, a.reporter)

	data := map[string]any{
		"element":  string(model.KindGroup),
		"id":       id,
		"label":    label,
		"position": opts.Position,
	}
	if opts.Type != "" {
		data["type"] = string(opts.Type)
	}
	if opts.Highlight != "" {
		data["highlight"] = opts.Highlight
	}
	if opts.ParentID != "" {
		data["parentId"] = opts.ParentID
	}
	return a.write(n, model.KindGroup, data)
}

// Symbol marks n as a symbol
func (a *Annotator) Symbol(n *annotation.Node, opts SymbolOptions) bool {
	if !a.check(model.KindSymbol, opts) {
		return false
	}
	id, ok := a.assignID(n, model.KindSymbol, opts.ID)
	if !ok {
		return false
	}
	label, _ := annotation.ResolveText(n, opts.Label, a.reporter)

	data := map[string]any{
		"element":  string(model.KindSymbol),
		"id":       id,
		"type":     string(opts.Type),
		"label":    label,
		"position": opts.Position,
	}
	if opts.Highlight != "" {
		data["highlight"] = opts.Highlight
	}
	if opts.ParentID != "" {
		data["parentId"] = opts.ParentID
	}
	return a.write(n, model.KindSymbol, data)
}

// Focus marks n as the custom focus indicator of its chart. The node is
// hidden until the controller positions it.
func (a *Annotator) Focus(n *annotation.Node) bool {
	doc := n.Document()
	doc.SetAttr(n, "style", "display: none")
	return a.write(n, model.KindFocus, map[string]any{"element": string(model.KindFocus)})
}

func (a *Annotator) write(n *annotation.Node, kind model.Kind, data map[string]any) bool {
	if err := n.Document().WriteData(n, data); err != nil {
		a.reporter.Warn(fmt.Sprintf("The %s could not be annotated: %v", kind, err), "")
		return false
	}
	return true
}
