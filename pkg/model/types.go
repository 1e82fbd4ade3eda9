package model

import (
	"fmt"
)

// Kind is the value of the reserved friendly-element attribute
type Kind string

const (
	KindAxis   Kind = "axis"
	KindGroup  Kind = "group"
	KindSymbol Kind = "symbol"
	KindFocus  Kind = "focus"

	// KindRoot is synthesized by the tree builder and never read from a document
	KindRoot Kind = "root"
)

// IsValid returns true if the kind can appear on an annotated node
func (k Kind) IsValid() bool {
	switch k {
	case KindAxis, KindGroup, KindSymbol, KindFocus:
		return true
	}
	return false
}

// IsTreeKind returns true for kinds that become nodes of the navigable tree
func (k Kind) IsTreeKind() bool {
	return k == KindGroup || k == KindSymbol
}

// SymbolType categorizes the visual primitive a symbol stands for
type SymbolType string

const (
	SymbolLine  SymbolType = "line"
	SymbolPoint SymbolType = "point"
	SymbolBar   SymbolType = "bar"
	SymbolArea  SymbolType = "area"
)

// IsValid returns true if the symbol type is a recognized value
func (t SymbolType) IsValid() bool {
	switch t {
	case SymbolLine, SymbolPoint, SymbolBar, SymbolArea:
		return true
	}
	return false
}

// ChartType is the overall chart category given by the host
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartScatter ChartType = "scatter"
	ChartBar     ChartType = "bar"
	ChartSlope   ChartType = "slope"
	ChartArea    ChartType = "area"
	ChartSankey  ChartType = "sankey"
	ChartGeneric ChartType = "generic"
)

// IsValid returns true if the chart type is a recognized value
func (t ChartType) IsValid() bool {
	switch t {
	case ChartLine, ChartScatter, ChartBar, ChartSlope, ChartArea, ChartSankey, ChartGeneric:
		return true
	}
	return false
}

// AxisDirection is the optional direction of an axis
type AxisDirection string

const (
	DirectionNone AxisDirection = ""
	DirectionX    AxisDirection = "x"
	DirectionY    AxisDirection = "y"
)

// AxisType tells how ticks of an axis should be narrated
type AxisType string

const (
	AxisUnspecified AxisType = ""
	AxisContinuous  AxisType = "continuous"
	AxisCategorical AxisType = "categorical"
)

// Element is the flat input unit read from an annotated node.
// It is implemented by Axis, Group, Symbol and the builder-internal Root.
type Element interface {
	ID() string
	Kind() Kind
	ParentID() string
	Position() float64
	Label() string
	Highlight() string
	// SymbolType is empty when the element carries no type
	SymbolType() SymbolType
}

// Axis describes a chart axis. Axes are narrated only and never enter the tree.
type Axis struct {
	AxisID    string        `json:"id,omitempty" yaml:"id,omitempty"`
	Text      string        `json:"label" yaml:"label" validate:"required"`
	Direction AxisDirection `json:"direction,omitempty" yaml:"direction,omitempty" validate:"omitempty,oneof=x y"`
	Type      AxisType      `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=continuous categorical"`
	Ticks     []string      `json:"ticks,omitempty" yaml:"ticks,omitempty"`
}

func (a Axis) ID() string             { return a.AxisID }
func (a Axis) Kind() Kind             { return KindAxis }
func (a Axis) ParentID() string       { return "" }
func (a Axis) Position() float64      { return 0 }
func (a Axis) Label() string          { return a.Text }
func (a Axis) Highlight() string      { return "" }
func (a Axis) SymbolType() SymbolType { return "" }

// Group aggregates symbols or nested groups
type Group struct {
	GroupID string     `json:"id" yaml:"id" validate:"required"`
	Type    SymbolType `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=line point bar area"`
	Text    string     `json:"label" yaml:"label"`
	Note    string     `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Parent  string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Pos     float64    `json:"position" yaml:"position"`
}

func (g Group) ID() string             { return g.GroupID }
func (g Group) Kind() Kind             { return KindGroup }
func (g Group) ParentID() string       { return g.Parent }
func (g Group) Position() float64      { return g.Pos }
func (g Group) Label() string          { return g.Text }
func (g Group) Highlight() string      { return g.Note }
func (g Group) SymbolType() SymbolType { return g.Type }

// Symbol is the smallest interactive chart primitive
type Symbol struct {
	SymbolID string     `json:"id" yaml:"id" validate:"required"`
	Type     SymbolType `json:"type" yaml:"type" validate:"required,oneof=line point bar area"`
	Text     string     `json:"label" yaml:"label"`
	Note     string     `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Parent   string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Pos      float64    `json:"position" yaml:"position"`
}

func (s Symbol) ID() string             { return s.SymbolID }
func (s Symbol) Kind() Kind             { return KindSymbol }
func (s Symbol) ParentID() string       { return s.Parent }
func (s Symbol) Position() float64      { return s.Pos }
func (s Symbol) Label() string          { return s.Text }
func (s Symbol) Highlight() string      { return s.Note }
func (s Symbol) SymbolType() SymbolType { return s.Type }

// Root is the synthetic top of every tree
type Root struct {
	RootID string
}

func (r Root) ID() string             { return r.RootID }
func (r Root) Kind() Kind             { return KindRoot }
func (r Root) ParentID() string       { return "" }
func (r Root) Position() float64      { return 0 }
func (r Root) Label() string          { return "" }
func (r Root) Highlight() string      { return "" }
func (r Root) SymbolType() SymbolType { return "" }

// WithParent returns a copy of a group or symbol re-attached to parentID.
// Other elements are returned unchanged.
func WithParent(e Element, parentID string) Element {
	switch v := e.(type) {
	case Group:
		v.Parent = parentID
		return v
	case Symbol:
		v.Parent = parentID
		return v
	}
	return e
}

// Validate checks that a tree element is logically valid
func Validate(e Element) error {
	if e == nil {
		return fmt.Errorf("element cannot be nil")
	}
	if !e.Kind().IsTreeKind() && e.Kind() != KindAxis {
		return fmt.Errorf("invalid element kind: %s", e.Kind())
	}
	if e.Kind().IsTreeKind() && e.ID() == "" {
		return fmt.Errorf("%s id cannot be empty", e.Kind())
	}
	if t := e.SymbolType(); t != "" && !t.IsValid() {
		return fmt.Errorf("invalid symbol type: %s", t)
	}
	if e.Kind() == KindSymbol && e.SymbolType() == "" {
		return fmt.Errorf("symbol %s has no type", e.ID())
	}
	return nil
}
