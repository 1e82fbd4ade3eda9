// Package controller implements the keyboard navigation state machine of an
// interactive chart: a focusable application region whose active descendant
// walks the chart tree, plus a focus ring tracking the active element.
package controller

import (
	"github.com/charmbracelet/log"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
	"github.com/Dicklesworthstone/friendly_charts/pkg/tree"
)

// Handled keys. Everything else is left to the host.
const (
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
)

// ApplicationPrefix prefixes the region id of every chart
const ApplicationPrefix = "friendly-application"

// IsNavigationKey reports whether key is one of the six handled keys
func IsNavigationKey(key string) bool {
	switch key {
	case KeyEnter, KeyEscape, KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown:
		return true
	}
	return false
}

// State is the navigation state of a controller
type State int

const (
	StateIdle State = iota
	StateFocusedRoot
	StateActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFocusedRoot:
		return "focused-root"
	case StateActive:
		return "active"
	}
	return "unknown"
}

// Options configures a Controller
type Options struct {
	Title     string
	Subtitle  string
	ChartID   string
	ChartType model.ChartType
	Strings   locale.ControllerStrings

	// Layout resolves boxes of tree nodes and of the chart itself
	Layout annotation.Layout
	// ChartElementID is the layout id of the whole chart
	ChartElementID string
	// FocusElementID names a host-provided focus element; empty uses the default ring
	FocusElementID string
	// DescribedBy is the id of the keyboard instructions paragraph
	DescribedBy string

	Debug  bool
	Logger *log.Logger
}

// Control is a virtual element announcing one tree node
type Control struct {
	ID    string
	Role  string
	Label string
}

// Region is the focusable application element assistive technology talks to
type Region struct {
	ID               string
	Role             string
	TabIndex         int
	Label            string
	ActiveDescendant string
	DescribedBy      string
	Text             string
	Controls         []Control
}

// FocusRing is the visual indicator drawn over the active element.
// Rect is relative to the chart box.
type FocusRing struct {
	ElementID string
	Custom    bool
	Visible   bool
	Rect      model.Rect
}

// Controller is the navigation state machine of one chart.
// It is not safe for concurrent use; the owning chart serializes access.
type Controller struct {
	opts      Options
	region    Region
	ring      FocusRing
	root      *tree.Node
	features  tree.Features
	focused   bool
	debug     string
	destroyed bool
}

// New creates a controller in the idle state with the full label
func New(opts Options) *Controller {
	c := &Controller{opts: opts}
	c.region = Region{
		ID:          model.JoinID(ApplicationPrefix, opts.ChartID),
		Role:        "application",
		TabIndex:    0,
		DescribedBy: opts.DescribedBy,
	}
	c.region.Label = c.label()

	c.ring.ElementID = opts.FocusElementID
	c.ring.Custom = opts.FocusElementID != ""
	if !c.ring.Custom {
		c.ring.ElementID = model.JoinID("friendly-focus", opts.ChartID)
	}
	c.setDebug(nil)
	return c
}

func (c *Controller) label() string {
	if c.opts.Strings.Label == nil {
		return c.opts.Title
	}
	return c.opts.Strings.Label(c.opts.Title, c.opts.Subtitle)
}

func (c *Controller) shortLabel() string {
	if c.opts.Strings.ShortLabel == nil {
		return c.opts.Title
	}
	if c.features.Interactive() {
		return c.opts.Strings.ShortLabel(c.opts.ChartType)
	}
	return c.opts.Strings.ShortLabel("")
}

func (c *Controller) logDebug(msg string, keyvals ...interface{}) {
	if c.opts.Logger != nil {
		c.opts.Logger.Debug(msg, keyvals...)
	}
}

// Update swaps in a freshly built tree. The active id is kept; if it no
// longer exists, navigation keys are no-ops until the user leaves the chart.
func (c *Controller) Update(root *tree.Node) {
	if c.destroyed {
		return
	}
	c.root = root
	c.features = tree.ChartFeatures(root)
	c.region.Text = c.shortLabel()
	c.logDebug("tree updated", "chart", c.opts.ChartID, "elements", c.features.Count)
}

// HandleKey applies a key press. It returns false for keys the controller
// does not handle, which the host must then process normally.
func (c *Controller) HandleKey(key string) bool {
	if c.destroyed || c.root == nil || !IsNavigationKey(key) {
		return false
	}

	activeID := c.ActiveID()
	if key == KeyEnter && activeID == "" {
		c.region.Label = c.shortLabel()
	}

	var next *tree.Node
	switch key {
	case KeyEnter:
		if activeID == "" {
			if len(c.root.Children) == 0 {
				return true
			}
			next = c.root.Children[0]
			break
		}
		n, ok := c.root.Descendants[activeID]
		if !ok {
			return true
		}
		next = n
		if len(n.Children) > 0 {
			next = n.Children[0]
		}

	case KeyEscape:
		if activeID == "" {
			c.region.Label = c.label()
			return true
		}
		n, ok := c.root.Descendants[activeID]
		if !ok {
			return true
		}
		if n.Parent == nil || n.Parent.IsRoot() {
			c.toTop()
			return true
		}
		next = n.Parent

	default:
		if activeID == "" {
			return true
		}
		n, ok := c.root.Descendants[activeID]
		if !ok {
			return true
		}
		next = neighbor(n, key)
		if next == nil {
			next = n
		}
	}

	c.logDebug("navigate", "key", key, "from", activeID, "to", next.ID())
	c.activate(next)
	return true
}

func neighbor(n *tree.Node, key string) *tree.Node {
	switch key {
	case KeyArrowLeft:
		return n.Left
	case KeyArrowRight:
		return n.Right
	case KeyArrowUp:
		return n.Up
	case KeyArrowDown:
		return n.Down
	}
	return nil
}

func control(n *tree.Node) Control {
	return Control{ID: n.ControlID(), Role: "img", Label: n.Label}
}

func (c *Controller) activate(n *tree.Node) {
	c.region.Controls = c.region.Controls[:0]
	if n.Left != nil && n.Left != n.Right {
		c.region.Controls = append(c.region.Controls, control(n.Left))
	}
	c.region.Controls = append(c.region.Controls, control(n))
	if n.Right != nil && n.Right != n {
		c.region.Controls = append(c.region.Controls, control(n.Right))
	}
	c.region.ActiveDescendant = n.ControlID()

	if box, ok := n.BoundingBox(c.opts.Layout); ok {
		c.showRing(box)
	}
	c.setDebug(n)
}

// toTop leaves drill-down and returns to the chart as a whole
func (c *Controller) toTop() {
	c.region.ActiveDescendant = ""
	c.region.Controls = nil
	c.region.Label = c.label()
	c.focusChart()
	c.setDebug(nil)
}

func (c *Controller) chartBox() (model.Rect, bool) {
	if c.opts.Layout == nil || c.opts.ChartElementID == "" {
		return model.Rect{}, false
	}
	return c.opts.Layout.Rect(c.opts.ChartElementID)
}

func (c *Controller) focusChart() {
	if box, ok := c.chartBox(); ok {
		c.showRing(box)
	}
}

func (c *Controller) showRing(box model.Rect) {
	if origin, ok := c.chartBox(); ok {
		box = box.RelativeTo(origin)
	}
	c.ring.Rect = box
	c.ring.Visible = true
}

func (c *Controller) setDebug(n *tree.Node) {
	if !c.opts.Debug {
		return
	}
	if n == nil {
		c.debug = "No element selected"
		return
	}
	c.debug = "Announced by screen readers: " + n.Label
}

// HandleFocus shows the focus ring around the whole chart
func (c *Controller) HandleFocus() {
	if c.destroyed {
		return
	}
	c.focused = true
	c.focusChart()
}

// HandleBlur resets the region: no controls, no active element, hidden
// ring, full label
func (c *Controller) HandleBlur() {
	if c.destroyed {
		return
	}
	c.focused = false
	c.region.Controls = nil
	c.region.ActiveDescendant = ""
	c.region.Label = c.label()
	c.ring.Visible = false
	c.setDebug(nil)
}

// Destroy detaches the controller; later events are ignored
func (c *Controller) Destroy() {
	c.destroyed = true
	c.focused = false
}

// Destroyed reports whether Destroy was called
func (c *Controller) Destroyed() bool {
	return c.destroyed
}

// ActiveID returns the id of the active node, empty when none
func (c *Controller) ActiveID() string {
	if c.region.ActiveDescendant == "" {
		return ""
	}
	return tree.NodeIDFromControl(c.region.ActiveDescendant)
}

// Active returns the active node of the current tree
func (c *Controller) Active() (*tree.Node, bool) {
	id := c.ActiveID()
	if id == "" || c.root == nil {
		return nil, false
	}
	n, ok := c.root.Descendants[id]
	return n, ok
}

// State derives the navigation state
func (c *Controller) State() State {
	switch {
	case c.ActiveID() != "":
		return StateActive
	case c.focused:
		return StateFocusedRoot
	}
	return StateIdle
}

// Region returns a snapshot of the application region
func (c *Controller) Region() Region {
	r := c.region
	r.Controls = append([]Control(nil), c.region.Controls...)
	return r
}

// FocusRing returns the current focus ring
func (c *Controller) FocusRing() FocusRing {
	return c.ring
}

// Features returns the summary of the current tree
func (c *Controller) Features() tree.Features {
	return c.features
}

// Tree returns the current tree, nil before the first Update
func (c *Controller) Tree() *tree.Node {
	return c.root
}

// DebugLine is the announcement shown in debug mode, empty otherwise
func (c *Controller) DebugLine() string {
	return c.debug
}
