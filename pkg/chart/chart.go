// Package chart mounts the accessible layer onto a chart host node and
// keeps it in sync with the document. Every committed mutation batch is
// applied by one reconciliation goroutine; key, focus and blur events are
// serialized with it through the chart lock.
package chart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/controller"
	"github.com/Dicklesworthstone/friendly_charts/pkg/describe"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
	"github.com/Dicklesworthstone/friendly_charts/pkg/tree"
)

// ErrUnsupportedHost is returned by Mount when the host node is missing or
// is an SVG element
var ErrUnsupportedHost = errors.New("unsupported chart host")

// Options configures a mounted chart. Title, Subtitle, Summary, Purpose,
// Description and Context may be selectors resolved against the host.
type Options struct {
	Title       string
	Subtitle    string
	Summary     string
	Purpose     string
	Description string
	Context     string
	Type        model.ChartType

	// Locale defaults to en-US
	Locale *locale.Locale
	// Axes are described in addition to the axes annotated in the document
	Axes []model.Axis
	// Layout resolves element boxes; defaults to the document bounds
	Layout annotation.Layout

	Debug    bool
	Reporter diag.Reporter
	Logger   *log.Logger
}

// Chart is the accessible layer of one host node
type Chart struct {
	id       string
	doc      *annotation.Document
	host     *annotation.Node
	opts     Options
	loc      *locale.Locale
	reporter diag.Reporter

	mu        sync.Mutex
	desc      *describe.Description
	root      *tree.Node
	ctrl      *controller.Controller
	rebuilds  int
	destroyed bool

	sub     *annotation.Subscription
	updates chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Mount attaches the accessible layer to the node with id hostID. Host
// content is hidden from assistive technology, the instructions section is
// built and, when the chart has symbols, the navigation controller is
// created. Later commits to doc are reconciled until Destroy.
func Mount(doc *annotation.Document, hostID string, opts Options) (*Chart, error) {
	host, ok := doc.ByID(hostID)
	if !ok {
		return nil, fmt.Errorf("%w: no element with id #%s", ErrUnsupportedHost, hostID)
	}
	if host.IsSVG() {
		return nil, fmt.Errorf("%w: friendly.chart applied to an SVG element (#%s). Apply friendly.chart to a wrapper HTML instead", ErrUnsupportedHost, hostID)
	}

	loc := opts.Locale
	if loc == nil {
		loc = locale.Default()
	}
	if opts.Layout == nil {
		opts.Layout = doc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	c := &Chart{
		id:       model.UniqueID(),
		doc:      doc,
		host:     host,
		opts:     opts,
		loc:      loc,
		reporter: diag.Or(opts.Reporter),
		updates:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	for _, n := range host.Descendants() {
		doc.SetAttr(n, "role", "presentation")
		doc.SetAttr(n, "aria-hidden", "true")
	}

	c.desc = describe.New(host, c.id, describe.Options{
		Title:       opts.Title,
		Subtitle:    opts.Subtitle,
		Summary:     opts.Summary,
		Purpose:     opts.Purpose,
		Description: opts.Description,
		Context:     opts.Context,
		ChartType:   opts.Type,
	}, loc, c.reporter)

	// subscribe before reading so no commit falls between the two
	c.sub = doc.Subscribe()

	axes := c.readAxes()
	elements, symbols := c.readElements()
	if symbols > 0 {
		if len(axes) == 0 {
			c.reporter.Warn("No axis is specified.", "")
		}
		c.rebuild(elements, symbols)
	}
	if len(axes) > 0 {
		c.desc.UpdateAxes(axes)
	}

	c.wg.Add(1)
	go c.reconcile()
	return c, nil
}

// ID returns the generated chart id
func (c *Chart) ID() string {
	return c.id
}

// HostID returns the id of the host node
func (c *Chart) HostID() string {
	return c.host.ID()
}

// readAxes collects annotated axes below the host followed by the axes
// passed in Options
func (c *Chart) readAxes() []model.Axis {
	var axes []model.Axis
	for _, n := range annotation.FindByKind(c.host, model.KindAxis) {
		e, err := annotation.Decode(n)
		if err != nil {
			c.reporter.Warn(err.Error(), "")
			continue
		}
		axes = append(axes, e.(model.Axis))
	}
	return append(axes, c.opts.Axes...)
}

// readElements decodes every group and symbol below the host. A missing or
// dangling parent id falls back to the closest enclosing group node.
func (c *Chart) readElements() ([]model.Element, int) {
	var out []model.Element
	symbols := 0
	for _, kind := range []model.Kind{model.KindGroup, model.KindSymbol} {
		for _, n := range annotation.FindByKind(c.host, kind) {
			e, err := annotation.Decode(n)
			if err != nil {
				c.reporter.Warn(err.Error(), "")
				continue
			}
			if e.ID() == "" {
				// marked through the kind attribute alone
				if e, err = c.assignID(n, kind); err != nil {
					c.reporter.Warn(err.Error(), "")
					continue
				}
			}
			if parent := e.ParentID(); parent == "" || !c.parentExists(parent) {
				id := ""
				if g := annotation.Closest(n, model.KindGroup); g != nil {
					id = g.ID()
				}
				e = model.WithParent(e, id)
			}
			if kind == model.KindSymbol {
				symbols++
			}
			out = append(out, e)
		}
	}
	return out, symbols
}

// assignID gives an annotated node without any id a generated one and
// decodes it again
func (c *Chart) assignID(n *annotation.Node, kind model.Kind) (model.Element, error) {
	id := model.JoinID("friendly", string(kind), model.UniqueID())
	if err := c.doc.SetID(n, id); err != nil {
		return nil, err
	}
	return annotation.Decode(n)
}

func (c *Chart) parentExists(id string) bool {
	if _, ok := c.doc.ByID(id); ok {
		return true
	}
	c.reporter.Warn(
		fmt.Sprintf("No element with id #%s exists.", id),
		fmt.Sprintf("Make sure to pass \"%s\" as `id` to a group or symbol.", id),
	)
	return false
}

// rebuild replaces the tree. The controller is created the first time the
// chart has symbols. Caller holds mu or is Mount.
func (c *Chart) rebuild(elements []model.Element, symbols int) {
	root := tree.Build(elements, c.loc, c.reporter)
	c.root = root
	c.rebuilds++
	c.desc.UpdateTree(root)

	if c.ctrl == nil {
		if symbols == 0 {
			return
		}
		c.ctrl = controller.New(controller.Options{
			Title:          c.desc.Title,
			Subtitle:       c.desc.Subtitle,
			ChartID:        c.id,
			ChartType:      c.opts.Type,
			Strings:        c.loc.Controller,
			Layout:         c.opts.Layout,
			ChartElementID: c.host.ID(),
			FocusElementID: c.focusElementID(),
			DescribedBy:    c.desc.KeyboardInstructionsID(),
			Debug:          c.opts.Debug,
			Logger:         c.opts.Logger,
		})
	}
	c.ctrl.Update(root)
}

// focusElementID returns the id of the custom focus element, if the host
// contains one. An element without id gets one.
func (c *Chart) focusElementID() string {
	nodes := annotation.FindByKind(c.host, model.KindFocus)
	if len(nodes) == 0 {
		return ""
	}
	n := nodes[0]
	if n.ID() == "" {
		if err := c.doc.SetID(n, model.JoinID("friendly-focus-element", c.id)); err != nil {
			c.reporter.Warn(err.Error(), "")
			return ""
		}
	}
	return n.ID()
}
