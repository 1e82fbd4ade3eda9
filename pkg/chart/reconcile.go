package chart

import (
	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/controller"
	"github.com/Dicklesworthstone/friendly_charts/pkg/describe"
	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
	"github.com/Dicklesworthstone/friendly_charts/pkg/tree"
)

// dirty tells which derived state a batch invalidates
type dirty struct {
	axis bool
	tree bool
}

func classify(b annotation.Batch) dirty {
	var d dirty
	for _, m := range b {
		if m.Touches(model.KindAxis) {
			d.axis = true
		}
		if m.Touches(model.KindGroup) || m.Touches(model.KindSymbol) {
			d.tree = true
		}
	}
	return d
}

func (c *Chart) reconcile() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case <-c.sub.Ready():
			if c.drain() {
				c.notify()
			}
		}
	}
}

// drain applies every queued batch under the chart lock. Draining and
// applying under the same lock is what lets Flush wait for batches the
// loop already picked up.
func (c *Chart) drain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return false
	}
	applied := false
	for _, b := range c.sub.Drain() {
		c.apply(b)
		applied = true
	}
	return applied
}

// apply rebuilds what the batch invalidated: at most one axis refresh and
// one tree rebuild
func (c *Chart) apply(b annotation.Batch) {
	d := classify(b)
	if d.axis {
		c.desc.UpdateAxes(c.readAxes())
	}
	if d.tree {
		elements, symbols := c.readElements()
		c.rebuild(elements, symbols)
	}
	c.opts.Logger.Debug("batch applied", "chart", c.id, "mutations", len(b), "axis", d.axis, "tree", d.tree)
}

func (c *Chart) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Updates is signalled after the reconciliation loop applied new batches
func (c *Chart) Updates() <-chan struct{} {
	return c.updates
}

// Flush applies every batch committed so far before returning
func (c *Chart) Flush() {
	if c.drain() {
		c.notify()
	}
}

// Key delivers a key press to the controller. It returns false when the key
// was not handled and the host should apply its default behavior.
func (c *Chart) Key(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || c.ctrl == nil {
		return false
	}
	return c.ctrl.HandleKey(key)
}

// Focus is called when the application region gains focus
func (c *Chart) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || c.ctrl == nil {
		return
	}
	c.ctrl.HandleFocus()
}

// Blur is called when the application region loses focus
func (c *Chart) Blur() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || c.ctrl == nil {
		return
	}
	c.ctrl.HandleBlur()
}

// Destroy unsubscribes from the document, stops the reconciliation loop and
// detaches the controller. Safe to call more than once.
func (c *Chart) Destroy() {
	c.once.Do(func() {
		c.mu.Lock()
		c.destroyed = true
		c.mu.Unlock()

		c.sub.Close()
		close(c.done)
		c.wg.Wait()

		c.mu.Lock()
		if c.ctrl != nil {
			c.ctrl.Destroy()
		}
		c.mu.Unlock()
	})
}

// Destroyed reports whether Destroy was called
func (c *Chart) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Snapshot is a consistent view of the chart state for rendering
type Snapshot struct {
	ChartID     string
	Interactive bool
	Region      controller.Region
	FocusRing   controller.FocusRing
	State       controller.State
	ActiveID    string
	DebugLine   string
	// Tree is never mutated after it is built and may be read freely
	Tree     *tree.Node
	Sections []describe.Section
	Rebuilds int
}

// Snapshot captures the current state
func (c *Chart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		ChartID:  c.id,
		Tree:     c.root,
		Sections: c.desc.Sections(),
		Rebuilds: c.rebuilds,
	}
	if c.ctrl != nil {
		s.Interactive = true
		s.Region = c.ctrl.Region()
		s.FocusRing = c.ctrl.FocusRing()
		s.State = c.ctrl.State()
		s.ActiveID = c.ctrl.ActiveID()
		s.DebugLine = c.ctrl.DebugLine()
	}
	return s
}

// Instructions renders the instructions section as plain text
func (c *Chart) Instructions() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc.Text()
}

// Markdown renders the instructions section as markdown
func (c *Chart) Markdown() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc.Markdown()
}

// Render renders the instructions section for a terminal of the given width
func (c *Chart) Render(width int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc.Render(width)
}
