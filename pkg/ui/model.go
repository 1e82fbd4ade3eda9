// Package ui is a terminal host for a mounted chart. It plays the part of
// the browser: key presses are delivered to the chart's application region
// and the region, its control elements and the instructions section are
// rendered as text.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/friendly_charts/pkg/chart"
)

// Options configures the viewer
type Options struct {
	// Source names the loaded document in the header
	Source          string
	LabelWidth      int
	Markdown        bool
	ShowDescription bool
	Theme           *Theme
	// Copy writes to the clipboard; defaults to the system clipboard
	Copy func(string) error
}

// chartUpdatedMsg is sent after the chart applied a batch of document changes
type chartUpdatedMsg struct{}

// Model is the bubbletea model of the viewer
type Model struct {
	chart *chart.Chart
	opts  Options
	theme Theme
	keys  KeyMap

	help        help.Model
	helpOverlay HelpOverlayModel
	description viewport.Model

	snapshot chart.Snapshot
	focused  bool
	status   string
	width    int
	height   int
	ready    bool
}

// NewModel creates a viewer for c
func NewModel(c *chart.Chart, opts Options) Model {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = 32
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	keys := DefaultKeyMap()
	m := Model{
		chart:       c,
		opts:        opts,
		theme:       theme,
		keys:        keys,
		help:        help.New(),
		helpOverlay: NewHelpOverlayModel(keys, theme),
		description: viewport.New(80, 10),
		snapshot:    c.Snapshot(),
	}
	m.refreshDescription()
	return m
}

// waitForUpdate blocks until the chart reconciled new document changes
func waitForUpdate(c *chart.Chart) tea.Cmd {
	return func() tea.Msg {
		<-c.Updates()
		return chartUpdatedMsg{}
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.chart)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.description.Width = msg.Width
		m.description.Height = max(msg.Height/3, 3)
		m.ready = true
		m.refreshDescription()
		return m, nil

	case chartUpdatedMsg:
		m.snapshot = m.chart.Snapshot()
		m.refreshDescription()
		m.status = "Chart updated"
		return m, waitForUpdate(m.chart)

	case tea.KeyMsg:
		if m.helpOverlay.IsVisible() {
			var cmd tea.Cmd
			m.helpOverlay, cmd = m.helpOverlay.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.description, cmd = m.description.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.focused = !m.focused
		if m.focused {
			m.chart.Focus()
		} else {
			m.chart.Blur()
		}
		m.snapshot = m.chart.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		text := m.Announcement()
		if err := m.opts.Copy(text); err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.status = "Copied announcement"
		}
		return m, nil

	case key.Matches(msg, m.keys.Description):
		m.opts.ShowDescription = !m.opts.ShowDescription
		return m, nil
	}

	if nav, ok := m.keys.navigationKey(msg); ok && m.focused {
		if m.chart.Key(nav) {
			m.snapshot = m.chart.Snapshot()
			m.status = ""
			return m, nil
		}
	}

	// unhandled keys scroll the description, like a page around the chart
	var cmd tea.Cmd
	m.description, cmd = m.description.Update(msg)
	return m, cmd
}

func (m *Model) refreshDescription() {
	content := m.chart.Instructions()
	if m.opts.Markdown {
		if rendered, err := m.chart.Render(m.description.Width); err == nil {
			content = rendered
		}
	}
	m.description.SetContent(content)
}

// Focused reports whether the application region has focus
func (m Model) Focused() bool {
	return m.focused
}

// Status returns the status line
func (m Model) Status() string {
	return m.status
}

// Announcement is what a screen reader would read for the current state:
// the active element's label, otherwise the region label.
func (m Model) Announcement() string {
	s := m.snapshot
	if s.ActiveID != "" && s.Tree != nil {
		if n, ok := s.Tree.Lookup(s.ActiveID); ok {
			return n.Label
		}
	}
	if s.Region.Label != "" {
		return s.Region.Label
	}
	if len(s.Sections) > 0 {
		return s.Sections[0].Text
	}
	return ""
}

// View implements tea.Model
func (m Model) View() string {
	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}

	var b strings.Builder
	headerStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary)
	header := "friendly charts"
	if m.opts.Source != "" {
		header += " · " + m.opts.Source
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.regionView())
	b.WriteString("\n")

	if m.snapshot.DebugLine != "" {
		b.WriteString(m.theme.Renderer.NewStyle().Faint(true).Render(m.snapshot.DebugLine))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary).Render(m.status))
		b.WriteString("\n")
	}
	if m.opts.ShowDescription {
		b.WriteString("\n")
		b.WriteString(m.description.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) regionView() string {
	s := m.snapshot
	var b strings.Builder

	if !s.Interactive {
		b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render("This chart has no interactive elements."))
		return PanelStyle.Render(b.String())
	}

	label := s.Region.Label
	if s.ActiveID == "" {
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.theme.Renderer.NewStyle().Faint(true).Render(s.Region.Text))
	} else {
		controls := make([]string, 0, len(s.Region.Controls))
		for _, c := range s.Region.Controls {
			active := c.ID == s.Region.ActiveDescendant
			controls = append(controls, RenderControl(c.Label, active, m.opts.LabelWidth, m.theme))
		}
		b.WriteString(strings.Join(controls, " "))
		if n, ok := s.Tree.Lookup(s.ActiveID); ok {
			b.WriteString("\n")
			b.WriteString(RenderKindBadge(n.Kind()))
			b.WriteString(" ")
			b.WriteString(n.Label)
		}
	}

	if s.FocusRing.Visible {
		r := s.FocusRing.Rect
		b.WriteString("\n")
		b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary).Render(
			fmt.Sprintf("focus ring at %.0f,%.0f %.0f×%.0f", r.Left, r.Top, r.Width, r.Height)))
	}

	if m.focused {
		return FocusedPanelStyle.Render(b.String())
	}
	return PanelStyle.Render(b.String())
}
