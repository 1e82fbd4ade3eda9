package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")

	// Element kind colors
	ColorKindGroup  = lipgloss.Color("#BD93F9")
	ColorKindSymbol = lipgloss.Color("#50FA7B")
	ColorKindRoot   = lipgloss.Color("#8BE9FD")
)

// Theme bundles the adaptive colors of the viewer
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
}

// DefaultTheme returns the theme for the default renderer
func DefaultTheme() Theme {
	return Theme{
		Renderer:  lipgloss.DefaultRenderer(),
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0FF", Dark: "#44475A"},
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the style of the application region while unfocused
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style of the focused application region
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// RenderKindBadge returns a short badge for an element kind
func RenderKindBadge(kind model.Kind) string {
	var fg lipgloss.Color
	var label string

	switch kind {
	case model.KindRoot:
		fg, label = ColorKindRoot, "CHRT"
	case model.KindGroup:
		fg, label = ColorKindGroup, "GRP "
	case model.KindSymbol:
		fg, label = ColorKindSymbol, "SYM "
	default:
		fg, label = ColorMuted, "????"
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(ColorBgSubtle).
		Bold(true).
		Render(label)
}

// Truncate shortens s to at most width terminal cells, marking the cut
// with an ellipsis. Wide runes count double.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// RenderControl renders one control element of the region. The active
// control is highlighted.
func RenderControl(label string, active bool, width int, t Theme) string {
	style := t.Renderer.NewStyle().Padding(0, 1)
	if active {
		style = style.Bold(true).Foreground(t.Primary).Background(t.Highlight)
	} else {
		style = style.Foreground(t.Subtext)
	}
	return style.Render(Truncate(label, width))
}
