package locale

import (
	"fmt"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

func enChartName(t model.ChartType) string {
	switch t {
	case model.ChartBar:
		return "bar chart"
	case model.ChartLine:
		return "line chart"
	case model.ChartScatter:
		return "scatter plot"
	case model.ChartSlope:
		return "slope chart"
	case model.ChartArea:
		return "area chart"
	case model.ChartSankey:
		return "sankey diagram"
	}
	return "chart"
}

func enSymbolName(t string, plural bool) string {
	var one, many string
	switch model.SymbolType(t) {
	case model.SymbolBar:
		one, many = "bar", "bars"
	case model.SymbolLine:
		one, many = "line", "lines"
	case model.SymbolPoint:
		one, many = "point", "points"
	case model.SymbolArea:
		one, many = "area", "areas"
	default:
		one, many = "element", "elements"
	}
	if plural {
		return many
	}
	return one
}

func enGroups(n int) string {
	if n > 1 {
		return "groups"
	}
	return "group"
}

// EnUS is American English
var EnUS = &Locale{
	Tag: "en-US",

	ScreenReaderStatic: func(title string) string {
		return fmt.Sprintf("Chart titled '%s'. ", title) +
			"This section contains additional information about this chart."
	},
	ScreenReaderInteractive: func(title string, chartType model.ChartType) string {
		return fmt.Sprintf("Keyboard interactive %s, titled '%s'. ", enChartName(chartType), title) +
			"This section contains additional information about this chart. " +
			"Pressing TAB takes you to the chart area."
	},

	KeyboardInstructions: "Press ENTER on the chart area or a group to drill down a level. " +
		"Press ESCAPE to drill up a level. " +
		"Press TAB to exit the chart. " +
		"Use LEFT and RIGHT arrows to move between sibling elements. " +
		"Use UP and DOWN arrows to move across groups.",

	ChartTitle:    func(title string) string { return "Chart title: " + title },
	ChartSubtitle: func(subtitle string) string { return "Chart subtitle: " + subtitle },

	Headings: Headings{
		Purpose:                "Purpose",
		Description:            "Description",
		ChartLayoutDescription: "Chart layout description",
		KeyboardInstructions:   "Keyboard instructions",
	},

	Controller: ControllerStrings{
		Label: func(title, subtitle string) string {
			s := title + "."
			if subtitle != "" {
				s += " " + subtitle + "."
			}
			return s + " Navigate into the chart area by pressing ENTER."
		},
		ShortLabel: func(chartType model.ChartType) string {
			if chartType == "" {
				return "Interactive chart."
			}
			return "Interactive " + enChartName(chartType) + "."
		},
	},

	ChartLayout: func(chartType model.ChartType, n int) string {
		var one, many string
		switch chartType {
		case model.ChartBar:
			one, many = "a single bar", "%d bars"
		case model.ChartLine:
			one, many = "a single line", "%d lines"
		case model.ChartScatter:
			one, many = "a single data point", "%d data points"
		case model.ChartSlope:
			one, many = "a single slope", "%d slopes"
		case model.ChartArea:
			one, many = "a single area", "%d areas"
		default:
			one, many = "a single element", "%d elements"
		}
		with := one
		if n != 1 {
			with = fmt.Sprintf(many, n)
		}
		return fmt.Sprintf("This is a %s with %s.", enChartName(chartType), with)
	},

	Axis: func(a model.Axis) string {
		axis := "axis"
		if a.Direction != model.DirectionNone {
			axis = string(a.Direction) + " axis"
		}
		ticks := a.Ticks
		n := len(ticks)

		switch {
		case n > 0 && a.Type == model.AxisContinuous:
			s := fmt.Sprintf("This chart has a continuous %s, titled %s, ", axis, a.Text)
			if n == 1 {
				return s + fmt.Sprintf("with a single tick, %s.", ticks[0])
			}
			return s + fmt.Sprintf("with a range that starts with %s and ends with %s.", ticks[0], ticks[n-1])
		case n > 0 && a.Type == model.AxisCategorical:
			s := fmt.Sprintf("This chart has a categorical %s, titled %s, ", axis, a.Text)
			switch {
			case n == 1:
				return s + fmt.Sprintf("with a single tick, %s.", ticks[0])
			case n == 2:
				return s + fmt.Sprintf("with ticks %s and %s.", ticks[0], ticks[1])
			case n <= 6:
				return s + fmt.Sprintf("with ticks %s.", listToText(ticks, "and"))
			}
			return s + fmt.Sprintf("with ticks %s, and more. The last tick is %s.", listToText(ticks[:3], ""), ticks[n-1])
		}
		return fmt.Sprintf("This chart has a %s, titled %s.", axis, a.Text)
	},

	Root: func(f Facts) string {
		if f.Members == 0 {
			return "Empty chart."
		}
		if f.MemberType == MemberGroup {
			return fmt.Sprintf("This chart contains %d %s.", f.Members, enGroups(f.Members))
		}
		return fmt.Sprintf("This chart contains %d interactive %s.", f.Members, enSymbolName(f.MemberType, true))
	},

	Group: func(f Facts) string {
		var s string
		if f.Type != "" {
			s = f.Label + "."
		} else {
			s = "Group " + f.Label + "."
		}
		if f.Highlight != "" {
			s += " " + f.Highlight + "."
		}
		if f.Type != "" {
			s += fmt.Sprintf(" %s %d of %d.", capitalize(enSymbolName(string(f.Type), false)), f.Position, f.Siblings)
		}

		if f.Members == 0 {
			if f.Type != "" {
				return s + " Empty group."
			}
			return s + " Empty."
		}
		if f.Type != "" {
			s += " Group that"
		}
		if f.MemberType == MemberGroup {
			return s + fmt.Sprintf(" contains %d %s.", f.Members, enGroups(f.Members))
		}
		return s + fmt.Sprintf(" contains %d %s.", f.Members, enSymbolName(f.MemberType, f.Members > 1))
	},

	Symbol: func(f Facts) string {
		s := f.Label + "."
		if f.Highlight != "" {
			s += " " + f.Highlight + "."
		}
		return s + fmt.Sprintf(" %s %d of %d.", capitalize(enSymbolName(string(f.Type), false)), f.Position, f.Siblings)
	},
}
