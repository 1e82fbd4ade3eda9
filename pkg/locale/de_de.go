package locale

import (
	"fmt"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

func deChartName(t model.ChartType) string {
	switch t {
	case model.ChartBar:
		return "Balkendiagramm"
	case model.ChartLine:
		return "Liniendiagramm"
	case model.ChartScatter:
		return "Streudiagramm"
	case model.ChartSlope:
		return "Steigungsdiagramm"
	case model.ChartArea:
		return "Flächendiagramm"
	case model.ChartSankey:
		return "Sankey-Diagramm"
	}
	return "Diagramm"
}

func deSymbolName(t string, plural bool) string {
	var one, many string
	switch model.SymbolType(t) {
	case model.SymbolBar:
		one, many = "Balken", "Balken"
	case model.SymbolLine:
		one, many = "Linie", "Linien"
	case model.SymbolPoint:
		one, many = "Punkt", "Datenpunkten"
	case model.SymbolArea:
		one, many = "Fläche", "Flächen"
	default:
		one, many = "Element", "Elementen"
	}
	if plural {
		return many
	}
	return one
}

func deGroups(n int) string {
	if n > 1 {
		return "Gruppen"
	}
	return "Gruppe"
}

// DeDE is German
var DeDE = &Locale{
	Tag: "de-DE",

	ScreenReaderStatic: func(title string) string {
		return fmt.Sprintf("Chart mit Titel '%s'. ", title) +
			"Dieser Abschnitt enthält mehr Informationen über den Chart."
	},
	ScreenReaderInteractive: func(title string, chartType model.ChartType) string {
		return fmt.Sprintf("Tastatur-bedienbares %s mit Titel '%s'. ", deChartName(chartType), title) +
			"Dieser Abschnitt enthält mehr Informationen über den Chart. " +
			"Die TAB-Taste führt in den Chart Bereich."
	},

	KeyboardInstructions: "Drücke ENTER auf dem Chart oder einer Gruppe, um ein Level nach unten zu steigen. " +
		"Drücke ESCAPE, um ein Level nach oben zu steigen. " +
		"Drücke TAB, um den Chart zu verlassen. " +
		"Nutze LINKS und RECHTS Pfeile, um benachbarten Elemente zu besuchen. " +
		"Nutze OBEN und UNTEN Pfeile, um zwischen Gruppen zu wechseln.",

	ChartTitle:    func(title string) string { return "Chart Titel: " + title },
	ChartSubtitle: func(subtitle string) string { return "Chart Untertitel: " + subtitle },

	Headings: Headings{
		Purpose:                "Zweck",
		Description:            "Beschreibung",
		ChartLayoutDescription: "Beschreibung des Chart Layouts",
		KeyboardInstructions:   "Erläuterungen zur Tastaturbedienung",
	},

	Controller: ControllerStrings{
		Label: func(title, subtitle string) string {
			s := title + "."
			if subtitle != "" {
				s += " " + subtitle + "."
			}
			return s + " Die ENTER-Taste führt in den Chart Bereich."
		},
		ShortLabel: func(chartType model.ChartType) string {
			if chartType == "" {
				return "Interaktives Diagramm."
			}
			return "Interaktives " + deChartName(chartType) + "."
		},
	},

	ChartLayout: func(chartType model.ChartType, n int) string {
		s := fmt.Sprintf("Dies ist ein %s ", deChartName(chartType))
		var one, many string
		switch chartType {
		case model.ChartBar:
			one, many = "mit einem Balken.", "mit %d Balken."
		case model.ChartLine, model.ChartSlope:
			one, many = "mit einer Linie.", "mit %d Linien."
		case model.ChartScatter:
			one, many = "mit einem Datenpunkt.", "mit %d Datenpunkten."
		case model.ChartArea:
			one, many = "mit einer Fläche.", "mit %d Flächen."
		default:
			one, many = "mit einem Element.", "mit %d Elementen."
		}
		if n == 1 {
			return s + one
		}
		return s + fmt.Sprintf(many, n)
	},

	Axis: func(a model.Axis) string {
		axis := "Achse"
		if a.Direction != model.DirectionNone {
			axis = string(a.Direction) + "-Achse"
		}
		ticks := a.Ticks
		n := len(ticks)

		switch {
		case n > 0 && a.Type == model.AxisContinuous:
			s := fmt.Sprintf("Dieser Chart hat eine %s mit Titel %s, ", axis, a.Text)
			if n == 1 {
				return s + fmt.Sprintf("mit einem Wert, %s.", ticks[0])
			}
			return s + fmt.Sprintf("die mit %s beginnt und mit %s endet.", ticks[0], ticks[n-1])
		case n > 0 && a.Type == model.AxisCategorical:
			s := fmt.Sprintf("Dieser Chart hat eine kategorische %s mit Titel %s, ", axis, a.Text)
			switch {
			case n == 1:
				return s + fmt.Sprintf("mit einem Wert, %s.", ticks[0])
			case n == 2:
				return s + fmt.Sprintf("mit Werten %s und %s.", ticks[0], ticks[1])
			case n <= 6:
				return s + fmt.Sprintf("mit Werten %s.", listToText(ticks, "und"))
			}
			return s + fmt.Sprintf("mit Werten %s, und mehr. Der letzte Wert ist %s.", listToText(ticks[:3], ""), ticks[n-1])
		}
		return fmt.Sprintf("Dieser Chart hat eine %s mit Titel %s.", axis, a.Text)
	},

	Root: func(f Facts) string {
		if f.Members == 0 {
			return "Leerer Chart."
		}
		if f.MemberType == MemberGroup {
			return fmt.Sprintf("Dieser Chart enthält %d %s.", f.Members, deGroups(f.Members))
		}
		return fmt.Sprintf("Dieser Chart enthält %d interaktive %s.", f.Members, deSymbolName(f.MemberType, true))
	},

	Group: func(f Facts) string {
		var s string
		if f.Type != "" {
			s = f.Label + "."
		} else {
			s = "Gruppe " + f.Label + "."
		}
		if f.Highlight != "" {
			s += " " + f.Highlight + "."
		}
		if f.Type != "" {
			s += fmt.Sprintf(" %s %d von %d.", deSymbolName(string(f.Type), false), f.Position, f.Siblings)
		}

		if f.Members == 0 {
			if f.Type != "" {
				return s + " Leere Gruppe."
			}
			return s + " Leer."
		}

		members := deSymbolName(f.MemberType, f.Members > 1)
		if f.MemberType == MemberGroup {
			members = deGroups(f.Members)
		}
		if f.Type != "" {
			return s + fmt.Sprintf(" Gruppe, die %d %s enthält.", f.Members, members)
		}
		return s + fmt.Sprintf(" Enthält %d %s.", f.Members, members)
	},

	Symbol: func(f Facts) string {
		s := f.Label + "."
		if f.Highlight != "" {
			s += " " + f.Highlight + "."
		}
		return s + fmt.Sprintf(" %s %d von %d.", capitalize(deSymbolName(string(f.Type), false)), f.Position, f.Siblings)
	},
}
