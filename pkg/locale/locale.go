// Package locale turns structural facts about charts and tree nodes into
// announcement text. Each Locale is a complete string set; the tree builder
// and controller never embed language-specific text themselves.
package locale

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// MemberGroup is the member type of a node whose first child is an untyped group
const MemberGroup = "group"

// Facts are the structural facts the tree builder knows about a node
type Facts struct {
	Kind      model.Kind
	Label     string
	Type      model.SymbolType
	Highlight string

	// Position is the 1-based index among siblings
	Position int
	Siblings int

	Members int
	// MemberType is MemberGroup, a symbol type, or "" when there are no members
	MemberType string
}

// Labeler produces the announcement of a node
type Labeler interface {
	Label(f Facts) string
}

// LabelerFunc adapts a function to Labeler
type LabelerFunc func(f Facts) string

func (fn LabelerFunc) Label(f Facts) string { return fn(f) }

// Headings are section headings of the chart description
type Headings struct {
	Purpose                string
	Description            string
	ChartLayoutDescription string
	KeyboardInstructions   string
}

// ControllerStrings are the accessible names of the navigation region
type ControllerStrings struct {
	// Label is the full announcement; subtitle may be empty
	Label func(title, subtitle string) string
	// ShortLabel names the interactive chart; chartType is empty when unknown
	ShortLabel func(chartType model.ChartType) string
}

// Locale is a complete string set
type Locale struct {
	Tag string

	ScreenReaderStatic      func(title string) string
	ScreenReaderInteractive func(title string, chartType model.ChartType) string
	KeyboardInstructions    string
	ChartTitle              func(title string) string
	ChartSubtitle           func(subtitle string) string
	Headings                Headings
	Controller              ControllerStrings
	ChartLayout             func(chartType model.ChartType, elements int) string
	Axis                    func(axis model.Axis) string

	Root   func(f Facts) string
	Group  func(f Facts) string
	Symbol func(f Facts) string
}

// Label implements Labeler by dispatching on the node kind
func (l *Locale) Label(f Facts) string {
	switch f.Kind {
	case model.KindRoot:
		return l.Root(f)
	case model.KindGroup:
		return l.Group(f)
	case model.KindSymbol:
		return l.Symbol(f)
	}
	return f.Label
}

var locales = map[string]*Locale{
	"en-us": EnUS,
	"de-de": DeDE,
}

// Lookup finds a locale by language tag. "de", "de_DE" and "DE-de" all
// resolve to German.
func Lookup(tag string) (*Locale, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if l, ok := locales[key]; ok {
		return l, true
	}
	lang, _, _ := strings.Cut(key, "-")
	for k, l := range locales {
		if strings.HasPrefix(k, lang+"-") {
			return l, true
		}
	}
	return nil, false
}

// Default is the locale used when none is configured
func Default() *Locale {
	return EnUS
}

// Tags lists the supported language tags
func Tags() []string {
	return []string{EnUS.Tag, DeDE.Tag}
}

// listToText joins items as "a, b and c", or "a, b, c" when and is empty
func listToText(items []string, and string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	if and == "" {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + and + " " + items[len(items)-1]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
