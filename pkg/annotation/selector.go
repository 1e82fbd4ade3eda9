package annotation

import (
	"fmt"
	"regexp"
	"strings"
)

var selectorPattern = regexp.MustCompile(`^[#.\[:].+$`)

// IsSelector reports whether s should be resolved against the document
// instead of being used as literal text. Selectors start with # . [ or :
func IsSelector(s string) bool {
	return selectorPattern.MatchString(strings.TrimSpace(s))
}

// compound is one whitespace-separated part of a selector
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

func (c compound) matches(n *Node) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, n.tag) {
		return false
	}
	if c.id != "" && c.id != n.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(n.attrs["class"])
		for _, want := range c.classes {
			found := false
			for _, h := range have {
				if h == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		v, ok := n.attrs[a.name]
		if a.name == "id" {
			v, ok = n.id, n.id != ""
		}
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// parseSelector supports tag, #id, .class, [attr] and [attr=value] compounds
// joined by descendant combinators. Pseudo-classes and other combinators are
// rejected.
func parseSelector(selector string) ([]compound, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("empty selector")
	}

	var parts []compound
	for _, field := range splitOutsideBrackets(selector) {
		c, err := parseCompound(field)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
		}
		parts = append(parts, c)
	}
	return parts, nil
}

func splitOutsideBrackets(s string) []string {
	var fields []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && (isIdentByte(s[i]) || s[i] == '*') {
		if s[i] == '*' {
			c.tag = "*"
			i++
		} else {
			c.tag = readIdent()
		}
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			id := readIdent()
			if id == "" {
				return c, fmt.Errorf("empty id")
			}
			c.id = id
		case '.':
			i++
			class := readIdent()
			if class == "" {
				return c, fmt.Errorf("empty class")
			}
			c.classes = append(c.classes, class)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute")
			}
			m, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, m)
			i += end + 1
		case ':':
			return c, fmt.Errorf("pseudo-classes are not supported")
		default:
			return c, fmt.Errorf("unexpected %q", s[i])
		}
	}
	return c, nil
}

func parseAttr(body string) (attrMatch, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrMatch{}, fmt.Errorf("empty attribute name")
	}
	for j := 0; j < len(name); j++ {
		if !isIdentByte(name[j]) {
			return attrMatch{}, fmt.Errorf("invalid attribute name %q", name)
		}
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return attrMatch{name: name, value: value, hasValue: hasValue}, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matchChain checks the last compound against n and the rest against its ancestors below scope
func matchChain(parts []compound, n, scope *Node) bool {
	last := len(parts) - 1
	if !parts[last].matches(n) {
		return false
	}
	k := last - 1
	for p := n.parent; k >= 0 && p != nil && p != scope; p = p.parent {
		if parts[k].matches(p) {
			k--
		}
	}
	return k < 0
}

// QuerySelectorAll returns every node below scope matching selector, in document order
func QuerySelectorAll(scope *Node, selector string) ([]*Node, error) {
	parts, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	scope.doc.mu.RLock()
	defer scope.doc.mu.RUnlock()

	var out []*Node
	walkDescendants(scope, func(c *Node) {
		if matchChain(parts, c, scope) {
			out = append(out, c)
		}
	})
	return out, nil
}

// QuerySelector returns the first node below scope matching selector, or nil
func QuerySelector(scope *Node, selector string) (*Node, error) {
	all, err := QuerySelectorAll(scope, selector)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}
