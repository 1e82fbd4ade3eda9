package annotation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

const (
	// AttrPrefix namespaces every structured-data attribute
	AttrPrefix = "friendly-"

	// KindAttr is the reserved attribute holding a node's kind
	KindAttr = AttrPrefix + "element"
)

// Attr returns the raw value of an attribute
func (n *Node) Attr(name string) (string, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	v, ok := n.attrs[name]
	return v, ok
}

// Kind returns the friendly-element marker of n, empty when unannotated
func (n *Node) Kind() model.Kind {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return model.Kind(n.attrs[KindAttr])
}

// SetAttr writes a raw attribute value. Writes to the kind marker are
// recorded as mutations.
func (d *Document) SetAttr(n *Node, name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setAttr(n, name, value)
}

func (d *Document) setAttr(n *Node, name, value string) {
	old, existed := n.attrs[name]
	if !existed {
		n.attrKeys = append(n.attrKeys, name)
	}
	n.attrs[name] = value

	if name == KindAttr {
		d.pending = append(d.pending, Mutation{
			Type:    MutationAttribute,
			NodeID:  n.id,
			OldKind: model.Kind(old),
			NewKind: model.Kind(value),
		})
	}
}

// RemoveAttr deletes an attribute
func (d *Document) RemoveAttr(n *Node, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	old, existed := n.attrs[name]
	if !existed {
		return
	}
	delete(n.attrs, name)
	for i, k := range n.attrKeys {
		if k == name {
			n.attrKeys = append(n.attrKeys[:i:i], n.attrKeys[i+1:]...)
			break
		}
	}
	if name == KindAttr {
		d.pending = append(d.pending, Mutation{
			Type:    MutationAttribute,
			NodeID:  n.id,
			OldKind: model.Kind(old),
		})
	}
}

// ReadData collects all friendly-* attributes of n with the prefix stripped.
// Values that parse as JSON are decoded; anything else stays a raw string.
func ReadData(n *Node) map[string]any {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return readData(n)
}

func readData(n *Node) map[string]any {
	data := make(map[string]any)
	for _, name := range n.attrKeys {
		raw := n.attrs[name]
		if !strings.HasPrefix(name, AttrPrefix) || raw == "" {
			continue
		}
		data[strings.TrimPrefix(name, AttrPrefix)] = decodeValue(raw)
	}
	return data
}

func decodeValue(raw string) any {
	if !gjson.Valid(raw) {
		return raw
	}
	return gjson.Parse(raw).Value()
}

// WriteData stores data on n under the friendly- namespace. Strings are
// written raw unless they would read back as another JSON value, everything
// else as JSON. Keys are written in sorted order so
// the kind marker mutation is recorded after the payload.
func (d *Document) WriteData(n *Node, data map[string]any) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// element last: observers see a complete record
		if keys[i] == "element" {
			return false
		}
		if keys[j] == "element" {
			return true
		}
		return keys[i] < keys[j]
	})

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, k := range keys {
		v := data[k]
		var encoded string
		switch value := v.(type) {
		case string:
			encoded = encodeString(value)
		case fmt.Stringer:
			encoded = encodeString(value.String())
		default:
			b, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", k, err)
			}
			encoded = string(b)
		}
		d.setAttr(n, AttrPrefix+k, encoded)
	}
	return nil
}

// encodeString keeps s a string under JSON auto-detection: "1.50" or "null"
// are quoted, plain text stays raw
func encodeString(s string) string {
	if !gjson.Valid(s) {
		return s
	}
	if v, ok := gjson.Parse(s).Value().(string); ok && v == s {
		return s
	}
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	return string(b)
}

// Closest returns the nearest ancestor of n (excluding n) annotated as kind
func Closest(n *Node, kind model.Kind) *Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	for p := n.parent; p != nil; p = p.parent {
		if model.Kind(p.attrs[KindAttr]) == kind {
			return p
		}
	}
	return nil
}

// FindByKind returns every node below scope annotated as kind, in document order
func FindByKind(scope *Node, kind model.Kind) []*Node {
	scope.doc.mu.RLock()
	defer scope.doc.mu.RUnlock()

	var out []*Node
	walkDescendants(scope, func(c *Node) {
		if model.Kind(c.attrs[KindAttr]) == kind {
			out = append(out, c)
		}
	})
	return out
}

// Decode converts the structured data of an annotated node into its element
// variant. Focus markers and unannotated nodes are rejected.
func Decode(n *Node) (model.Element, error) {
	data := ReadData(n)
	kind := model.Kind(stringValue(data["element"]))

	switch kind {
	case model.KindAxis:
		axis := model.Axis{
			AxisID:    stringValue(data["id"]),
			Text:      stringValue(data["label"]),
			Direction: model.AxisDirection(stringValue(data["direction"])),
			Type:      model.AxisType(stringValue(data["type"])),
			Ticks:     stringsValue(data["ticks"]),
		}
		if axis.AxisID == "" {
			axis.AxisID = n.ID()
		}
		return axis, nil
	case model.KindGroup:
		return model.Group{
			GroupID: firstNonEmpty(stringValue(data["id"]), n.ID()),
			Type:    model.SymbolType(stringValue(data["type"])),
			Text:    stringValue(data["label"]),
			Note:    stringValue(data["highlight"]),
			Parent:  stringValue(data["parentId"]),
			Pos:     floatValue(data["position"]),
		}, nil
	case model.KindSymbol:
		return model.Symbol{
			SymbolID: firstNonEmpty(stringValue(data["id"]), n.ID()),
			Type:     model.SymbolType(stringValue(data["type"])),
			Text:     stringValue(data["label"]),
			Note:     stringValue(data["highlight"]),
			Parent:   stringValue(data["parentId"]),
			Pos:      floatValue(data["position"]),
		}, nil
	case "":
		return nil, fmt.Errorf("node %q is not annotated", n.ID())
	}
	return nil, fmt.Errorf("unknown %s value: %s", KindAttr, kind)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func stringValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func floatValue(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func stringsValue(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s := stringValue(v); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringValue(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
