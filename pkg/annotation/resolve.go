package annotation

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
)

// ResolveText returns value as is, or the trimmed text content of the first
// node below scope it selects. Missing targets and bad selectors are reported
// and resolve to "".
func ResolveText(scope *Node, value string, reporter diag.Reporter) (string, *Node) {
	if !IsSelector(value) {
		return value, nil
	}
	selector := strings.TrimSpace(value)
	n, err := QuerySelector(scope, selector)
	if err != nil {
		diag.Or(reporter).Warn(fmt.Sprintf("The selector `%s` is not valid.", selector), "")
		return "", nil
	}
	if n == nil {
		diag.Or(reporter).Warn(
			fmt.Sprintf("No element found by selecting `%s`.", selector),
			fmt.Sprintf("Check if an element with `%s` exists.", selector),
		)
		return "", nil
	}
	return strings.TrimSpace(n.Text()), n
}

// ResolveTexts returns the non-empty text contents of every node below scope
// matched by selector
func ResolveTexts(scope *Node, selector string, reporter diag.Reporter) []string {
	nodes, err := QuerySelectorAll(scope, selector)
	if err != nil {
		diag.Or(reporter).Warn(fmt.Sprintf("The selector `%s` is not valid.", selector), "")
		return nil
	}
	if len(nodes) == 0 {
		diag.Or(reporter).Warn(
			fmt.Sprintf("No elements found by selecting `%s`.", selector),
			fmt.Sprintf("Check if an element with `%s` exists.", selector),
		)
		return nil
	}
	var out []string
	for _, n := range nodes {
		if s := strings.TrimSpace(n.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
