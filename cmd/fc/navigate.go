package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/friendly_charts/pkg/controller"
)

// keyAliases maps command line key names to controller keys
var keyAliases = map[string]string{
	"enter":  controller.KeyEnter,
	"esc":    controller.KeyEscape,
	"escape": controller.KeyEscape,
	"left":   controller.KeyArrowLeft,
	"right":  controller.KeyArrowRight,
	"up":     controller.KeyArrowUp,
	"down":   controller.KeyArrowDown,
}

func parseKey(s string) (string, error) {
	if controller.IsNavigationKey(s) {
		return s, nil
	}
	if k, ok := keyAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown key %q (use enter, esc, left, right, up or down)", s)
}

func navigateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navigate <file> <key>...",
		Short: "Replay keys against a chart and print what a screen reader announces",
		Example: `  fc navigate chart.yaml enter enter right
  fc navigate chart.yaml enter down esc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				k, err := parseKey(arg)
				if err != nil {
					return err
				}
				keys = append(keys, k)
			}

			_, _, c, err := a.open(args[0], a.reporter)
			if err != nil {
				return err
			}
			defer c.Destroy()

			out := cmd.OutOrStdout()
			if !c.Snapshot().Interactive {
				return fmt.Errorf("%s: chart has no interactive elements", args[0])
			}

			c.Focus()
			fmt.Fprintf(out, "focus: %s\n", announcement(c.Snapshot().Region))
			for _, k := range keys {
				handled := c.Key(k)
				snap := c.Snapshot()
				line := announcement(snap.Region)
				if !handled {
					line = "(not handled)"
				}
				fmt.Fprintf(out, "%s: %s\n", k, line)
			}
			return nil
		},
	}
	return cmd
}

// announcement is what a screen reader reads for the region: the label of
// the active descendant, or the region label itself
func announcement(r controller.Region) string {
	for _, ctl := range r.Controls {
		if ctl.ID == r.ActiveDescendant {
			return ctl.Label
		}
	}
	return r.Label
}
