package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/friendly_charts/pkg/tree"
)

func treeCmd(a *app) *cobra.Command {
	var (
		find  string
		level int
	)

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the navigation tree of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, c, err := a.open(args[0], a.reporter)
			if err != nil {
				return err
			}
			defer c.Destroy()

			root := c.Snapshot().Tree
			out := cmd.OutOrStdout()
			if root == nil {
				fmt.Fprintln(out, "(no interactive elements)")
				return nil
			}

			switch {
			case find != "":
				matches := tree.Search(root, find)
				if len(matches) == 0 {
					return fmt.Errorf("no element matches %q", find)
				}
				for _, n := range matches {
					printNode(out, n, 0)
				}
			case level >= 0:
				for _, n := range tree.FindAllOnLevel(root, level) {
					printNode(out, n, 0)
				}
			default:
				tree.Walk(root, func(n *tree.Node) {
					printNode(out, n, tree.Depth(n))
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&find, "find", "", "Fuzzy search element labels")
	cmd.Flags().IntVar(&level, "level", -1, "Only print elements this many levels below the chart")
	return cmd
}

func printNode(w io.Writer, n *tree.Node, depth int) {
	if n.IsRoot() {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n.Label)
		return
	}
	fmt.Fprintf(w, "%s%-6s #%s  %s\n", strings.Repeat("  ", depth), n.Kind(), n.ID(), n.Label)
}
