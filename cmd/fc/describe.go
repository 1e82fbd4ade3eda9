package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// describeFormat selects how instructions are printed
type describeFormat int

const (
	formatAuto describeFormat = iota
	formatPlain
	formatMarkdown
)

func describeCmd(a *app) *cobra.Command {
	var (
		plain       bool
		markdown    bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "describe <file>...",
		Short: "Print the instructions section screen readers get for each chart",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := formatAuto
			switch {
			case plain:
				format = formatPlain
			case markdown:
				format = formatMarkdown
			case !a.cfg.UI.Markdown:
				format = formatPlain
			}

			out := cmd.OutOrStdout()
			width, tty := terminalWidth(out)
			if format == formatAuto && !tty {
				format = formatPlain
			}

			texts, err := a.describeAll(cmd.Context(), args, format, width, concurrency)
			if err != nil {
				return err
			}
			for i, text := range texts {
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "==> %s <==\n", args[i])
				}
				fmt.Fprint(out, text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain text")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print raw markdown")
	cmd.Flags().IntVarP(&concurrency, "jobs", "j", 4, "Number of charts described in parallel")
	return cmd
}

// describeAll describes every file concurrently, keeping the order of paths
func (a *app) describeAll(ctx context.Context, paths []string, format describeFormat, width, concurrency int) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	texts := make([]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := a.describe(path, format, width)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

func (a *app) describe(path string, format describeFormat, width int) (string, error) {
	_, _, c, err := a.open(path, a.reporter)
	if err != nil {
		return "", err
	}
	defer c.Destroy()

	switch format {
	case formatMarkdown:
		return c.Markdown(), nil
	case formatAuto:
		out, err := c.Render(width)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return out, nil
	}
	return c.Instructions(), nil
}

// terminalWidth reports the width of w when it is a terminal
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80, true
	}
	return min(width, 120), true
}
