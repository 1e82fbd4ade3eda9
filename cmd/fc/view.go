package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/loader"
	"github.com/Dicklesworthstone/friendly_charts/pkg/ui"
	"github.com/Dicklesworthstone/friendly_charts/pkg/watcher"
)

func viewCmd(a *app) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Navigate a chart interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			// warnings would tear the alternate screen; replay them on exit
			var warnings diag.Recorder
			defer func() {
				for _, w := range warnings.Warnings() {
					a.reporter.Warn(w.Message, w.Hint)
				}
			}()

			_, doc, c, err := a.open(path, &warnings)
			if err != nil {
				return err
			}
			defer c.Destroy()

			if a.cfg.Watch.Enabled && !noWatch {
				opts := []watcher.Option{
					watcher.WithDebounce(a.cfg.Debounce()),
					watcher.WithPollInterval(a.cfg.PollInterval()),
					watcher.WithLogger(a.reporter.Logger()),
				}
				if a.cfg.Watch.ForcePoll {
					opts = append(opts, watcher.WithPolling())
				}
				w, err := watcher.NewFileWatcher(path, func() {
					if err := loader.Reload(doc, path, &warnings); err != nil {
						warnings.Warn("Reloading the chart failed: "+err.Error(), "")
					}
				}, opts...)
				if err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					return err
				}
				defer w.Stop()
			}

			m := ui.NewModel(c, ui.Options{
				Source:          filepath.Base(path),
				LabelWidth:      a.cfg.UI.LabelWidth,
				Markdown:        a.cfg.UI.Markdown,
				ShowDescription: a.cfg.UI.ShowDescription,
			})
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the chart when the file changes")
	return cmd
}
