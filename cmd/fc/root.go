package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/friendly_charts/pkg/annotation"
	"github.com/Dicklesworthstone/friendly_charts/pkg/chart"
	"github.com/Dicklesworthstone/friendly_charts/pkg/config"
	"github.com/Dicklesworthstone/friendly_charts/pkg/diag"
	"github.com/Dicklesworthstone/friendly_charts/pkg/loader"
	"github.com/Dicklesworthstone/friendly_charts/pkg/locale"
)

var version = "0.1.0"

// app carries state shared by all subcommands
type app struct {
	cfg      *config.Config
	reporter *diag.LogReporter
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	var (
		debug     bool
		localeTag string
		envFiles  []string
	)

	root := &cobra.Command{
		Use:          "fc",
		Short:        "Accessible chart navigation in the terminal",
		Long:         "fc loads annotated chart documents and exposes them the way a screen reader user meets them:\na described chart and a keyboard-navigable application region.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(envFiles...); err != nil {
				return err
			}
			a.cfg = config.Load()
			if cmd.Flags().Changed("debug") {
				a.cfg.Debug = debug
			}
			if localeTag != "" {
				a.cfg.Locale = localeTag
			}

			a.reporter = diag.NewLogReporter(diag.LogReporterParams{
				Output: cmd.ErrOrStderr(),
				Debug:  a.cfg.Debug,
			})
			if !a.cfg.Debug {
				if lvl, err := log.ParseLevel(a.cfg.Log.Level); err == nil {
					a.reporter.Logger().SetLevel(lvl)
				}
			}
			diag.SetDefault(a.reporter)
			return nil
		},
	}
	root.SetVersionTemplate("fc {{ .Version }}\n")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output and show the screen reader announcement line")
	root.PersistentFlags().StringVar(&localeTag, "locale", "", "Locale for generated texts (en-US, de-DE)")
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load environment overrides from these files (default .env)")

	root.AddCommand(
		viewCmd(a),
		describeCmd(a),
		treeCmd(a),
		navigateCmd(a),
		configCmd(a),
	)
	return root
}

// mountOptions derives chart options from the file and the configuration.
// A locale named in the file wins over the configured one.
func (a *app) mountOptions(f *loader.File, reporter diag.Reporter) chart.Options {
	opts := f.ChartOptions()
	if f.Chart.Locale == "" {
		if loc, ok := locale.Lookup(a.cfg.Locale); ok {
			opts.Locale = loc
		}
	}
	opts.Debug = a.cfg.Debug
	opts.Reporter = reporter
	opts.Logger = a.reporter.Logger()
	return opts
}

// open loads path, builds its document and mounts the chart
func (a *app) open(path string, reporter diag.Reporter) (*loader.File, *annotation.Document, *chart.Chart, error) {
	f, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := f.Build(reporter)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Commit()
	c, err := chart.Mount(doc, f.HostID(), a.mountOptions(f, reporter))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, doc, c, nil
}
