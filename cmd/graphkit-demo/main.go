// Command graphkit-demo plots the columns of a CSV file as a line or bar
// chart, following the file as it grows.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/graphkit/backend"
	"git.sr.ht/~whereswaldon/graphkit/chart"
	"git.sr.ht/~whereswaldon/graphkit/config"
)

var (
	stylePath string
	kindName  string
	stacked   bool
)

var rootCmd = &cobra.Command{
	Use:   "graphkit-demo [file.csv]",
	Short: "Plot CSV data as a line or bar chart",
	Long: `Plot CSV data as a line or bar chart.

The first column of the file holds x values or category names, and every
further column is one data series. The file is reread whenever it is written
to. Without a file argument, a file can be opened from the window.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Check a style file and print the settings it makes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := loadStyle()
		if err != nil {
			return err
		}
		if _, _, err := resolve(style); err != nil {
			return err
		}
		return style.Encode(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&stylePath, "config", "c", "", "YAML style file")
	rootCmd.Flags().StringVarP(&kindName, "kind", "k", "", "chart kind: line or bar (overrides the style file)")
	rootCmd.Flags().BoolVar(&stacked, "stacked", false, "stack bars instead of grouping them")
	rootCmd.AddCommand(styleCmd)
}

func loadStyle() (config.Style, error) {
	if stylePath == "" {
		return config.Style{}, nil
	}
	return config.Load(stylePath)
}

// resolve turns a style and the command line flags into chart settings.
func resolve(style config.Style) (chart.Kind, chart.Config, error) {
	kind, err := style.ChartKind(chart.KindLine)
	if err != nil {
		return kind, chart.Config{}, err
	}
	if kindName != "" {
		if kind, err = chart.ParseKind(kindName); err != nil {
			return kind, chart.Config{}, err
		}
	}
	cfg, err := style.Apply(chart.DefaultConfig())
	if err != nil {
		return kind, cfg, fmt.Errorf("applying style: %w", err)
	}
	if stacked {
		cfg.BarMode = chart.BarStacked
	}
	return kind, cfg, nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	style, err := loadStyle()
	if err != nil {
		return err
	}
	kind, cfg, err := resolve(style)
	if err != nil {
		return err
	}
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	bundle, err := backend.NewBundle()
	if err != nil {
		return err
	}
	go func() {
		w := app.NewWindow(app.Title("graphkit"))
		if err := loop(w, bundle, kind, cfg, path); err != nil {
			log.Fatal(err)
		}
		if err := bundle.Close(); err != nil {
			log.Printf("failed closing backend: %v", err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loop(w *app.Window, bundle backend.Bundle, kind chart.Kind, cfg chart.Config, path string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expl := explorer.NewExplorer(w)
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl, kind, cfg)
	if path != "" {
		ui.Watch(path)
	}
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
