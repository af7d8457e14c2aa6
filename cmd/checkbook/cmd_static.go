package main

import (
	"bytes"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nurpe/checkbook-insights/internal/site"
)

var staticCmd = &cobra.Command{
	Use:   "static",
	Short: "Write the dashboard as a single self-contained HTML file",
	RunE:  runStatic,
}

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Write every chart as a PNG file",
	RunE:  runCharts,
}

func runStatic(cmd *cobra.Command, args []string) error {
	svc, err := loadedService(cmd.Context())
	if err != nil {
		return err
	}
	insights, err := svc.Insights()
	if err != nil {
		return err
	}
	charts, err := svc.ChartSet(cmd.Context())
	if err != nil {
		return err
	}
	builder, err := site.NewBuilder()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := builder.Build(&buf, insights, charts, svc.Policy().ITCategories); err != nil {
		return err
	}
	path, err := writeOutput("index.html", buf.Bytes())
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Int("charts", len(charts)).Msg("static dashboard written")
	return nil
}

func runCharts(cmd *cobra.Command, args []string) error {
	svc, err := loadedService(cmd.Context())
	if err != nil {
		return err
	}
	charts, err := svc.ChartSet(cmd.Context())
	if err != nil {
		return err
	}
	for name, content := range charts {
		if _, err := writeOutput(filepath.Join("charts", name+".png"), content); err != nil {
			return err
		}
	}
	log.Info().Str("dir", filepath.Join(cfg.Output.Dir, "charts")).Int("charts", len(charts)).Msg("charts written")
	return nil
}
