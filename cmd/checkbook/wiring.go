package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nurpe/checkbook-insights/internal/chart"
	"github.com/nurpe/checkbook-insights/internal/excel"
	"github.com/nurpe/checkbook-insights/internal/pdf"
	"github.com/nurpe/checkbook-insights/internal/service"
)

func newInsightsService() (*service.InsightsService, error) {
	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		return nil, fmt.Errorf("init pdf generator: %w", err)
	}
	return service.NewInsightsService(
		service.SourceFromConfig(cfg),
		cfg.Analysis,
		chart.NewRenderer(),
		excel.NewGenerator(),
		pdfGenerator,
		log,
	), nil
}

// loadedService builds the service and loads both workbooks.
func loadedService(ctx context.Context) (*service.InsightsService, error) {
	svc, err := newInsightsService()
	if err != nil {
		return nil, err
	}
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func writeOutput(name string, content []byte) (string, error) {
	path := filepath.Join(cfg.Output.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
