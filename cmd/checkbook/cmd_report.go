package main

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the static PDF report",
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every view to an XLSX workbook",
	RunE:  runExport,
}

func runReport(cmd *cobra.Command, args []string) error {
	svc, err := loadedService(cmd.Context())
	if err != nil {
		return err
	}
	result, err := svc.ExportPDF(cmd.Context())
	if err != nil {
		return err
	}
	path, err := writeOutput(result.FileName, result.Content)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Int("bytes", len(result.Content)).Msg("report written")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := loadedService(cmd.Context())
	if err != nil {
		return err
	}
	result, err := svc.ExportXLSX()
	if err != nil {
		return err
	}
	path, err := writeOutput(result.FileName, result.Content)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Int("bytes", len(result.Content)).Msg("workbook written")
	return nil
}
