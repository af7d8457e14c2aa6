package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nurpe/checkbook-insights/internal/config"
	"github.com/nurpe/checkbook-insights/internal/logger"
)

var (
	vendorFile      string
	categorizedFile string
	outputDir       string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "checkbook",
	Short: "Supplier diversity insights over the open checkbook vendor workbooks",
	Long: `checkbook loads the vendor contact workbook and the categorized company
workbook, derives the business-question views and presents them as a PDF
report, an XLSX export, a static HTML bundle or an interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if vendorFile != "" {
			loaded.Data.VendorFile = vendorFile
		}
		if categorizedFile != "" {
			loaded.Data.CategorizedFile = categorizedFile
		}
		if outputDir != "" {
			loaded.Output.Dir = outputDir
		}
		cfg = loaded
		log = logger.NewWithLevel(cfg.Environment, cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vendorFile, "vendor-file", "", "vendor contact workbook (overrides DATA_VENDOR_FILE)")
	rootCmd.PersistentFlags().StringVar(&categorizedFile, "categorized-file", "", "categorized company workbook (overrides DATA_CATEGORIZED_FILE)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides OUTPUT_DIR)")

	rootCmd.AddCommand(serveCmd, reportCmd, staticCmd, exportCmd, chartsCmd, snapshotCmd, tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
