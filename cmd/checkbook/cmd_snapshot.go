package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurpe/checkbook-insights/internal/db"
	"github.com/nurpe/checkbook-insights/internal/repository"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Persist the loaded base tables to postgres under a new run id",
	RunE:  runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	database, err := db.New(cfg, log)
	if err != nil {
		return err
	}
	svc, err := loadedService(ctx)
	if err != nil {
		return err
	}
	records, companies, err := svc.Tables()
	if err != nil {
		return err
	}

	run, err := repository.NewSnapshotRepository(database).Save(ctx, cfg.Data.VendorFile, cfg.Data.CategorizedFile, records, companies)
	if err != nil {
		return err
	}
	log.Info().
		Str("run_id", run.ID.String()).
		Int("vendor_rows", run.VendorRows).
		Int("categorized_rows", run.CategorizedRows).
		Msg("snapshot stored")
	fmt.Fprintln(cmd.OutOrStdout(), run.ID)
	return nil
}
