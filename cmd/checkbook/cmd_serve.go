package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nurpe/checkbook-insights/internal/auth"
	"github.com/nurpe/checkbook-insights/internal/db"
	httphandler "github.com/nurpe/checkbook-insights/internal/http"
	"github.com/nurpe/checkbook-insights/internal/http/middleware"
	"github.com/nurpe/checkbook-insights/internal/repository"
	"github.com/nurpe/checkbook-insights/internal/service"
)

var fromSnapshot bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive dashboard",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&fromSnapshot, "from-snapshot", false, "load the latest stored snapshot instead of the workbooks")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newInsightsService()
	if err != nil {
		return err
	}
	if fromSnapshot {
		err = loadSnapshot(ctx, svc)
	} else {
		err = svc.Load(ctx)
	}
	if err != nil {
		return err
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	if !tokenParser.Enabled() {
		log.Warn().Msg("JWT_ACCESS_SECRET not set, dashboard API is unauthenticated")
	}
	handler := httphandler.NewHandler(svc, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), httphandler.RouterOptions{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Log:            log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting dashboard")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down dashboard")
	return server.Shutdown(shutdownCtx)
}

func loadSnapshot(ctx context.Context, svc *service.InsightsService) error {
	database, err := db.New(cfg, log)
	if err != nil {
		return err
	}
	repo := repository.NewSnapshotRepository(database)
	run, err := repo.LatestRun(ctx)
	if err != nil {
		return fmt.Errorf("latest snapshot: %w", err)
	}
	records, companies, err := repo.Load(ctx, run.ID)
	if err != nil {
		return err
	}
	svc.Replace(records, companies)
	log.Info().Str("run_id", run.ID.String()).Time("created_at", run.CreatedAt).Msg("snapshot loaded")
	return nil
}
