package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/checkbook-insights/internal/auth"
	"github.com/nurpe/checkbook-insights/internal/model"
)

var (
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for the dashboard API",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", model.RoleViewer, "role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	parser := auth.NewParser(cfg.Auth.AccessSecret)
	token, err := parser.Issue(model.Principal{UserID: uuid.New(), Role: tokenRole}, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
