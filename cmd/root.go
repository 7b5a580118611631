package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/csat-sync/internal/config"
	"github.com/sells-group/csat-sync/internal/survey"
	"github.com/sells-group/csat-sync/pkg/leadsquared"
	"github.com/sells-group/csat-sync/pkg/sheets"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "csat-sync",
	Short: "Customer satisfaction survey relay",
	Long:  "Receives satisfaction survey answers, reconciles them with LeadSquared leads, and mirrors them to the survey spreadsheet.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newService builds the survey pipeline and its upstream clients from c.
func newService(c *config.Config) *survey.Service {
	if !c.LeadSquared.Enabled() {
		zap.L().Warn("leadsquared keys missing, CRM lookups and updates are disabled")
	}
	if !c.Sheets.Enabled() {
		zap.L().Warn("sheets web app url missing, submissions will not be mirrored")
	}

	crm := leadsquared.NewClient(c.LeadSquared.AccessKey, c.LeadSquared.SecretKey,
		leadsquared.WithBaseURL(c.LeadSquared.BaseURL),
		leadsquared.WithTimeout(c.HTTP.Timeout()),
		leadsquared.WithRateLimit(c.LeadSquared.RateLimitRPS),
	)
	sink := sheets.NewClient(c.Sheets.WebAppURL,
		sheets.WithTimeout(c.HTTP.Timeout()),
	)
	return survey.NewService(c, crm, sink)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
