package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/psellars/fnolgate/internal/server"
	"github.com/psellars/fnolgate/pkg/logger"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claim-intake HTTP server",
	Long: `Serve exposes the inbound email endpoint:

  POST /onprem/v2/claims

The body is the raw email payload (HTML or plain text); the ConversationID
header ties follow-up emails to an earlier duplicate finding.

Example:
  fnolgate serve
  fnolgate serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	svc, err := buildService(cfg)
	if err != nil {
		return fmt.Errorf("build intake service: %w", err)
	}

	slog.Info("starting fnolgate",
		"port", cfg.Server.Port,
		"provider", cfg.LLM.Provider,
		"policy_api", cfg.PolicyAPI.BaseURL,
		"claim_api", cfg.ClaimAPI.BaseURL,
	)

	return server.New(cfg.Server, svc).Run()
}
