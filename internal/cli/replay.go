package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psellars/fnolgate/internal/worker"
	"github.com/psellars/fnolgate/pkg/logger"
)

var replayConcurrency int

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <dir>",
	Short: "Replay saved inbound payloads through the decision sequence",
	Long: `Replay runs every payload file in a directory through extraction,
policy lookup, eligibility evaluation and duplicate matching — without
submitting anything. Useful for triaging a backlog or verifying behavior
against captured traffic.

Example:
  fnolgate replay ./captured-emails
  fnolgate replay ./captured-emails --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().IntVar(&replayConcurrency, "concurrency", 4, "number of concurrent replay workers")
}

func runReplay(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	svc, err := buildService(cfg)
	if err != nil {
		return fmt.Errorf("build intake service: %w", err)
	}

	replayer := worker.NewReplayer(svc, replayConcurrency)
	results, err := replayer.ReplayDir(context.Background(), dir)
	if err != nil {
		return err
	}

	var failures int
	for _, res := range results {
		if res.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", res.Path, res.Error)
			continue
		}
		fmt.Printf("%s: %s", res.Path, res.Decision.Action)
		if res.Decision.PolicyNumber != "" {
			fmt.Printf(" (policy %s)", res.Decision.PolicyNumber)
		}
		if res.Decision.Duplicate != nil {
			fmt.Printf(" duplicate of %s", res.Decision.Duplicate.ClaimNumber)
		}
		fmt.Println()
	}

	fmt.Printf("\n%d payloads, %d errors\n", len(results), failures)
	if failures > 0 {
		return fmt.Errorf("%d payloads failed to replay", failures)
	}
	return nil
}
