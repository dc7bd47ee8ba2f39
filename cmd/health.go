package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/health"
	"github.com/zhubert/tripchat/internal/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the chat service is ready",
	Long: `Sends a single readiness request to the chat service and prints the result.
Exits with a non-zero status when the service is unreachable or not ready.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	return checkHealth(cmd.Context(), cmd.OutOrStdout(), newClient(cfg), cfg.GetAPIURL())
}

// checkHealth probes once and prints "<url>: <status>"
func checkHealth(ctx context.Context, w io.Writer, p health.Prober, url string) error {
	status := health.NewMonitor(p).Check(ctx)
	fmt.Fprintf(w, "%s: %s\n", url, status)
	if status != health.StatusReady {
		return errors.E(errors.KindNetwork, "chat service is not ready")
	}
	return nil
}
