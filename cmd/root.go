package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/tripchat/internal/app"
	"github.com/zhubert/tripchat/internal/backend"
	"github.com/zhubert/tripchat/internal/config"
	"github.com/zhubert/tripchat/internal/logger"
)

var (
	debugMode             bool
	apiURL                string
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "tripchat",
	Short: "Terminal chat client for a travel-planning assistant",
	Long: `tripchat is a terminal chat client for a remote travel-planning assistant.
Chats live in memory for the lifetime of the process. Messages are sent to the
chat service over HTTP and replies are shown as they arrive.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the chat service (overrides $"+config.EnvAPIURL+" and the config file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.tripchat/config.json)")
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("tripchat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("tripchat %s\n", version)
}

// loadConfig reads the config file and applies the --api-url flag on top.
// Precedence: flag, then environment, then file, then default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if apiURL != "" {
		if err := config.ValidateAPIURL(apiURL); err != nil {
			return nil, fmt.Errorf("invalid --api-url: %w", err)
		}
		cfg.SetAPIURL(apiURL)
	}

	if debugMode {
		logger.SetDebug(true)
	} else if level := cfg.GetLogLevel(); level != "" {
		logger.SetLevel(logger.ParseLevel(level))
	}
	return cfg, nil
}

// newClient builds a chat service client with the configured timeouts
func newClient(cfg *config.Config) *backend.Client {
	client := backend.NewClient(cfg.GetAPIURL(), version)
	client.SetTimeout(cfg.RequestTimeout())
	client.HealthTimeout = cfg.HealthTimeout()
	return client
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := app.New(cfg, newClient(cfg), version, app.WithContext(ctx))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
