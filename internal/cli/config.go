package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/agent-monitor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `View the resolved forwarder configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Show the configuration after applying defaults, the config file and
environment overrides.

Resolution order (last one wins):
  1. built-in defaults
  2. ` + "`config.toml`" + ` in the XDG config directory
  3. AGENT_MONITOR_* environment variables`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Config file: %s", path)
	if _, err := os.Stat(path); err != nil {
		fmt.Print(" (not present)")
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("URL:     %s\n", cfg.URL)
	fmt.Printf("Debug:   %t\n", cfg.Debug)
	fmt.Printf("Timeout: %s\n", cfg.Timeout)
	fmt.Println()

	fmt.Printf("Transcript window: %d entries\n", cfg.TranscriptWindow)
	fmt.Printf("Text limit:        %d characters\n", cfg.TextLimit)
	fmt.Println()

	fmt.Printf("OTEL enabled:  %t\n", cfg.Otel.Enabled)
	fmt.Printf("OTEL endpoint: %s\n", cfg.Otel.Endpoint)
	fmt.Printf("OTEL insecure: %t\n", cfg.Otel.Insecure)

	return nil
}
