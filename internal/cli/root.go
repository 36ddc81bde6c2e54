package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agent-monitor",
	Short: "Best-effort event forwarder for coding-agent lifecycle hooks",
	Long: `agent-monitor forwards coding-agent lifecycle events to a monitoring
server. It reads one hook event JSON object from stdin, enriches it with a
simplified transcript and token usage totals when the event carries one, and
posts the result to the configured endpoint.

Delivery is best effort: transport failures are swallowed and the process
always exits 0, so a hook can never break the session that invoked it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Errors are returned rather than printed so the
// caller decides whether anything may be written at all.
func Execute() error {
	return rootCmd.Execute()
}
