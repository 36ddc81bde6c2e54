package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/agent-monitor/internal/adapters/monitor"
	"github.com/emiliopalmerini/agent-monitor/internal/adapters/otel"
	"github.com/emiliopalmerini/agent-monitor/internal/config"
	"github.com/emiliopalmerini/agent-monitor/internal/domain"
	"github.com/emiliopalmerini/agent-monitor/internal/forwarder"
	"github.com/emiliopalmerini/agent-monitor/internal/hostinfo"
	"github.com/emiliopalmerini/agent-monitor/internal/logging"
	"github.com/emiliopalmerini/agent-monitor/internal/ports"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Read one hook event from stdin and forward it",
	Long: `Reads a single hook event JSON object from stdin, enriches it with a
simplified transcript when the event kind qualifies, and posts the result to
the monitoring endpoint.

Configure the agent runtime to invoke "agent-monitor send" for every hook:

  {
    "hooks": {
      "SessionStart":  [{"type": "command", "command": "agent-monitor send"}],
      "SessionEnd":    [{"type": "command", "command": "agent-monitor send", "async": true}],
      "Stop":          [{"type": "command", "command": "agent-monitor send", "async": true}],
      "PostToolUse":   [{"type": "command", "command": "agent-monitor send", "async": true}],
      "Notification":  [{"type": "command", "command": "agent-monitor send", "async": true}],
      "SubagentStart": [{"type": "command", "command": "agent-monitor send", "async": true}],
      "SubagentStop":  [{"type": "command", "command": "agent-monitor send", "async": true}]
    }
  }

Malformed input is discarded without a word: a hook must never surface an
error into the session that invoked it. Set AGENT_MONITOR_DEBUG=1 to see
what is being dropped and why.`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

// testSinkOverride lets tests intercept outbound events.
var testSinkOverride ports.EventSink

func runSend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := loadConfig()
	logging.Configure(cfg.Debug)

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		logging.Debugf("failed to read stdin: %v", err)
		return nil
	}

	input, err := domain.ParseHookInput(raw)
	if err != nil {
		logging.Debugf("discarding input: %v", err)
		return nil
	}

	sink := newSink(cfg)
	metrics := newMetricsExporter(ctx, cfg)
	defer closeMetrics(metrics, cfg.Timeout)

	svc := forwarder.NewService(cfg, sink, metrics, hostinfo.Collect())
	svc.Forward(ctx, input)

	return nil
}

// loadConfig resolves the configuration, degrading to defaults when the
// config file is unusable. The event still has to go out.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		def := config.Default()
		return &def
	}
	return cfg
}

func newSink(cfg *config.Config) ports.EventSink {
	if testSinkOverride != nil {
		return testSinkOverride
	}
	return monitor.NewClient(monitor.Config{BaseURL: cfg.URL, Timeout: cfg.Timeout})
}

// newMetricsExporter returns the OTEL exporter when self-telemetry is
// enabled, and a no-op exporter otherwise or when setup fails.
func newMetricsExporter(ctx context.Context, cfg *config.Config) ports.MetricsExporter {
	if !cfg.Otel.Enabled {
		return otel.NewNoOpExporter()
	}

	exporter, err := otel.NewExporter(ctx, otel.Config{
		Endpoint: cfg.Otel.Endpoint,
		Enabled:  cfg.Otel.Enabled,
		Insecure: cfg.Otel.Insecure,
	})
	if err != nil {
		logging.Debugf("otel exporter unavailable: %v", err)
		return otel.NewNoOpExporter()
	}
	return exporter
}

// closeMetrics flushes pending metrics with a bounded wait so a slow
// collector cannot hold the hook open.
func closeMetrics(metrics ports.MetricsExporter, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := metrics.Close(ctx); err != nil {
		logging.Debugf("failed to close metrics exporter: %v", err)
	}
}
