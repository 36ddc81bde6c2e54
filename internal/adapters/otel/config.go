package otel

// Config holds OTEL exporter configuration. It is populated from the
// application config; the exporter itself never reads the environment.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}
