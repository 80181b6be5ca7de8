package observability

import (
	"resumescan/internal/config"
)

// GetObservabilityConfig creates observability config from provided config
func GetObservabilityConfig(cfg *config.Config, version string) ObservabilityConfig {
	if cfg == nil {
		// Fallback to defaults if config not available
		return ObservabilityConfig{
			ServiceName:    "resumescan",
			ServiceVersion: version,
			Enabled:        true,
			ConsoleOutput:  true, // Default to console output for fallback
			PrettyPrint:    true,
			SampleRate:     1.0,
			Prometheus:     GetPrometheusConfig(cfg),
		}
	}

	obsConfig := cfg.Observability

	// Use app version if service version not specified
	serviceVersion := obsConfig.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version
	}

	return ObservabilityConfig{
		ServiceName:    obsConfig.ServiceName,
		ServiceVersion: serviceVersion,
		Enabled:        obsConfig.Enabled,
		ConsoleOutput:  obsConfig.ConsoleOutput,
		PrettyPrint:    obsConfig.Console.PrettyPrint,
		SampleRate:     obsConfig.SampleRate,
		Prometheus: PrometheusConfig{
			Enabled:  obsConfig.Prometheus.Enabled,
			Endpoint: obsConfig.Prometheus.Endpoint,
			Port:     obsConfig.Prometheus.Port,
		},
	}
}
