package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server Configuration
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 60*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)

	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify
	v.SetDefault("server.tls.insecureSkipVerify", false)
	v.SetDefault("server.tls.serverName", "")

	// Auto-reload configuration defaults
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.checkInterval", 30*time.Second)
	v.SetDefault("server.tls.autoReload.preemptiveRenewal", 72*time.Hour)
	v.SetDefault("server.tls.autoReload.maxRetries", 3)
	v.SetDefault("server.tls.autoReload.retryDelay", 10*time.Second)
	v.SetDefault("server.tls.autoReload.fileWatcher.enabled", true)
	v.SetDefault("server.tls.autoReload.fileWatcher.debounceDelay", time.Second)
	v.SetDefault("server.tls.autoReload.vaultWatcher.enabled", false)
	v.SetDefault("server.tls.autoReload.vaultWatcher.pollInterval", 5*time.Minute)
	v.SetDefault("server.tls.autoReload.vaultWatcher.autoRenew", true)
	v.SetDefault("server.tls.autoReload.vaultWatcher.renewThreshold", 24*time.Hour)
	v.SetDefault("server.tls.autoReload.vaultWatcher.secretPath", "")

	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Scan pipeline limits
	v.SetDefault("scan.maxFileSize", 5*1024*1024)    // 5MB per file
	v.SetDefault("scan.maxBatchBytes", 10*1024*1024) // 10MB per batch
	v.SetDefault("scan.maxBatchFiles", 10)
	v.SetDefault("scan.requestTimeout", 30*time.Second)

	// AI enhancement defaults. Disabled out of the box: every scan works
	// without a model, enabling this only enriches recommendations.
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.timeout", 15*time.Second)
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.3) // Low temperature for consistent suggestions
	v.SetDefault("ai.maxSuggestions", 3)
	v.SetDefault("ai.systemPrompt", "")
	v.SetDefault("ai.userPrompt", "")

	// Circuit Breaker Configuration defaults
	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("ai.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.circuitBreaker.failureThreshold", 0.6)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumescan")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
