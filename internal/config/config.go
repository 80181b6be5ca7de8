package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Secret precedence order:
// 1. Vault (if configured) - highest priority
// 2. Config file values
// 3. Environment variables (RESUMESCAN_SERVER_APIKEYS, etc.)
// 4. Defaults - lowest priority
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Scan          ScanConfig          `mapstructure:"scan"`
	AI            AIConfig            `mapstructure:"ai"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// TLS Configuration
	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// ScanConfig bounds the scan pipeline
type ScanConfig struct {
	MaxFileSize    int64         `mapstructure:"maxFileSize"`    // per-file upload ceiling in bytes
	MaxBatchBytes  int64         `mapstructure:"maxBatchBytes"`  // aggregate batch ceiling in bytes
	MaxBatchFiles  int           `mapstructure:"maxBatchFiles"`  // files accepted per batch request
	RequestTimeout time.Duration `mapstructure:"requestTimeout"` // per-scan deadline
}

// AIConfig holds the optional recommendation-enhancement configuration.
// The pipeline is fully functional with AI disabled; enabling it appends
// model-generated suggestions to the rule-based output.
type AIConfig struct {
	Enabled        bool                 `mapstructure:"enabled"`
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	APIKey         string               `mapstructure:"apiKey"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	MaxRetries     int                  `mapstructure:"maxRetries"`
	Temperature    float32              `mapstructure:"temperature"`
	MaxSuggestions int                  `mapstructure:"maxSuggestions"`
	SystemPrompt   string               `mapstructure:"systemPrompt"` // override; empty uses the built-in
	UserPrompt     string               `mapstructure:"userPrompt"`   // override template; empty uses the built-in
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// TLSConfig holds TLS/mTLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // TLS mode: "disabled", "server", "mutual"
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)
	CAFile   string `mapstructure:"caFile"`   // CA certificate file for client cert verification (PEM, mutual mode)

	// Certificate content (used when loaded from Vault instead of files)
	CertContent string `mapstructure:"certContent"`
	KeyContent  string `mapstructure:"keyContent"`
	CAContent   string `mapstructure:"caContent"`

	MinVersion       string   `mapstructure:"minVersion"`       // Minimum TLS version: "1.2", "1.3"
	CipherSuites     []string `mapstructure:"cipherSuites"`     // Allowed cipher suites (optional)
	ClientAuthPolicy string   `mapstructure:"clientAuthPolicy"` // Client auth policy for mutual mode

	InsecureSkipVerify bool   `mapstructure:"insecureSkipVerify"` // Skip certificate verification (dev only)
	ServerName         string `mapstructure:"serverName"`

	AutoReload AutoReloadConfig `mapstructure:"autoReload"`
}

// AutoReloadConfig holds configuration for automatic certificate reloading
type AutoReloadConfig struct {
	Enabled           bool               `mapstructure:"enabled"`
	CheckInterval     time.Duration      `mapstructure:"checkInterval"`
	PreemptiveRenewal time.Duration      `mapstructure:"preemptiveRenewal"`
	MaxRetries        int                `mapstructure:"maxRetries"`
	RetryDelay        time.Duration      `mapstructure:"retryDelay"`
	FileWatcher       FileWatcherConfig  `mapstructure:"fileWatcher"`
	VaultWatcher      VaultWatcherConfig `mapstructure:"vaultWatcher"`
}

// FileWatcherConfig holds configuration for file-based certificate watching
type FileWatcherConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DebounceDelay time.Duration `mapstructure:"debounceDelay"`
}

// VaultWatcherConfig holds configuration for Vault-based certificate watching
type VaultWatcherConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PollInterval   time.Duration `mapstructure:"pollInterval"`
	AutoRenew      bool          `mapstructure:"autoRenew"`
	RenewThreshold time.Duration `mapstructure:"renewThreshold"`
	SecretPath     string        `mapstructure:"secretPath"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestsPerMin int           `mapstructure:"requestsPerMin"`
	BurstCapacity  int           `mapstructure:"burstCapacity"`
	ByIP           bool          `mapstructure:"byIP"`
	ByAPIKey       bool          `mapstructure:"byAPIKey"`
	Window         time.Duration `mapstructure:"window"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool              `mapstructure:"enabled"`
	ServiceName     string            `mapstructure:"serviceName"`
	ServiceVersion  string            `mapstructure:"serviceVersion"`
	ServiceInstance string            `mapstructure:"serviceInstance"`
	ConsoleOutput   bool              `mapstructure:"consoleOutput"`
	SampleRate      float64           `mapstructure:"sampleRate"`
	Tracing         TracingConfig     `mapstructure:"tracing"`
	Metrics         MetricsConfig     `mapstructure:"metrics"`
	Console         ConsoleConfig     `mapstructure:"console"`
	Prometheus      PrometheusConfig  `mapstructure:"prometheus"`
	OTLP            OTLPConfig        `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	AIModelCheckTimeout time.Duration `mapstructure:"aiModelCheckTimeout"`
}

// LoadConfig loads configuration from defaults, a config file and
// environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	v.SetEnvPrefix("RESUMESCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'RESUMESCAN'")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumescan/")
	v.AddConfigPath("$HOME/.resumescan")
	v.AddConfigPath(".")

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()
	config.logConfigurationSources(configFileUsed)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Scan.MaxFileSize <= 0 {
		return fmt.Errorf("scan.maxFileSize must be positive")
	}
	if c.Scan.MaxBatchBytes < c.Scan.MaxFileSize {
		return fmt.Errorf("scan.maxBatchBytes must be at least scan.maxFileSize")
	}
	if c.Scan.MaxBatchFiles <= 0 {
		return fmt.Errorf("scan.maxBatchFiles must be positive")
	}
	if c.Scan.RequestTimeout <= 0 {
		return fmt.Errorf("scan.requestTimeout must be positive")
	}

	if c.AI.Enabled {
		if c.AI.APIKey == "" {
			return fmt.Errorf("AI API key is required when ai.enabled is true (set RESUMESCAN_AI_APIKEY)")
		}
		if c.AI.Timeout <= 0 {
			return fmt.Errorf("AI timeout must be positive")
		}
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// Global configuration instance
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
