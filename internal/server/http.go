package server

import (
	"time"

	"resumescan/internal/ai"
	"resumescan/internal/analysis"
	"resumescan/internal/config"
	scanerrors "resumescan/internal/errors"
	"resumescan/internal/extract"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Scan pipeline limits
	MaxFileSize    int64
	MaxBatchBytes  int64
	MaxBatchFiles  int
	RequestTimeout time.Duration

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Analysis pipeline
	Engine    *analysis.Engine
	Extractor *extract.Extractor

	// Optional AI enhancement (nil when disabled)
	AIService *ai.Service

	StartTime time.Time

	// Logger
	Logger *scanerrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxFileSize    int64
	MaxBatchBytes  int64
	MaxBatchFiles  int
	RequestTimeout time.Duration
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *scanerrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	var aiService *ai.Service
	if appCfg.AI.Enabled {
		svc, err := ai.NewService(&appCfg.AI, logger)
		if err != nil {
			return nil, err
		}
		aiService = svc
	}

	return &Server{
		Host:               cfg.Host,
		Port:               cfg.Port,
		Version:            cfg.Version,
		AppConfig:          appCfg,
		TLSConfig:          cfg.TLSConfig,
		APIKeys:            apiKeyMap,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		IdleTimeout:        cfg.IdleTimeout,
		MaxFileSize:        cfg.MaxFileSize,
		MaxBatchBytes:      cfg.MaxBatchBytes,
		MaxBatchFiles:      cfg.MaxBatchFiles,
		RequestTimeout:     cfg.RequestTimeout,
		RateLimit:          cfg.RateLimit,
		RateLimiter:        rateLimiter,
		Engine:             analysis.NewEngine(analysis.DefaultVocabulary(), logger),
		Extractor:          extract.New(logger),
		AIService:          aiService,
		StartTime:          time.Now(),
		Logger:             logger,
	}, nil
}
