package server

import (
	"net/http"
	"strings"

	"resumescan/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	uploadLimitHandler := s.requestSizeLimitMiddleware(s.MaxFileSize + multipartMemoryLimit)
	batchLimitHandler := s.requestSizeLimitMiddleware(s.MaxBatchBytes + multipartMemoryLimit)

	mux.HandleFunc("/", s.rootHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)

	scanHandler := rateLimitHandler(
		s.authMiddleware(uploadLimitHandler(s.createScanHandler(om))),
	)
	mux.HandleFunc("/api/scan", scanHandler)
	// Legacy alias kept for clients that predate the /api prefix
	mux.HandleFunc("/analyze", scanHandler)

	mux.HandleFunc("/api/batch-scan",
		rateLimitHandler(
			s.authMiddleware(batchLimitHandler(s.createBatchScanHandler(om))),
		),
	)

	return mux
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		// Check for API key in X-API-Key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			// Check for Bearer token in Authorization header as fallback
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		// Log successful authentication
		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming request bodies
func (s *Server) requestSizeLimitMiddleware(limit int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
