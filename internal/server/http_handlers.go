package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// rootHandler provides a service description for the API root
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeErrorResponse(w, "Not found", "Unknown endpoint", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumescan",
		"version": s.Version,
		"endpoints": map[string]string{
			"POST /api/scan":       "Scan a single resume (multipart field 'file', optional 'job_description')",
			"POST /api/batch-scan": "Scan up to a batch of resumes (multipart field 'files')",
			"GET /health":          "Service health including AI model and certificate status",
			"GET /stats":           "Server statistics and rate limiting info",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode root response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":         "healthy",
		"service":        "resumescan",
		"version":        s.Version,
		"uptime_seconds": int(time.Since(s.StartTime).Seconds()),
		"pipeline": map[string]any{
			"vocabulary_terms": s.Engine.VocabularySize(),
		},
	}

	overallHealthy := true

	// Check AI enhancement model availability when enabled
	aiStatus := s.checkAIHealth()
	response["ai"] = aiStatus
	if available, ok := aiStatus["available"].(bool); ok {
		if enabled, ok := aiStatus["enabled"].(bool); ok && enabled && !available {
			overallHealthy = false
		}
	}

	// Check certificate status if certificate manager is available
	certStatus := s.checkCertificateHealth()
	if certStatus != nil {
		response["certificates"] = certStatus
		if healthy, exists := certStatus["healthy"]; exists {
			if certHealthy, ok := healthy.(bool); ok && !certHealthy {
				overallHealthy = false
			}
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIHealth checks the enhancement model when AI is enabled. The
// deterministic pipeline never depends on it, so a disabled service is
// healthy by definition.
func (s *Server) checkAIHealth() map[string]any {
	if s.AIService == nil {
		return map[string]any{
			"enabled":   false,
			"available": false,
		}
	}

	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return map[string]any{
		"enabled":   true,
		"available": true,
		"model":     s.AIService.GetModelInfo(ctx),
	}
}

// checkCertificateHealth checks the health of TLS certificates
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertificateManager == nil {
		return nil
	}

	certStatus := make(map[string]any)

	// Check certificate expiry
	timeToExpiry, err := s.CertificateManager.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	// Consider certificates unhealthy if they expire within 24 hours
	criticalThreshold := 24 * time.Hour
	warningThreshold := 7 * 24 * time.Hour // 7 days

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())
	certStatus["time_to_expiry"] = timeToExpiry.String()

	if timeToExpiry <= 0 {
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
		certStatus["message"] = "Certificate has expired"
	} else if timeToExpiry <= criticalThreshold {
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
		certStatus["message"] = "Certificate expires within 24 hours"
	} else if timeToExpiry <= warningThreshold {
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
		certStatus["message"] = "Certificate expires within 7 days"
	} else {
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
		certStatus["message"] = "Certificate is valid"
	}

	// Add auto-reload status
	if s.TLSConfig.AutoReload.Enabled {
		certStatus["auto_reload"] = map[string]any{
			"enabled":               true,
			"file_watcher_enabled":  s.TLSConfig.AutoReload.FileWatcher.Enabled,
			"vault_watcher_enabled": s.TLSConfig.AutoReload.VaultWatcher.Enabled,
		}

		// Add file watcher status
		if s.CertificateManager.fileWatcher != nil {
			certStatus["auto_reload"].(map[string]any)["file_watcher_running"] = s.CertificateManager.fileWatcher.IsRunning()
			certStatus["auto_reload"].(map[string]any)["watched_files"] = s.CertificateManager.fileWatcher.GetWatchedFiles()
		}

		// Add vault watcher status
		if s.CertificateManager.vaultWatcher != nil {
			certStatus["auto_reload"].(map[string]any)["vault_watcher_status"] = s.CertificateManager.vaultWatcher.Status()
		}
	} else {
		certStatus["auto_reload"] = map[string]any{
			"enabled": false,
		}
	}

	// Add certificate metrics
	metrics := s.CertificateManager.GetMetrics()
	if metrics != nil {
		certStatus["metrics"] = map[string]any{
			"reload_count":         metrics.ReloadCount,
			"reload_success_count": metrics.ReloadSuccessCount,
			"reload_failure_count": metrics.ReloadFailureCount,
			"last_reload_time":     metrics.LastReloadTime,
			"last_reload_success":  metrics.LastReloadSuccess,
			"last_reload_error":    metrics.LastReloadError,
		}
	}

	return certStatus
}

// statsHandler provides server statistics including scan limits and rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumescan",
		"version": s.Version,
		"scan_limits": map[string]any{
			"max_file_size_bytes":   s.MaxFileSize,
			"max_batch_bytes":       s.MaxBatchBytes,
			"max_batch_files":       s.MaxBatchFiles,
			"request_timeout":       s.RequestTimeout.String(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
