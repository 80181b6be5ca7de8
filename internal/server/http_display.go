package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health          - Health check")
	fmt.Println("  GET  /stats           - Server statistics")
	fmt.Println("  POST /api/scan        - Scan a resume (requires API key)")
	fmt.Println("  POST /api/batch-scan  - Scan a batch of resumes (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to the scan endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows upload size limit configuration
func (s *Server) displayRequestLimitInfo() {
	fmt.Printf("Upload limits: %.1f MB per file, %.1f MB per batch (max %d files)\n",
		float64(s.MaxFileSize)/(1024*1024),
		float64(s.MaxBatchBytes)/(1024*1024),
		s.MaxBatchFiles)
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
