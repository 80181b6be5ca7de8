package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	scanerrors "resumescan/internal/errors"
	"resumescan/internal/observability"
	"resumescan/internal/types"
)

// multipartMemoryLimit bounds the in-memory portion of multipart parsing;
// larger parts spill to temporary files.
const multipartMemoryLimit = 10 << 20

// createScanHandler handles POST /api/scan (and its /analyze alias):
// one resume upload, optional job description, one analysis response.
func (s *Server) createScanHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErrorResponse(w, "Method not allowed", "Only POST method is supported", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		metrics := om.GetMetrics()
		done := metrics.RequestStarted(ctx)
		defer done()

		doc, jobDescription, ok := s.readScanUpload(w, r)
		if !ok {
			return
		}

		scanCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()

		start := time.Now()
		response, err := s.runScan(scanCtx, doc, jobDescription)
		if err != nil {
			metrics.TrackScan(ctx, "error", time.Since(start), false)
			status, code, message := scanErrorStatus(err)
			if code == scanerrors.ErrCodeExtractionTimeout {
				s.Logger.Warn("Scan timed out", "filename", doc.Filename, "timeout", s.RequestTimeout)
			} else {
				s.Logger.LogError(err, "Scan failed", "filename", doc.Filename)
			}
			writeErrorResponse(w, code, message, status)
			return
		}

		s.recordScanOutcome(ctx, metrics, response, time.Since(start))

		if response.Success && response.Result != nil {
			s.enhanceRecommendations(scanCtx, metrics, doc, jobDescription, response)
		}

		s.Logger.Info("Scan completed",
			"filename", doc.Filename,
			"success", response.Success,
			"duration", time.Since(start))

		writeJSONResponse(w, http.StatusOK, response)
	}
}

// createBatchScanHandler handles POST /api/batch-scan: up to MaxBatchFiles
// uploads under the "files" field, each scanned in isolation.
func (s *Server) createBatchScanHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErrorResponse(w, "Method not allowed", "Only POST method is supported", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		metrics := om.GetMetrics()
		done := metrics.RequestStarted(ctx)
		defer done()

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			writeErrorResponse(w, "Invalid request", "Failed to parse multipart form data", http.StatusBadRequest)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				r.MultipartForm.RemoveAll()
			}
		}()

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			writeErrorResponse(w, "Missing files", "At least one file is required under the 'files' field", http.StatusBadRequest)
			return
		}
		if len(files) > s.MaxBatchFiles {
			writeErrorResponse(w, "Too many files",
				fmt.Sprintf("Batch size exceeds the maximum of %d files", s.MaxBatchFiles), http.StatusBadRequest)
			return
		}

		var totalBytes int64
		for _, header := range files {
			totalBytes += header.Size
		}
		if totalBytes > s.MaxBatchBytes {
			writeErrorResponse(w, "Batch too large",
				fmt.Sprintf("Combined upload size exceeds the maximum of %d bytes", s.MaxBatchBytes), http.StatusRequestEntityTooLarge)
			return
		}

		jobDescription := r.FormValue("job_description")
		metrics.RecordBatchFiles(ctx, len(files))

		batch := &types.BatchResponse{
			Success:       true,
			SchemaVersion: types.SchemaVersion,
			Results:       make([]types.BatchFileResult, 0, len(files)),
		}
		batch.Summary.TotalProcessed = len(files)

		for _, header := range files {
			result := s.scanBatchFile(ctx, metrics, header, jobDescription)

			switch {
			case result.Success:
				batch.Summary.Successful++
			case result.ValidationError:
				batch.Summary.ValidationFailed++
				batch.Summary.Failed++
			default:
				batch.Summary.ProcessingFailed++
				batch.Summary.Failed++
			}
			batch.Results = append(batch.Results, result)
		}

		sortBatchResults(batch.Results)

		s.Logger.Info("Batch scan completed",
			"total", batch.Summary.TotalProcessed,
			"successful", batch.Summary.Successful,
			"failed", batch.Summary.Failed)

		writeJSONResponse(w, http.StatusOK, batch)
	}
}

// readScanUpload parses the single-file multipart request. On failure it
// writes the error response itself and returns ok=false.
func (s *Server) readScanUpload(w http.ResponseWriter, r *http.Request) (*types.Document, string, bool) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeErrorResponse(w, "Invalid request", "Failed to parse multipart form data", http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, "Missing file", "A resume file is required under the 'file' field", http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	if header.Size > s.MaxFileSize {
		writeErrorResponse(w, scanerrors.ErrCodeFileTooLarge,
			fmt.Sprintf("File exceeds the maximum size of %d bytes", s.MaxFileSize), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.MaxFileSize+1))
	if err != nil {
		writeErrorResponse(w, "Invalid request", "Failed to read uploaded file", http.StatusBadRequest)
		return nil, "", false
	}
	if int64(len(data)) > s.MaxFileSize {
		writeErrorResponse(w, scanerrors.ErrCodeFileTooLarge,
			fmt.Sprintf("File exceeds the maximum size of %d bytes", s.MaxFileSize), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}

	doc := &types.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}
	return doc, r.FormValue("job_description"), true
}

// runScan drives one document through extraction and analysis.
func (s *Server) runScan(ctx context.Context, doc *types.Document, jobDescription string) (*types.AnalysisResponse, error) {
	extracted, err := s.Extractor.Extract(ctx, doc)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, scanerrors.NewExtractionError(scanerrors.ErrCodeExtractionTimeout,
				"Document extraction timed out", err)
		}
		return nil, err
	}
	return s.Engine.Analyze(ctx, extracted, jobDescription)
}

// scanBatchFile processes one file of a batch. Failures are folded into the
// result body so one bad file never fails the batch.
func (s *Server) scanBatchFile(ctx context.Context, metrics *observability.Metrics, header *multipart.FileHeader, jobDescription string) types.BatchFileResult {
	result := types.BatchFileResult{
		Filename: header.Filename,
		AnalysisResponse: types.AnalysisResponse{
			SchemaVersion: types.SchemaVersion,
		},
	}

	if header.Size > s.MaxFileSize {
		result.Error = scanerrors.ErrCodeFileTooLarge
		result.Message = fmt.Sprintf("File exceeds the maximum size of %d bytes", s.MaxFileSize)
		return result
	}

	file, err := header.Open()
	if err != nil {
		result.Error = "FILE_READ_FAILED"
		result.Message = "Failed to open uploaded file"
		return result
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.MaxFileSize+1))
	if err != nil {
		result.Error = "FILE_READ_FAILED"
		result.Message = "Failed to read uploaded file"
		return result
	}
	if int64(len(data)) > s.MaxFileSize {
		result.Error = scanerrors.ErrCodeFileTooLarge
		result.Message = fmt.Sprintf("File exceeds the maximum size of %d bytes", s.MaxFileSize)
		return result
	}

	doc := &types.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	start := time.Now()
	response, err := s.runScan(scanCtx, doc, jobDescription)
	if err != nil {
		metrics.TrackScan(ctx, "error", time.Since(start), false)
		_, code, message := scanErrorStatus(err)
		s.Logger.Warn("Batch file scan failed", "filename", doc.Filename, "code", code)
		result.Error = code
		result.Message = message
		return result
	}

	s.recordScanOutcome(ctx, metrics, response, time.Since(start))
	result.AnalysisResponse = *response
	return result
}

// recordScanOutcome emits the scan metrics for a completed pipeline run,
// including validation rejections that are reported as error-as-data.
func (s *Server) recordScanOutcome(ctx context.Context, metrics *observability.Metrics, response *types.AnalysisResponse, duration time.Duration) {
	scoringType := types.ScoringTypeValidationFailed
	if response.Result != nil {
		scoringType = response.Result.ScoringType
	}
	metrics.TrackScan(ctx, scoringType, duration, response.Success)

	if response.ValidationError {
		metrics.RecordValidationRejection(ctx)
	}
	if response.Result != nil {
		for _, extractor := range response.Result.FailedExtractors {
			metrics.RecordExtractorFailure(ctx, extractor)
		}
	}
}

// enhanceRecommendations runs the optional AI pass and appends its
// suggestions to the rule-generated recommendations. Enhancement failures
// are logged and swallowed: the deterministic result always stands.
func (s *Server) enhanceRecommendations(ctx context.Context, metrics *observability.Metrics, doc *types.Document, jobDescription string, response *types.AnalysisResponse) {
	if s.AIService == nil {
		return
	}

	input := types.EnhanceInput{
		JobDescription:  jobDescription,
		Feedback:        response.Result.Feedback,
		Recommendations: response.Result.Recommendations,
	}
	if response.ParsedData != nil {
		input.ResumeText = resumeTextForEnhancement(response)
	}

	var output types.EnhanceOutput
	err := metrics.TrackAIOperationWithTokens(ctx, "enhance_recommendations", func(ctx context.Context) *observability.AIOperationResult {
		enhanced, usage, err := s.AIService.Provider.EnhanceRecommendations(ctx, input)
		result := &observability.AIOperationResult{Error: err}
		if usage != nil {
			result.TokenUsage = &observability.TokenUsage{
				InputTokens:  usage.InputTokens,
				OutputTokens: usage.OutputTokens,
				TotalTokens:  usage.TotalTokens,
			}
		}
		output = enhanced
		return result
	})
	if err != nil {
		s.Logger.Warn("AI enhancement failed, returning rule-based result",
			"filename", doc.Filename,
			"error", err.Error())
		return
	}

	response.Result.Recommendations = append(response.Result.Recommendations, output.Suggestions...)
}

// resumeTextForEnhancement rebuilds the text handed to the AI pass from the
// segmented sections so the prompt sees what the analyzers saw.
func resumeTextForEnhancement(response *types.AnalysisResponse) string {
	var parts []string
	for _, section := range response.ParsedData.Sections {
		if section.Body != "" {
			parts = append(parts, section.Body)
		}
	}
	return strings.Join(parts, "\n\n")
}

// scanErrorStatus maps pipeline errors to HTTP status, error code, and a
// client-safe message.
func scanErrorStatus(err error) (int, string, string) {
	var appErr *scanerrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case scanerrors.ErrCodeUnsupportedFormat:
			return http.StatusUnsupportedMediaType, appErr.Code, appErr.Message
		case scanerrors.ErrCodeFileTooLarge:
			return http.StatusRequestEntityTooLarge, appErr.Code, appErr.Message
		case scanerrors.ErrCodeCorruptDocument:
			return http.StatusUnprocessableEntity, appErr.Code, appErr.Message
		case scanerrors.ErrCodeExtractionTimeout:
			return http.StatusGatewayTimeout, appErr.Code, appErr.Message
		default:
			return http.StatusInternalServerError, appErr.Code, appErr.Message
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, scanerrors.ErrCodeExtractionTimeout, "Document processing timed out"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"
}

// sortBatchResults orders successes first by overall score descending;
// failed files keep their upload order after all successes.
func sortBatchResults(results []types.BatchFileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].Success, results[j].Success
		if si != sj {
			return si
		}
		if !si {
			return false
		}
		return results[i].Result.OverallScore > results[j].Result.OverallScore
	})
}

// writeJSONResponse writes a JSON response body with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
