package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescan/internal/analysis"
	scanerrors "resumescan/internal/errors"
	"resumescan/internal/extract"
	"resumescan/internal/observability"
	"resumescan/internal/types"
)

const sampleResume = `Jane Smith
jane.smith@example.com | (555) 123-4567 | linkedin.com/in/janesmith

Professional Summary
Software engineer with 6 years of experience building web services.

Experience
Senior Software Engineer, Acme Corp (2019 - 2024)
- Led migration of legacy services to Go and Kubernetes
- Reduced API latency by 40% through caching with Redis
- Implemented CI/CD pipelines with Jenkins and Docker
- Mentored 4 junior engineers

Education
Bachelor of Science in Computer Science, State University

Skills
Go, Python, JavaScript, SQL, Docker, Kubernetes, AWS, PostgreSQL, Redis, Git`

func testServer(t *testing.T) (*Server, *observability.ObservabilityManager) {
	t.Helper()
	logger, err := scanerrors.New("error")
	require.NoError(t, err)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	require.NoError(t, err)

	return &Server{
		Version:        "test",
		MaxFileSize:    1024 * 1024,
		MaxBatchBytes:  4 * 1024 * 1024,
		MaxBatchFiles:  5,
		RequestTimeout: 30 * time.Second,
		Engine:         analysis.NewEngine(analysis.DefaultVocabulary(), logger),
		Extractor:      extract.New(logger),
		StartTime:      time.Now(),
		Logger:         logger,
	}, om
}

func multipartUpload(t *testing.T, field string, files map[string]string, jobDescription string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if jobDescription != "" {
		require.NoError(t, writer.WriteField("job_description", jobDescription))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestScanHandlerHappyPath(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createScanHandler(om)

	body, contentType := multipartUpload(t, "file", map[string]string{"resume.txt": sampleResume}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, types.SchemaVersion, resp.SchemaVersion)
	require.NotNil(t, resp.Result)
	assert.Equal(t, types.ScoringTypeQuality, resp.Result.ScoringType)
}

func TestScanHandlerJobMatch(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createScanHandler(om)

	body, contentType := multipartUpload(t, "file", map[string]string{"resume.txt": sampleResume},
		"Backend engineer with Go and Kubernetes. 3 years of experience required.")
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, types.ScoringTypeJobMatch, resp.Result.ScoringType)
}

func TestScanHandlerValidationRejectionIs200(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createScanHandler(om)

	invoice := `Invoice #2024-118
Statement of charges for services rendered in July.
Payment is due within 30 days of the invoice date.
Please retain this receipt for your records.
Bill to: Acme Corporation, 100 Main Street.`

	body, contentType := multipartUpload(t, "file", map[string]string{"invoice.txt": invoice}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.True(t, resp.ValidationError)
	require.NotNil(t, resp.Result)
	assert.Equal(t, types.ScoringTypeValidationFailed, resp.Result.ScoringType)
	assert.Contains(t, resp.Result.Breakdown, "validation_confidence")
}

func TestScanHandlerRejectsGet(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createScanHandler(om)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScanHandlerMissingFile(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createScanHandler(om)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("job_description", "some role"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanHandlerOversizedFile(t *testing.T) {
	srv, om := testServer(t)
	srv.MaxFileSize = 256
	handler := srv.createScanHandler(om)

	body, contentType := multipartUpload(t, "file",
		map[string]string{"big.txt": strings.Repeat("resume content line\n", 100)}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, scanerrors.ErrCodeFileTooLarge, resp.Error)
}

func TestBatchScanHandler(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createBatchScanHandler(om)

	invoice := "Invoice #7 payment statement receipt bill due for services rendered this month."
	body, contentType := multipartUpload(t, "files", map[string]string{
		"resume.txt":  sampleResume,
		"invoice.txt": invoice,
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/batch-scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Summary.TotalProcessed)
	assert.Equal(t, 1, resp.Summary.Successful)
	assert.Equal(t, 1, resp.Summary.Failed)
	assert.Equal(t, 1, resp.Summary.ValidationFailed)
	require.Len(t, resp.Results, 2)

	// Successful scans sort ahead of failures.
	assert.True(t, resp.Results[0].Success)
	assert.Equal(t, "resume.txt", resp.Results[0].Filename)
	assert.False(t, resp.Results[1].Success)
}

func TestBatchScanHandlerEmpty(t *testing.T) {
	srv, om := testServer(t)
	handler := srv.createBatchScanHandler(om)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("job_description", "role"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/batch-scan", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchScanHandlerTooManyFiles(t *testing.T) {
	srv, om := testServer(t)
	srv.MaxBatchFiles = 2
	handler := srv.createBatchScanHandler(om)

	body, contentType := multipartUpload(t, "files", map[string]string{
		"a.txt": "one", "b.txt": "two", "c.txt": "three",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/batch-scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"unsupported format",
			scanerrors.NewValidationError(scanerrors.ErrCodeUnsupportedFormat, "bad format", nil),
			http.StatusUnsupportedMediaType,
			scanerrors.ErrCodeUnsupportedFormat,
		},
		{
			"file too large",
			scanerrors.NewValidationError(scanerrors.ErrCodeFileTooLarge, "too big", nil),
			http.StatusRequestEntityTooLarge,
			scanerrors.ErrCodeFileTooLarge,
		},
		{
			"corrupt document",
			scanerrors.NewExtractionError(scanerrors.ErrCodeCorruptDocument, "corrupt", nil),
			http.StatusUnprocessableEntity,
			scanerrors.ErrCodeCorruptDocument,
		},
		{
			"extraction timeout",
			scanerrors.NewExtractionError(scanerrors.ErrCodeExtractionTimeout, "slow", nil),
			http.StatusGatewayTimeout,
			scanerrors.ErrCodeExtractionTimeout,
		},
		{
			"bare deadline",
			context.DeadlineExceeded,
			http.StatusGatewayTimeout,
			scanerrors.ErrCodeExtractionTimeout,
		},
		{
			"unknown error",
			assert.AnError,
			http.StatusInternalServerError,
			"INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, message := scanErrorStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, message)
		})
	}
}

func TestSortBatchResults(t *testing.T) {
	success := func(name string, score int) types.BatchFileResult {
		return types.BatchFileResult{
			Filename: name,
			AnalysisResponse: types.AnalysisResponse{
				Success: true,
				Result:  &types.AnalysisResult{OverallScore: score},
			},
		}
	}
	failure := func(name string) types.BatchFileResult {
		return types.BatchFileResult{
			Filename:         name,
			AnalysisResponse: types.AnalysisResponse{Error: "CORRUPT_DOCUMENT"},
		}
	}

	results := []types.BatchFileResult{
		failure("bad-1.pdf"),
		success("low.txt", 40),
		failure("bad-2.pdf"),
		success("high.txt", 90),
	}
	sortBatchResults(results)

	assert.Equal(t, "high.txt", results[0].Filename)
	assert.Equal(t, "low.txt", results[1].Filename)
	// Failures keep their upload order after the successes.
	assert.Equal(t, "bad-1.pdf", results[2].Filename)
	assert.Equal(t, "bad-2.pdf", results[3].Filename)
}
