package formatters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescan/internal/types"
)

func scanResponse() *types.AnalysisResponse {
	return &types.AnalysisResponse{
		Success:       true,
		SchemaVersion: types.SchemaVersion,
		Result: &types.AnalysisResult{
			OverallScore: 72,
			ScoringType:  types.ScoringTypeJobMatch,
			Breakdown: map[string]int{
				"skills_match":      95,
				"keyword_relevance": 40,
			},
			Feedback:        []string{"Strong skills overlap"},
			Recommendations: []string{"Add measurable outcomes to bullet points"},
		},
		ParsedData: &types.ParsedResume{
			WordCount:    400,
			BulletPoints: 8,
			Skills:       []string{"Go", "Docker"},
		},
	}
}

func TestFormatJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(scanResponse(), "json")
	require.NoError(t, err)

	var decoded types.AnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 72, decoded.Result.OverallScore)
}

func TestFormatAnalysisText(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(scanResponse(), "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Overall Score: 72/100 (job_match)")
	assert.Contains(t, out, "skills_match")
	assert.Contains(t, out, "1. Add measurable outcomes to bullet points")
	assert.Contains(t, out, "Strong skills overlap")
}

func TestFormatAnalysisMarkdown(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(scanResponse(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Resume Scan")
	assert.Contains(t, out, "**Overall Score:** 72/100 (job_match)")
	assert.Contains(t, out, "| skills_match | 95/100 |")
}

func TestFormatFailedScan(t *testing.T) {
	registry := NewFormatterRegistry()
	failed := &types.AnalysisResponse{
		Success: false,
		Error:   "CORRUPT_DOCUMENT",
		Message: "No extractable text in document",
	}

	out, err := registry.Format(failed, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "SCAN FAILED")
	assert.Contains(t, out, "CORRUPT_DOCUMENT")
}

func TestFormatBatch(t *testing.T) {
	registry := NewFormatterRegistry()
	batch := &types.BatchResponse{
		Success:       true,
		SchemaVersion: types.SchemaVersion,
		Results: []types.BatchFileResult{
			{
				Filename: "good.txt",
				AnalysisResponse: types.AnalysisResponse{
					Success: true,
					Result:  &types.AnalysisResult{OverallScore: 81, ScoringType: types.ScoringTypeQuality},
				},
			},
			{
				Filename:         "bad.pdf",
				AnalysisResponse: types.AnalysisResponse{Error: "CORRUPT_DOCUMENT"},
			},
		},
		Summary: types.BatchSummary{
			TotalProcessed:   2,
			Successful:       1,
			Failed:           1,
			ProcessingFailed: 1,
		},
	}

	text, err := registry.Format(batch, "text")
	require.NoError(t, err)
	assert.Contains(t, text, "Processed: 2, Successful: 1, Failed: 1")
	assert.Contains(t, text, "81/100")
	assert.Contains(t, text, "FAILED: CORRUPT_DOCUMENT")

	md, err := registry.Format(batch, "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "| good.txt | 81/100 | quality |")
	assert.Contains(t, md, "| bad.pdf | - | CORRUPT_DOCUMENT |")
}

func TestFormatValueAndPointerDispatch(t *testing.T) {
	registry := NewFormatterRegistry()

	byValue, err := registry.Format(*scanResponse(), "text")
	require.NoError(t, err)
	byPointer, err := registry.Format(scanResponse(), "text")
	require.NoError(t, err)
	assert.Equal(t, byPointer, byValue)
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	_, err := registry.Format(scanResponse(), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no formatter found")
}

func TestJSONFallbackForArbitraryData(t *testing.T) {
	registry := NewFormatterRegistry()
	out, err := registry.Format(map[string]int{"a": 1}, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, out)
}
