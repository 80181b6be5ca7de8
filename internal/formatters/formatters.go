package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resumescan/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResponse", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResponse", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "BatchResponse", &BatchTextFormatter{})
	registry.RegisterFormatter("markdown", "BatchResponse", &BatchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResponse, *types.AnalysisResponse:
		return "AnalysisResponse"
	case types.BatchResponse, *types.BatchResponse:
		return "BatchResponse"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func asAnalysisResponse(data any) (*types.AnalysisResponse, bool) {
	switch v := data.(type) {
	case types.AnalysisResponse:
		return &v, true
	case *types.AnalysisResponse:
		return v, true
	default:
		return nil, false
	}
}

func asBatchResponse(data any) (*types.BatchResponse, bool) {
	switch v := data.(type) {
	case types.BatchResponse:
		return &v, true
	case *types.BatchResponse:
		return v, true
	default:
		return nil, false
	}
}

// sortedBreakdown returns breakdown component names in stable order
func sortedBreakdown(breakdown map[string]int) []string {
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnalysisTextFormatter handles text formatting for scan results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResponse(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResponse, got %T", data)
	}

	var output strings.Builder

	if !result.Success {
		output.WriteString("=== SCAN FAILED ===\n\n")
		output.WriteString(fmt.Sprintf("Error: %s\n", result.Error))
		if result.Message != "" {
			output.WriteString(fmt.Sprintf("Details: %s\n", result.Message))
		}
		return output.String(), nil
	}

	r := result.Result
	output.WriteString("=== RESUME SCAN ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100 (%s)\n", r.OverallScore, r.ScoringType))
	if r.Partial {
		output.WriteString(fmt.Sprintf("Partial result: extractors failed: %s\n",
			strings.Join(r.FailedExtractors, ", ")))
	}
	output.WriteString("\n")

	if len(r.Breakdown) > 0 {
		output.WriteString("=== SCORE BREAKDOWN ===\n")
		for _, name := range sortedBreakdown(r.Breakdown) {
			output.WriteString(fmt.Sprintf("  %-20s %d/100\n", name, r.Breakdown[name]))
		}
		output.WriteString("\n")
	}

	if len(r.Feedback) > 0 {
		output.WriteString("=== FEEDBACK ===\n")
		for _, item := range r.Feedback {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, rec := range r.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if parsed := result.ParsedData; parsed != nil {
		output.WriteString("=== PARSED RESUME ===\n")
		output.WriteString(fmt.Sprintf("Words: %d, Bullet points: %d, Action verbs: %d\n",
			parsed.WordCount, parsed.BulletPoints, parsed.ActionVerbs))
		if parsed.Industry != "" {
			output.WriteString(fmt.Sprintf("Industry: %s\n", parsed.Industry))
		}
		if parsed.ExperienceYears > 0 {
			output.WriteString(fmt.Sprintf("Experience: %d years\n", parsed.ExperienceYears))
		}
		if len(parsed.Skills) > 0 {
			output.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(parsed.Skills, ", ")))
		}
		if len(parsed.SectionsPresent) > 0 {
			output.WriteString(fmt.Sprintf("Sections present: %s\n", strings.Join(parsed.SectionsPresent, ", ")))
		}
		if len(parsed.SectionsMissing) > 0 {
			output.WriteString(fmt.Sprintf("Sections missing: %s\n", strings.Join(parsed.SectionsMissing, ", ")))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResponse"
}

// AnalysisMarkdownFormatter handles markdown formatting for scan results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResponse(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResponse, got %T", data)
	}

	var output strings.Builder

	if !result.Success {
		output.WriteString("# Scan Failed\n\n")
		output.WriteString(fmt.Sprintf("**Error:** %s\n\n", result.Error))
		if result.Message != "" {
			output.WriteString(fmt.Sprintf("%s\n", result.Message))
		}
		return output.String(), nil
	}

	r := result.Result
	output.WriteString("# Resume Scan\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100 (%s)\n\n", r.OverallScore, r.ScoringType))
	if r.Partial {
		output.WriteString(fmt.Sprintf("*Partial result, failed extractors: %s*\n\n",
			strings.Join(r.FailedExtractors, ", ")))
	}

	if len(r.Breakdown) > 0 {
		output.WriteString("## Score Breakdown\n\n")
		output.WriteString("| Component | Score |\n|---|---|\n")
		for _, name := range sortedBreakdown(r.Breakdown) {
			output.WriteString(fmt.Sprintf("| %s | %d/100 |\n", name, r.Breakdown[name]))
		}
		output.WriteString("\n")
	}

	if len(r.Feedback) > 0 {
		output.WriteString("## Feedback\n\n")
		for _, item := range r.Feedback {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range r.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if parsed := result.ParsedData; parsed != nil {
		output.WriteString("## Parsed Resume\n\n")
		output.WriteString(fmt.Sprintf("- **Words:** %d\n", parsed.WordCount))
		output.WriteString(fmt.Sprintf("- **Bullet points:** %d\n", parsed.BulletPoints))
		output.WriteString(fmt.Sprintf("- **Action verbs:** %d\n", parsed.ActionVerbs))
		if parsed.Industry != "" {
			output.WriteString(fmt.Sprintf("- **Industry:** %s\n", parsed.Industry))
		}
		if parsed.ExperienceYears > 0 {
			output.WriteString(fmt.Sprintf("- **Experience:** %d years\n", parsed.ExperienceYears))
		}
		if len(parsed.Skills) > 0 {
			output.WriteString(fmt.Sprintf("- **Skills:** %s\n", strings.Join(parsed.Skills, ", ")))
		}
		if len(parsed.SectionsMissing) > 0 {
			output.WriteString(fmt.Sprintf("- **Sections missing:** %s\n", strings.Join(parsed.SectionsMissing, ", ")))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResponse"
}

// BatchTextFormatter handles text formatting for batch scan results
type BatchTextFormatter struct{}

func (btf *BatchTextFormatter) Format(data any) (string, error) {
	batch, ok := asBatchResponse(data)
	if !ok {
		return "", fmt.Errorf("expected BatchResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== BATCH SCAN ===\n\n")
	output.WriteString(fmt.Sprintf("Processed: %d, Successful: %d, Failed: %d (validation: %d, processing: %d)\n\n",
		batch.Summary.TotalProcessed,
		batch.Summary.Successful,
		batch.Summary.Failed,
		batch.Summary.ValidationFailed,
		batch.Summary.ProcessingFailed))

	for _, file := range batch.Results {
		if file.Success && file.Result != nil {
			output.WriteString(fmt.Sprintf("%-40s %d/100 (%s)\n",
				file.Filename, file.Result.OverallScore, file.Result.ScoringType))
		} else {
			output.WriteString(fmt.Sprintf("%-40s FAILED: %s\n", file.Filename, file.Error))
		}
	}

	return output.String(), nil
}

func (btf *BatchTextFormatter) SupportedType() string {
	return "BatchResponse"
}

// BatchMarkdownFormatter handles markdown formatting for batch scan results
type BatchMarkdownFormatter struct{}

func (bmf *BatchMarkdownFormatter) Format(data any) (string, error) {
	batch, ok := asBatchResponse(data)
	if !ok {
		return "", fmt.Errorf("expected BatchResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Batch Scan\n\n")
	output.WriteString(fmt.Sprintf("**Processed:** %d  \n**Successful:** %d  \n**Failed:** %d (validation: %d, processing: %d)\n\n",
		batch.Summary.TotalProcessed,
		batch.Summary.Successful,
		batch.Summary.Failed,
		batch.Summary.ValidationFailed,
		batch.Summary.ProcessingFailed))

	output.WriteString("| File | Score | Outcome |\n|---|---|---|\n")
	for _, file := range batch.Results {
		if file.Success && file.Result != nil {
			output.WriteString(fmt.Sprintf("| %s | %d/100 | %s |\n",
				file.Filename, file.Result.OverallScore, file.Result.ScoringType))
		} else {
			output.WriteString(fmt.Sprintf("| %s | - | %s |\n", file.Filename, file.Error))
		}
	}

	return output.String(), nil
}

func (bmf *BatchMarkdownFormatter) SupportedType() string {
	return "BatchResponse"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
