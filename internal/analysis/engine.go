package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// Pipeline stages, advanced in order by Analyze. Error paths short-circuit
// out of whatever stage they occur in.
type stage string

const (
	stageReceived  stage = "received"
	stageSegmented stage = "segmented"
	stageAnalyzed  stage = "analyzed"
	stageValidated stage = "validated"
	stageScored    stage = "scored"
	stageAssembled stage = "assembled"
)

// Engine runs the full analysis pipeline over extracted documents. It is
// immutable after construction and safe for concurrent scans.
type Engine struct {
	vocab  *Vocabulary
	parser *Parser
	logger *errors.Logger
}

// NewEngine builds an engine around the given vocabulary.
func NewEngine(vocab *Vocabulary, logger *errors.Logger) *Engine {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Engine{
		vocab:  vocab,
		parser: NewParser(vocab),
		logger: logger,
	}
}

// VocabularySize exposes the lexicon size for health reporting.
func (e *Engine) VocabularySize() int {
	return e.vocab.Size()
}

// Analyze runs segmentation, the signal extractors, the validation gate and
// the appropriate scorer over one extracted document. Validation rejection
// is reported in the response body, not as an error; the error return is
// reserved for context cancellation.
func (e *Engine) Analyze(ctx context.Context, doc *types.ExtractedDocument, jobDescription string) (*types.AnalysisResponse, error) {
	tracer := otel.Tracer("resumescan.analysis")
	ctx, span := tracer.Start(ctx, "analysis.analyze")
	defer span.End()

	current := stageReceived
	advance := func(next stage) error {
		if err := ctx.Err(); err != nil {
			return errors.NewAnalysisError(errors.ErrCodeExtractionTimeout,
				fmt.Sprintf("analysis cancelled between %s and %s", current, next), err)
		}
		e.logger.Debug("Pipeline stage", "from", string(current), "to", string(next))
		current = next
		return nil
	}

	sections := SegmentSections(doc.Lines)
	present, missing := SectionPresence(sections)
	if err := advance(stageSegmented); err != nil {
		return nil, err
	}

	parsed := &types.ParsedResume{
		SectionsPresent: present,
		SectionsMissing: missing,
		Sections:        sections,
		WordCount:       len(strings.Fields(doc.Text)),
		SentenceCount:   countSentences(doc.Text),
	}
	failed := e.runExtractors(doc, parsed)
	if err := advance(stageAnalyzed); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("resume.word_count", parsed.WordCount),
		attribute.Int("resume.skills", len(parsed.Skills)),
		attribute.Int("resume.failed_extractors", len(failed)),
	)

	verdict := Validate(doc.Text, parsed, e.vocab)
	if err := advance(stageValidated); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Bool("resume.validated", verdict.IsResume),
		attribute.Float64("resume.validation_confidence", verdict.Confidence),
	)
	if !verdict.IsResume {
		return rejectionResponse(verdict), nil
	}

	var card *ScoreCard
	if strings.TrimSpace(jobDescription) != "" {
		card = MatchJob(parsed, doc.Text, jobDescription, e.parser)
	} else {
		card = AssessQuality(doc, parsed)
	}
	result := Aggregate(card, failed)
	if err := advance(stageScored); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("resume.overall_score", result.OverallScore),
		attribute.String("resume.scoring_type", result.ScoringType),
	)

	resp := &types.AnalysisResponse{
		Success:       true,
		SchemaVersion: types.SchemaVersion,
		Result:        result,
		ParsedData:    parsed,
	}
	if err := advance(stageAssembled); err != nil {
		return nil, err
	}
	return resp, nil
}

// runExtractors fans the signal extractors out concurrently. Each writes to
// disjoint fields of parsed, so no locking is needed on the result; a panic
// in one extractor is recovered and recorded without disturbing the rest.
func (e *Engine) runExtractors(doc *types.ExtractedDocument, parsed *types.ParsedResume) []string {
	experienceBody := doc.Text
	if section, ok := FindSection(parsed.Sections, "experience"); ok {
		experienceBody = section.Body
	}

	extractors := []struct {
		name string
		run  func()
	}{
		{"contact", func() {
			email, phone, links := e.parser.ExtractContact(doc.Text)
			parsed.ContactInfo = types.ContactInfo{Email: email, Phone: phone, Links: links}
		}},
		{"skills", func() {
			parsed.Skills, parsed.Industry = e.parser.ExtractSkills(doc.Text)
		}},
		{"experience", func() {
			parsed.ExperienceYears = e.parser.ExtractExperienceYears(doc.Text, experienceBody)
		}},
		{"education", func() {
			parsed.Education = e.parser.ExtractEducation(doc.Text)
		}},
		{"bullets", func() {
			parsed.BulletPoints = e.parser.CountBullets(doc.Lines)
			parsed.ActionVerbs, parsed.WeakVerbs = e.parser.CountActionVerbs(doc.Text)
			parsed.Quantified = e.parser.CountQuantified(doc.Text)
		}},
		{"grammar", func() {
			report := CheckGrammar(doc.Lines, e.vocab)
			parsed.GrammarFlaws = report.Flaws
			parsed.Pronouns = report.Pronouns
			parsed.Buzzwords = report.Buzzwords
		}},
		{"readability", func() {
			parsed.Readability = AnalyzeReadability(doc.Text)
		}},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []string
	)
	for _, ex := range extractors {
		wg.Add(1)
		go func(name string, run func()) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					failures = append(failures, name)
					mu.Unlock()
					e.logger.LogError(
						errors.NewAnalysisError(errors.ErrCodePartialExtraction,
							fmt.Sprintf("extractor %s panicked: %v", name, r), nil),
						"Signal extractor failed", "extractor", name)
				}
			}()
			run()
		}(ex.name, ex.run)
	}
	wg.Wait()

	// Formatting issues need bullets and sections, so they run after the
	// fan-out completes.
	_, parsed.FormattingIssues = CheckFormat(doc, parsed)
	return failures
}

// rejectionResponse assembles the error-as-data body for documents that do
// not read as resumes. Transported as HTTP 200; clients branch on the
// validation_error flag.
func rejectionResponse(verdict types.Validation) *types.AnalysisResponse {
	confidence := int(math.Round(verdict.Confidence * 100))
	return &types.AnalysisResponse{
		Success:         false,
		SchemaVersion:   types.SchemaVersion,
		Error:           "Document validation failed",
		ValidationError: true,
		Message:         "This document does not appear to be a resume or CV",
		Result: &types.AnalysisResult{
			OverallScore: 0,
			ScoringType:  types.ScoringTypeValidationFailed,
			Breakdown:    map[string]int{"validation_confidence": confidence},
			Feedback: append([]string{
				fmt.Sprintf("Document validation failed (confidence: %d%%)", confidence),
				"This document does not appear to be a resume or CV",
			}, prefixReasons(verdict.Reasons)...),
			Recommendations: []string{
				"Please upload a valid resume or CV document",
				"Ensure the document contains typical resume sections like Experience, Education, Skills",
				"Check that the document includes contact information and professional details",
			},
		},
	}
}

func prefixReasons(reasons []string) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, "Reason: "+r)
	}
	return out
}
