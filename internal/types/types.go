package types

// SchemaVersion identifies the analysis response schema. Bump when the
// response shape changes in a way clients must branch on.
const SchemaVersion = "2"

// Scoring type values carried in AnalysisResult.ScoringType.
const (
	ScoringTypeJobMatch         = "job_match"
	ScoringTypeQuality          = "quality"
	ScoringTypeValidationFailed = "validation_failed"
)

// DocumentFormat identifies a supported upload format
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatDOC  DocumentFormat = "doc"
	FormatTXT  DocumentFormat = "txt"
)

// Document is an in-memory upload before extraction
type Document struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// ExtractedDocument is the extractor output consumed by the analysis pipeline
type ExtractedDocument struct {
	Format    DocumentFormat `json:"format"`
	Text      string         `json:"text"`
	Lines     []string       `json:"-"`
	PageCount int            `json:"page_count"`
	// FontUsage maps font name to the number of text spans rendered with it.
	// Empty for plain-text formats.
	FontUsage map[string]int `json:"-"`
}

// Section is one segmented region of the resume. Regions partition the
// line range: every line belongs to exactly one section.
type Section struct {
	Name      string `json:"name"` // canonical name (experience, education, ...)
	Heading   string `json:"heading"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"` // exclusive
	Body      string `json:"body"`
}

// ContactInfo holds contact signals extracted from the header region
type ContactInfo struct {
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Links []string `json:"links"`
}

// GrammarFlaw is a single style or grammar finding with its source line
type GrammarFlaw struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// Readability carries the standard readability formulas plus reading time
type Readability struct {
	FleschReadingEase     float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade    float64 `json:"flesch_kincaid_grade"`
	GunningFogIndex       float64 `json:"gunning_fog_index"`
	SMOGIndex             float64 `json:"smog_index"`
	AutomatedReadability  float64 `json:"automated_readability_index"`
	ColemanLiauIndex      float64 `json:"coleman_liau_index"`
	DifficultWords        int     `json:"difficult_words"`
	SyllableCount         int     `json:"syllable_count"`
	ReadingTimeMinutes    float64 `json:"reading_time_minutes"`
}

// ParsedResume aggregates every signal extractor's output
type ParsedResume struct {
	Skills          []string    `json:"skills"`
	Industry        string      `json:"industry"`
	ExperienceYears int         `json:"experience_years"`
	Education       []string    `json:"education"`
	ContactInfo     ContactInfo `json:"contact_info"`
	SectionsPresent []string    `json:"sections_present"`
	SectionsMissing []string    `json:"sections_missing"`
	Sections        []Section   `json:"-"`
	WordCount       int         `json:"word_count"`
	SentenceCount   int         `json:"-"`
	BulletPoints    int         `json:"bullet_points"`
	ActionVerbs     int         `json:"action_verbs"`
	WeakVerbs       int         `json:"-"`
	Pronouns        int         `json:"-"`
	Buzzwords       int         `json:"-"`
	Quantified      int         `json:"-"`
	GrammarFlaws    []GrammarFlaw `json:"grammar_flaws"`
	FormattingIssues []string   `json:"formatting_issues"`
	Readability     Readability `json:"readability"`
}

// Validation is the resume-or-not gate verdict
type Validation struct {
	IsResume   bool     `json:"is_resume"`
	Confidence float64  `json:"confidence"` // 0..1
	Reasons    []string `json:"reasons,omitempty"`
}

// AnalysisResult is the scored outcome of one scan
type AnalysisResult struct {
	OverallScore     int            `json:"overall_score"`
	ScoringType      string         `json:"scoring_type"`
	Breakdown        map[string]int `json:"breakdown"`
	Feedback         []string       `json:"feedback"`
	Recommendations  []string       `json:"recommendations"`
	Partial          bool           `json:"partial,omitempty"`
	FailedExtractors []string       `json:"failed_extractors,omitempty"`
}

// AnalysisResponse is the canonical single-scan API body
type AnalysisResponse struct {
	Success         bool            `json:"success"`
	SchemaVersion   string          `json:"schema_version"`
	Result          *AnalysisResult `json:"result,omitempty"`
	ParsedData      *ParsedResume   `json:"parsed_data,omitempty"`
	Error           string          `json:"error,omitempty"`
	ValidationError bool            `json:"validation_error,omitempty"`
	Message         string          `json:"message,omitempty"`
}

// BatchFileResult pairs one uploaded file with its scan outcome
type BatchFileResult struct {
	Filename string `json:"filename"`
	AnalysisResponse
}

// BatchSummary counts outcomes across a batch
type BatchSummary struct {
	TotalProcessed   int `json:"total_processed"`
	Successful       int `json:"successful"`
	Failed           int `json:"failed"`
	ValidationFailed int `json:"validation_failed"`
	ProcessingFailed int `json:"processing_failed"`
}

// BatchResponse is the batch-scan API body. Results are sorted by
// overall score descending with failures after all successes.
type BatchResponse struct {
	Success       bool              `json:"success"`
	SchemaVersion string            `json:"schema_version"`
	Results       []BatchFileResult `json:"results"`
	Summary       BatchSummary      `json:"summary"`
}

// EnhanceInput is the optional AI pass over rule-generated recommendations
type EnhanceInput struct {
	ResumeText      string   `json:"resumeText"`
	JobDescription  string   `json:"jobDescription,omitempty"`
	Feedback        []string `json:"feedback"`
	Recommendations []string `json:"recommendations"`
}

// EnhanceOutput is the AI enhancement result: up to three extra suggestions
type EnhanceOutput struct {
	Suggestions []string `json:"suggestions"`
}
