package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescan/internal/types"
)

func TestValidatePassesRealResume(t *testing.T) {
	text := strings.Join(sampleResumeLines(), "\n")
	parsed := &types.ParsedResume{
		SectionsPresent: []string{"summary", "experience", "education", "skills"},
		ContactInfo: types.ContactInfo{
			Email: "jane.smith@example.com",
			Phone: "(555) 123-4567",
			Links: []string{"linkedin.com/in/janesmith"},
		},
		Skills:       []string{"Go", "Python", "SQL", "Docker", "Kubernetes"},
		WordCount:    400,
		BulletPoints: 8,
	}

	verdict := Validate(text, parsed, DefaultVocabulary())
	assert.True(t, verdict.IsResume)
	assert.GreaterOrEqual(t, verdict.Confidence, ValidationThreshold)
	assert.NotEmpty(t, verdict.Reasons)
}

func TestValidateRejectsTooShort(t *testing.T) {
	verdict := Validate("short text", &types.ParsedResume{}, DefaultVocabulary())
	assert.False(t, verdict.IsResume)
	assert.Zero(t, verdict.Confidence)
	require.Len(t, verdict.Reasons, 1)
	assert.Contains(t, verdict.Reasons[0], "too short")
}

func TestValidateRejectsInvoice(t *testing.T) {
	text := `Invoice #2024-118
Statement of charges for services rendered in July.
Payment is due within 30 days of the invoice date.
Please retain this receipt for your records.
Bill to: Acme Corporation, 100 Main Street.`

	verdict := Validate(text, &types.ParsedResume{WordCount: len(strings.Fields(text))}, DefaultVocabulary())
	assert.False(t, verdict.IsResume)
	assert.Less(t, verdict.Confidence, ValidationThreshold)
}

func TestValidateConfidenceClamped(t *testing.T) {
	// A document with every marker of another class must not go negative.
	text := strings.Repeat("invoice receipt payment bill statement contract agreement ", 10)
	verdict := Validate(text, &types.ParsedResume{}, DefaultVocabulary())
	assert.GreaterOrEqual(t, verdict.Confidence, 0.0)
	assert.LessOrEqual(t, verdict.Confidence, 1.0)
}

func TestContactEvidence(t *testing.T) {
	full := contactEvidence(&types.ParsedResume{ContactInfo: types.ContactInfo{
		Email: "a@b.c", Phone: "555", Links: []string{"linkedin.com/in/x"},
	}})
	assert.InDelta(t, 1.0, full, 0.001)

	none := contactEvidence(&types.ParsedResume{})
	assert.Zero(t, none)
}

func TestSectionEvidenceCapped(t *testing.T) {
	parsed := &types.ParsedResume{SectionsPresent: []string{
		"summary", "experience", "education", "skills", "projects", "certifications", "achievements",
	}}
	assert.InDelta(t, 1.0, sectionEvidence(parsed), 0.001)
}

// sampleResumeLines is a realistic resume shared across pipeline tests.
func sampleResumeLines() []string {
	return []string{
		"Jane Smith",
		"jane.smith@example.com | (555) 123-4567 | linkedin.com/in/janesmith",
		"",
		"Professional Summary",
		"Software engineer with 6 years of experience building web services.",
		"",
		"Experience",
		"Senior Software Engineer, Acme Corp (2019 - 2024)",
		"- Led migration of legacy services to Go and Kubernetes",
		"- Reduced API latency by 40% through caching with Redis",
		"- Implemented CI/CD pipelines with Jenkins and Docker",
		"- Mentored 4 junior engineers",
		"",
		"Education",
		"Bachelor of Science in Computer Science, State University",
		"",
		"Skills",
		"Go, Python, JavaScript, SQL, Docker, Kubernetes, AWS, PostgreSQL, Redis, Git",
	}
}
