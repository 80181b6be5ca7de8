package analysis

import (
	"fmt"
	"strings"

	"resumescan/internal/types"
)

// Confidence component weights. The non-resume marker weight is a penalty.
const (
	weightSections  = 0.40
	weightKeywords  = 0.25
	weightContact   = 0.20
	weightStructure = 0.15
	weightNonResume = 0.30

	// ValidationThreshold is the pass mark for the resume-or-not gate.
	ValidationThreshold = 0.40

	// minValidatableChars rejects documents too short to judge at all.
	minValidatableChars = 50
)

// Validate decides whether the parsed document is a resume. The confidence
// is a weighted blend of section, keyword, contact and structure evidence
// minus a penalty for markers of other document classes, clamped to [0,1].
func Validate(text string, parsed *types.ParsedResume, vocab *Vocabulary) types.Validation {
	if len(strings.TrimSpace(text)) < minValidatableChars {
		return types.Validation{
			IsResume:   false,
			Confidence: 0,
			Reasons:    []string{"Document too short to be a resume"},
		}
	}

	lower := strings.ToLower(text)
	var reasons []string

	sectionScore := sectionEvidence(parsed)
	if sectionScore > 0.3 {
		reasons = append(reasons, fmt.Sprintf("Contains resume sections (score: %.2f)", sectionScore))
	}

	keywordScore := keywordEvidence(lower, vocab)
	if keywordScore > 0.2 {
		reasons = append(reasons, fmt.Sprintf("Contains resume keywords (score: %.2f)", keywordScore))
	}

	contactScore := contactEvidence(parsed)
	if contactScore > 0.5 {
		reasons = append(reasons, fmt.Sprintf("Contains contact information (score: %.2f)", contactScore))
	}

	structureScore := structureEvidence(parsed)
	if structureScore > 0.3 {
		reasons = append(reasons, fmt.Sprintf("Has resume-like structure (score: %.2f)", structureScore))
	}

	penalty := nonResumeEvidence(lower, vocab)
	if penalty > 0.3 {
		reasons = append(reasons, fmt.Sprintf("Contains non-resume indicators (penalty: %.2f)", penalty))
	}

	confidence := sectionScore*weightSections +
		keywordScore*weightKeywords +
		contactScore*weightContact +
		structureScore*weightStructure -
		penalty*weightNonResume
	confidence = clamp01(confidence)

	if len(reasons) == 0 {
		reasons = []string{"Insufficient resume indicators found"}
	}

	return types.Validation{
		IsResume:   confidence >= ValidationThreshold,
		Confidence: confidence,
		Reasons:    reasons,
	}
}

// sectionEvidence normalizes the recognized canonical sections against the
// five a complete resume is expected to carry.
func sectionEvidence(parsed *types.ParsedResume) float64 {
	return capAt1(float64(len(parsed.SectionsPresent)) / 5)
}

// keywordEvidence counts resume-typical phrases, expecting at least eight
// in a real resume.
func keywordEvidence(lower string, vocab *Vocabulary) float64 {
	found := 0
	for _, kw := range vocab.ResumeKeywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}
	return capAt1(float64(found) / 8)
}

func contactEvidence(parsed *types.ParsedResume) float64 {
	score := 0.0
	if parsed.ContactInfo.Email != "" {
		score += 0.4
	}
	if parsed.ContactInfo.Phone != "" {
		score += 0.4
	}
	if len(parsed.ContactInfo.Links) > 0 {
		score += 0.2
	}
	return score
}

func structureEvidence(parsed *types.ParsedResume) float64 {
	score := 0.0
	switch {
	case parsed.WordCount >= 200 && parsed.WordCount <= 2000:
		score += 0.3
	case parsed.WordCount >= 100 && parsed.WordCount <= 3000:
		score += 0.1
	}
	switch {
	case parsed.BulletPoints > 5:
		score += 0.3
	case parsed.BulletPoints > 0:
		score += 0.1
	}
	switch {
	case len(parsed.Skills) > 3:
		score += 0.4
	case len(parsed.Skills) > 0:
		score += 0.2
	}
	return score
}

// nonResumeEvidence normalizes other-document markers, three being enough
// to fully weigh against the verdict.
func nonResumeEvidence(lower string, vocab *Vocabulary) float64 {
	found := 0
	for _, marker := range vocab.NonResumeMarkers {
		if strings.Contains(lower, marker) {
			found++
		}
	}
	return capAt1(float64(found) / 3)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
