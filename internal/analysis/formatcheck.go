package analysis

import (
	"fmt"
	"strings"

	"resumescan/internal/types"
)

// Base format scores by document format. Native digital formats extract
// cleanly; legacy and plain formats lose structure.
var formatBaseScore = map[types.DocumentFormat]int{
	types.FormatPDF:  100,
	types.FormatDOCX: 100,
	types.FormatDOC:  80,
	types.FormatTXT:  70,
}

// coreSections must be present for a resume to pass format checks cleanly.
var coreSections = []string{"experience", "education", "skills"}

// dominantFontShare is the minimum fraction of spans the most-used font
// must cover before the layout counts as consistent.
const dominantFontShare = 0.6

// BulletLimit returns the bullet budget for a document of the given length.
// Short resumes tolerate fewer bullets before reading as fragmented.
func BulletLimit(wordCount int) int {
	switch {
	case wordCount < 500:
		return 15
	case wordCount < 1000:
		return 25
	default:
		return 35
	}
}

// CheckFormat applies the deterministic formatting deductions and returns
// the format score (0-100) plus human-readable issues, one per deduction.
func CheckFormat(doc *types.ExtractedDocument, parsed *types.ParsedResume) (int, []string) {
	score := formatBaseScore[doc.Format]
	if score == 0 {
		score = 70
	}
	var issues []string

	if parsed.WordCount < 200 || parsed.WordCount > 1000 {
		score -= 30
		issues = append(issues, fmt.Sprintf("Word count %d outside the 200-1000 range", parsed.WordCount))
	}

	for _, name := range coreSections {
		if !containsString(parsed.SectionsPresent, name) {
			score -= 20
			issues = append(issues, fmt.Sprintf("Missing %s section", name))
		}
	}

	if limit := BulletLimit(parsed.WordCount); parsed.BulletPoints > limit {
		score -= 10
		issues = append(issues, fmt.Sprintf("Too many bullet points (%d, limit %d for this length)", parsed.BulletPoints, limit))
	}

	if inconsistent, dominant := FontConsistency(doc.FontUsage); inconsistent {
		score -= 10
		issues = append(issues, fmt.Sprintf("Inconsistent fonts; dominant font %q covers under %d%% of text", dominant, int(dominantFontShare*100)))
	}

	if len(parsed.SectionsPresent) < 3 {
		score -= 15
		issues = append(issues, "Fewer than 3 recognizable section headers")
	}

	if hasForbiddenChars(doc.Text) {
		score -= 5
		issues = append(issues, "Contains control characters that confuse ATS parsers")
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}

// FontConsistency inspects the span-level font usage collected during
// extraction. It reports inconsistency when more than two body fonts are in
// play or the dominant font covers less than dominantFontShare of spans.
// Plain-text formats carry no font data and always pass.
func FontConsistency(usage map[string]int) (inconsistent bool, dominant string) {
	if len(usage) == 0 {
		return false, ""
	}

	total, best := 0, 0
	for font, spans := range usage {
		total += spans
		if spans > best || (spans == best && font < dominant) {
			best = spans
			dominant = font
		}
	}
	if total == 0 {
		return false, dominant
	}
	if len(usage) > 2 {
		return true, dominant
	}
	return float64(best)/float64(total) < dominantFontShare, dominant
}

func hasForbiddenChars(text string) bool {
	for _, r := range text {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
		if r == 0xFFFD {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
