package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"resumescan/internal/types"
)

var (
	passivePattern = regexp.MustCompile(`(?i)\b(was|were|been|being|is|are)\s+\w+(ed|en)\b`)
	pronounPattern = regexp.MustCompile(`(?i)\b(i|me|my|mine|myself)\b`)
)

// longSentenceWords flags sentences hard to skim in a resume context.
const longSentenceWords = 40

// GrammarReport is the output of the style checker: located flaws plus the
// raw counts the scorers and recommendation rules consume.
type GrammarReport struct {
	Flaws     []types.GrammarFlaw
	Pronouns  int
	Buzzwords int
}

// CheckGrammar runs the heuristic style rules line by line. It never fails:
// unparseable input just produces no findings.
func CheckGrammar(lines []string, vocab *Vocabulary) GrammarReport {
	var report GrammarReport

	for i, line := range lines {
		lineNo := i + 1

		if m := passivePattern.FindString(line); m != "" {
			report.Flaws = append(report.Flaws, types.GrammarFlaw{
				Message: fmt.Sprintf("Passive construction %q weakens the statement", strings.TrimSpace(m)),
				Line:    lineNo,
			})
		}

		if w, ok := findDoubledWord(line); ok {
			report.Flaws = append(report.Flaws, types.GrammarFlaw{
				Message: fmt.Sprintf("Repeated word %q", w),
				Line:    lineNo,
			})
		}

		pronouns := pronounPattern.FindAllString(line, -1)
		report.Pronouns += len(pronouns)
		if len(pronouns) > 0 {
			report.Flaws = append(report.Flaws, types.GrammarFlaw{
				Message: "First-person pronoun; prefer action-led phrasing",
				Line:    lineNo,
			})
		}

		lower := strings.ToLower(line)
		for _, buzz := range vocab.Buzzwords {
			if strings.Contains(lower, buzz) {
				report.Buzzwords++
				report.Flaws = append(report.Flaws, types.GrammarFlaw{
					Message: fmt.Sprintf("Buzzword %q carries no information", buzz),
					Line:    lineNo,
				})
			}
		}

		if n := len(strings.Fields(line)); n > longSentenceWords {
			report.Flaws = append(report.Flaws, types.GrammarFlaw{
				Message: fmt.Sprintf("Line runs %d words; split it up", n),
				Line:    lineNo,
			})
		}
	}

	report.Flaws = dedupeFlaws(report.Flaws)
	return report
}

// GrammarScore converts the flaw density into a 0..1 quality signal using
// the error-rate bands of the scorer.
func GrammarScore(flawCount, sentenceCount int) float64 {
	if sentenceCount == 0 {
		return 0.0
	}
	rate := float64(flawCount) / float64(sentenceCount)
	switch {
	case rate == 0:
		return 1.0
	case rate <= 0.1:
		return 0.9
	case rate <= 0.2:
		return 0.7
	case rate <= 0.3:
		return 0.5
	default:
		return 0.3
	}
}

// findDoubledWord reports the first word immediately repeating itself
// ("the the"). RE2 has no backreferences, so this is a token scan.
func findDoubledWord(line string) (string, bool) {
	fields := strings.Fields(strings.ToLower(line))
	for i := 1; i < len(fields); i++ {
		prev := strings.Trim(fields[i-1], ".,;:!?")
		cur := strings.Trim(fields[i], ".,;:!?")
		if prev != "" && prev == cur && isWordToken(prev) {
			return cur, true
		}
	}
	return "", false
}

func isWordToken(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z') {
			return false
		}
	}
	return len(s) > 0
}

func dedupeFlaws(flaws []types.GrammarFlaw) []types.GrammarFlaw {
	seen := make(map[string]bool, len(flaws))
	out := flaws[:0]
	for _, f := range flaws {
		key := fmt.Sprintf("%d:%s", f.Line, f.Message)
		if !seen[key] {
			seen[key] = true
			out = append(out, f)
		}
	}
	return out
}
