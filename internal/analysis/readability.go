package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"resumescan/internal/types"
)

// readingSpeedWPM is the assumed reading speed for the reading-time estimate.
const readingSpeedWPM = 225.0

var sentenceSplit = regexp.MustCompile(`[.!?]+[\s$]`)

// AnalyzeReadability computes the standard readability formulas over the
// whole document text. Degenerate input (no words or no sentences) yields a
// zero-valued result rather than NaN or Inf.
func AnalyzeReadability(text string) types.Readability {
	words := wordsOf(text)
	sentences := countSentences(text)
	if len(words) == 0 || sentences == 0 {
		return types.Readability{}
	}

	var syllables, difficult, polysyllables, letters int
	for _, w := range words {
		s := countSyllables(w)
		syllables += s
		if s >= 3 {
			difficult++
			polysyllables++
		}
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters++
			}
		}
	}

	wordCount := float64(len(words))
	sentenceCount := float64(sentences)
	wordsPerSentence := wordCount / sentenceCount
	syllablesPerWord := float64(syllables) / wordCount

	flesch := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	fkGrade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	fog := 0.4 * (wordsPerSentence + 100*float64(polysyllables)/wordCount)
	smog := 1.043*math.Sqrt(float64(polysyllables)*30/sentenceCount) + 3.1291
	ari := 4.71*float64(letters)/wordCount + 0.5*wordsPerSentence - 21.43
	colemanLiau := 0.0588*(float64(letters)/wordCount*100) - 0.296*(sentenceCount/wordCount*100) - 15.8

	return types.Readability{
		FleschReadingEase:    round2(flesch),
		FleschKincaidGrade:   round2(fkGrade),
		GunningFogIndex:      round2(fog),
		SMOGIndex:            round2(smog),
		AutomatedReadability: round2(ari),
		ColemanLiauIndex:     round2(colemanLiau),
		DifficultWords:       difficult,
		SyllableCount:        syllables,
		ReadingTimeMinutes:   round2(wordCount / readingSpeedWPM),
	}
}

func wordsOf(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

func countSentences(text string) int {
	n := len(sentenceSplit.FindAllStringIndex(text+" ", -1))
	if n == 0 && strings.TrimSpace(text) != "" {
		// Treat an unpunctuated blob as a single sentence.
		n = 1
	}
	return n
}

// countSyllables approximates English syllable count by counting vowel
// groups, discounting a trailing silent "e". Every word has at least one.
func countSyllables(word string) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
