package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeReadabilityEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		result := AnalyzeReadability(text)
		assert.Zero(t, result.SyllableCount)
		assert.Zero(t, result.DifficultWords)
		assert.Zero(t, result.FleschReadingEase)
		assert.Zero(t, result.ReadingTimeMinutes)
	}
}

func TestAnalyzeReadabilitySimpleText(t *testing.T) {
	text := "The cat sat on the mat. The dog ran to the park. We had a good day."
	result := AnalyzeReadability(text)

	// Short monosyllabic sentences read easily.
	assert.Greater(t, result.FleschReadingEase, 80.0)
	assert.Less(t, result.FleschKincaidGrade, 5.0)
	assert.Positive(t, result.SyllableCount)
	assert.Positive(t, result.ReadingTimeMinutes)
}

func TestAnalyzeReadabilityReadingTime(t *testing.T) {
	// 225 one-syllable words at 225 wpm is exactly one minute.
	text := strings.TrimSpace(strings.Repeat("cat ", 225)) + "."
	result := AnalyzeReadability(text)
	assert.InDelta(t, 1.0, result.ReadingTimeMinutes, 0.01)
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"code", 1},
		{"table", 2},
		{"engineering", 4},
		{"strength", 1},
		{"xyz", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countSyllables(tt.word), tt.word)
	}
}

func TestCountSentences(t *testing.T) {
	assert.Equal(t, 3, countSentences("One. Two! Three?"))
	assert.Equal(t, 1, countSentences("an unpunctuated blob of words"))
	assert.Equal(t, 0, countSentences(""))
	assert.Equal(t, 1, countSentences("Trailing period."))
}
