package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescan/internal/types"
)

func jobMatchCard(components map[string]float64) *ScoreCard {
	return &ScoreCard{
		ScoringType: types.ScoringTypeJobMatch,
		Components:  components,
		Weights: map[string]float64{
			"skills_match":         0.40,
			"keyword_relevance":    0.30,
			"experience_relevance": 0.20,
			"education_match":      0.10,
		},
		Feedback: []string{"feedback line"},
	}
}

func TestAggregateJobMatchBlend(t *testing.T) {
	card := jobMatchCard(map[string]float64{
		"skills_match":         1.0,
		"keyword_relevance":    0.5,
		"experience_relevance": 0.5,
		"education_match":      0.5,
	})

	result := Aggregate(card, nil)
	assert.Equal(t, 70, result.OverallScore)
	assert.Equal(t, types.ScoringTypeJobMatch, result.ScoringType)
	assert.False(t, result.Partial)
	assert.Empty(t, result.FailedExtractors)
	assert.Equal(t, 100, result.Breakdown["skills_match"])
	assert.Equal(t, 50, result.Breakdown["keyword_relevance"])
}

func TestAggregateRedistributesFailedComponents(t *testing.T) {
	card := jobMatchCard(map[string]float64{
		"skills_match":         1.0,
		"keyword_relevance":    0.5,
		"experience_relevance": 0.5,
		"education_match":      0.5,
	})

	// With the skills extractor down, skills_match drops out and its weight
	// spreads across the survivors, which all sit at 0.5.
	result := Aggregate(card, []string{"skills"})
	assert.Equal(t, 50, result.OverallScore)
	assert.True(t, result.Partial)
	assert.Equal(t, []string{"skills"}, result.FailedExtractors)
	assert.NotContains(t, result.Breakdown, "skills_match")
	assert.Contains(t, result.Breakdown, "keyword_relevance")
}

func TestAggregateFailedExtractorsSorted(t *testing.T) {
	card := jobMatchCard(map[string]float64{
		"keyword_relevance": 0.5,
	})

	result := Aggregate(card, []string{"skills", "education", "experience"})
	assert.Equal(t, []string{"education", "experience", "skills"}, result.FailedExtractors)
}

func TestAggregateQualityBand(t *testing.T) {
	perfect := &ScoreCard{
		ScoringType: types.ScoringTypeQuality,
		Components:  map[string]float64{"format_structure": 1.0, "grammar_language": 1.0},
		Weights:     map[string]float64{"format_structure": 0.5, "grammar_language": 0.5},
	}
	result := Aggregate(perfect, nil)
	assert.Equal(t, 80, result.OverallScore)

	worst := &ScoreCard{
		ScoringType: types.ScoringTypeQuality,
		Components:  map[string]float64{"format_structure": 0.0, "grammar_language": 0.0},
		Weights:     map[string]float64{"format_structure": 0.5, "grammar_language": 0.5},
	}
	result = Aggregate(worst, nil)
	assert.Equal(t, 50, result.OverallScore)
}

func TestAggregateMonotoneInComponents(t *testing.T) {
	base := jobMatchCard(map[string]float64{
		"skills_match":         0.3,
		"keyword_relevance":    0.5,
		"experience_relevance": 0.5,
		"education_match":      0.5,
	})
	raised := jobMatchCard(map[string]float64{
		"skills_match":         0.9,
		"keyword_relevance":    0.5,
		"experience_relevance": 0.5,
		"education_match":      0.5,
	})

	assert.GreaterOrEqual(t, Aggregate(raised, nil).OverallScore, Aggregate(base, nil).OverallScore)
}

func TestAggregateAllComponentsFailed(t *testing.T) {
	card := &ScoreCard{
		ScoringType: types.ScoringTypeJobMatch,
		Components:  map[string]float64{"skills_match": 1.0},
		Weights:     map[string]float64{"skills_match": 1.0},
	}

	result := Aggregate(card, []string{"skills"})
	require.NotNil(t, result)
	assert.Zero(t, result.OverallScore)
	assert.Empty(t, result.Breakdown)
	assert.True(t, result.Partial)
}
