package analysis

import (
	"math"
	"sort"

	"resumescan/internal/types"
)

// componentDeps names the signal extractors each breakdown component relies
// on. A component whose extractor failed is dropped from the blend and its
// weight is redistributed proportionally across the survivors.
var componentDeps = map[string][]string{
	"skills_match":         {"skills"},
	"keyword_relevance":    {},
	"experience_relevance": {"experience"},
	"education_match":      {"education"},
	"format_structure":     {"sections", "bullets"},
	"content_quality":      {"skills", "contact", "experience", "education"},
	"grammar_language":     {"grammar"},
	"completeness":         {"contact", "skills", "experience", "education"},
}

// Aggregate blends a score card into the final result. Scores are integers
// 0-100. Raising any single component while the rest stay fixed can never
// lower the overall: the blend is a non-negative weighted mean.
func Aggregate(card *ScoreCard, failedExtractors []string) *types.AnalysisResult {
	failed := make(map[string]bool, len(failedExtractors))
	for _, name := range failedExtractors {
		failed[name] = true
	}

	available := make(map[string]float64, len(card.Components))
	totalWeight := 0.0
	for component, score := range card.Components {
		if componentFailed(component, failed) {
			continue
		}
		available[component] = score
		totalWeight += card.Weights[component]
	}

	result := &types.AnalysisResult{
		ScoringType:     card.ScoringType,
		Breakdown:       make(map[string]int, len(card.Components)),
		Feedback:        card.Feedback,
		Recommendations: card.Recommendations,
	}
	if len(failedExtractors) > 0 {
		result.Partial = true
		result.FailedExtractors = append([]string(nil), failedExtractors...)
		sort.Strings(result.FailedExtractors)
	}

	if len(available) == 0 || totalWeight == 0 {
		return result
	}

	// Redistribution: dividing by the surviving weight mass scales every
	// remaining weight by the same factor, so relative proportions hold.
	blended := 0.0
	for component, score := range available {
		blended += score * (card.Weights[component] / totalWeight)
		result.Breakdown[component] = toScore(score)
	}

	switch card.ScoringType {
	case types.ScoringTypeQuality:
		// Quality mode lands in the 50-80 band.
		result.OverallScore = clampScore(int(math.Round(50 + blended*30)))
	default:
		result.OverallScore = toScore(blended)
	}
	return result
}

func componentFailed(component string, failed map[string]bool) bool {
	for _, dep := range componentDeps[component] {
		if failed[dep] {
			return true
		}
	}
	return false
}

// toScore maps a [0,1] value to an integer score, clamped to 0-100.
func toScore(v float64) int {
	return clampScore(int(math.Round(v * 100)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
