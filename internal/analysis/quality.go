package analysis

import (
	"resumescan/internal/types"
)

// Quality-mode component weights: the four pillars count equally.
var qualityWeights = map[string]float64{
	"format_structure": 0.25,
	"content_quality":  0.25,
	"grammar_language": 0.25,
	"completeness":     0.25,
}

// AssessQuality scores the resume on its own merits when no job description
// is supplied. Component scores live in [0,1]; the aggregator scales the
// blended result into the 50-80 quality band.
func AssessQuality(doc *types.ExtractedDocument, parsed *types.ParsedResume) *ScoreCard {
	card := &ScoreCard{
		ScoringType: types.ScoringTypeQuality,
		Components:  make(map[string]float64, 4),
		Weights:     qualityWeights,
	}

	formatScore, _ := CheckFormat(doc, parsed)
	card.Components["format_structure"] = float64(formatScore) / 100

	card.Components["content_quality"] = contentQuality(parsed)
	card.Components["grammar_language"] = GrammarScore(len(parsed.GrammarFlaws), parsed.SentenceCount)
	card.Components["completeness"] = completeness(parsed)

	applyQualityRules(card, parsed, doc)
	return card
}

// contentQuality rewards breadth of skills, reachable contact details,
// verifiable experience and education, and overall keyword richness.
func contentQuality(parsed *types.ParsedResume) float64 {
	score := 0.0

	switch {
	case len(parsed.Skills) >= 10:
		score += 0.3
	case len(parsed.Skills) >= 5:
		score += 0.2
	case len(parsed.Skills) >= 1:
		score += 0.1
	}

	hasEmail := parsed.ContactInfo.Email != ""
	hasPhone := parsed.ContactInfo.Phone != ""
	switch {
	case hasEmail && hasPhone:
		score += 0.2
	case hasEmail || hasPhone:
		score += 0.1
	}

	if parsed.ExperienceYears > 0 {
		score += 0.2
	}
	if len(parsed.Education) > 0 {
		score += 0.2
	}

	switch {
	case parsed.Quantified >= 20:
		score += 0.1
	case parsed.Quantified >= 10:
		score += 0.05
	}

	return capAt1(score)
}

// completeness checks that the essential resume components exist at all.
func completeness(parsed *types.ParsedResume) float64 {
	score := 0.0
	if parsed.ContactInfo.Email != "" {
		score += 0.3
	}
	if len(parsed.Skills) > 0 {
		score += 0.3
	}
	if parsed.ExperienceYears > 0 {
		score += 0.2
	}
	if len(parsed.Education) > 0 {
		score += 0.2
	}
	return score
}
