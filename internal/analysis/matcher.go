package analysis

import (
	"fmt"
	"math"
	"strings"

	"resumescan/internal/types"
)

// Job-match component weights.
var jobMatchWeights = map[string]float64{
	"skills_match":         0.40,
	"keyword_relevance":    0.30,
	"experience_relevance": 0.20,
	"education_match":      0.10,
}

// fuzzyMatchFloor is the minimum similarity for a fuzzy skill match to count.
const fuzzyMatchFloor = 0.8

// minMeaningfulJDWords is the floor below which a job description without
// recognizable skills is treated as meaningless.
const minMeaningfulJDWords = 15

// ScoreCard is the scorer output handed to the aggregator: per-component
// scores in [0,1] with their weights, plus the narrative both scorers emit.
type ScoreCard struct {
	ScoringType     string
	Components      map[string]float64
	Weights         map[string]float64
	Feedback        []string
	Recommendations []string
}

// jobRequirements is the parsed view of a job description.
type jobRequirements struct {
	skills          []string
	education       []string
	experienceYears int
	wordCount       int
}

// MatchJob scores the resume against a job description. Component scores
// follow the fixed weights; when the skills overlap is weak the dependent
// components are damped so a keyword-stuffed resume cannot compensate.
func MatchJob(parsed *types.ParsedResume, resumeText, jobDescription string, parser *Parser) *ScoreCard {
	req := parseJobRequirements(jobDescription, parser)

	if !meaningfulRequirements(req) {
		return &ScoreCard{
			ScoringType: types.ScoringTypeJobMatch,
			Components: map[string]float64{
				"skills_match": 0.6, "keyword_relevance": 0.6,
				"experience_relevance": 0.6, "education_match": 0.6,
			},
			Weights:         jobMatchWeights,
			Feedback:        []string{"Job description lacks specific requirements"},
			Recommendations: []string{"Provide detailed job description with specific skills and requirements for better matching"},
		}
	}

	card := &ScoreCard{
		ScoringType: types.ScoringTypeJobMatch,
		Components:  make(map[string]float64, 4),
		Weights:     jobMatchWeights,
	}

	skillsScore := skillsMatch(parsed.Skills, req.skills)
	card.Components["skills_match"] = skillsScore

	keywordScore := keywordRelevance(resumeText, jobDescription)
	experienceScore := experienceRelevance(parsed.ExperienceYears, req.experienceYears)
	educationScore := educationMatch(parsed.Education, req.education)

	// Weak skill overlap damps the remaining components.
	var damp float64
	switch {
	case skillsScore >= 0.7:
		damp = 1.0
		card.Feedback = append(card.Feedback,
			fmt.Sprintf("Excellent skills match (%.0f%%) - Resume contains required skills", skillsScore*100))
	case skillsScore >= 0.4:
		damp = 1.0
		card.Feedback = append(card.Feedback,
			fmt.Sprintf("Good skills match (%.0f%%) - Most required skills present", skillsScore*100))
		card.Recommendations = append(card.Recommendations,
			"Consider adding any missing technical skills mentioned in job description")
	case skillsScore >= 0.2:
		damp = 0.8
		card.Feedback = append(card.Feedback,
			fmt.Sprintf("Moderate skills match (%.0f%%) - Some required skills present", skillsScore*100))
		card.Recommendations = append(card.Recommendations,
			"Add more relevant technical skills mentioned in job description")
	default:
		damp = 0.5
		card.Feedback = append(card.Feedback,
			fmt.Sprintf("Poor skills match (%.0f%%) - Required skills not found in resume", skillsScore*100))
		card.Recommendations = append(card.Recommendations,
			"Add the specific technical skills mentioned in job description",
			"Highlight any transferable skills that might be relevant")
	}

	card.Components["keyword_relevance"] = keywordScore * damp
	card.Components["experience_relevance"] = experienceScore * damp
	card.Components["education_match"] = educationScore * damp

	return card
}

func parseJobRequirements(jobDescription string, parser *Parser) jobRequirements {
	skills, _ := parser.ExtractSkills(jobDescription)
	return jobRequirements{
		skills:          skills,
		education:       parser.ExtractEducation(jobDescription),
		experienceYears: parser.ExtractExperienceYears(jobDescription, jobDescription),
		wordCount:       len(strings.Fields(jobDescription)),
	}
}

func meaningfulRequirements(req jobRequirements) bool {
	if req.wordCount >= 1 && len(req.skills) > 0 {
		return true
	}
	return req.wordCount >= minMeaningfulJDWords &&
		(len(req.skills) > 0 || len(req.education) > 0 || req.experienceYears > 0)
}

// skillsMatch credits exact matches fully, substring containment at 0.9,
// and fuzzy matches by their Levenshtein ratio when it clears the floor.
func skillsMatch(resumeSkills, jobSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0.6
	}
	if len(resumeSkills) == 0 {
		return 0.0
	}

	resumeLower := lowerAll(resumeSkills)
	total := 0.0
	for _, jobSkill := range lowerAll(jobSkills) {
		if containsString(resumeLower, jobSkill) {
			total += 1.0
			continue
		}
		best := 0.0
		for _, rs := range resumeLower {
			var score float64
			if strings.Contains(rs, jobSkill) || strings.Contains(jobSkill, rs) {
				score = 0.9
			} else {
				score = levenshteinRatio(jobSkill, rs)
			}
			if score > best {
				best = score
			}
		}
		if best >= fuzzyMatchFloor {
			total += best
		}
	}

	match := total / float64(len(jobSkills))
	switch {
	case match >= 0.8:
		// keep as is
	case match >= 0.4:
		match *= 0.95
	case match > 0:
		match *= 0.8
	}
	if match > 1 {
		match = 1
	}
	return match
}

// keywordRelevance is the cosine similarity of term-frequency vectors over
// the stopword-filtered token streams of both texts.
func keywordRelevance(resumeText, jobDescription string) float64 {
	a := termFrequencies(Tokenize(resumeText))
	b := termFrequencies(Tokenize(jobDescription))
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for term, fa := range a {
		normA += fa * fa
		if fb, ok := b[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range b {
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termFrequencies(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}

func experienceRelevance(resumeYears, requiredYears int) float64 {
	if requiredYears == 0 {
		return 0.8
	}
	switch {
	case resumeYears >= requiredYears:
		return 1.0
	case resumeYears > 0:
		return math.Min(float64(resumeYears)/float64(requiredYears), 1.0)
	default:
		return 0.2
	}
}

func educationMatch(resumeEducation, jobEducation []string) float64 {
	if len(jobEducation) == 0 {
		return 0.8
	}
	if len(resumeEducation) == 0 {
		return 0.3
	}

	resumeSet := make(map[string]bool, len(resumeEducation))
	for _, e := range resumeEducation {
		resumeSet[strings.ToLower(e)] = true
	}
	matches := 0
	for _, e := range jobEducation {
		if resumeSet[strings.ToLower(e)] {
			matches++
		}
	}
	return math.Min(float64(matches)/float64(len(jobEducation)), 1.0)
}

// levenshteinRatio returns similarity in [0,1]: 1 minus the normalized edit
// distance between the two strings.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0.0
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = minInt(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	longest := la
	if lb > longest {
		longest = lb
	}
	return 1.0 - float64(prev[lb])/float64(longest)
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
