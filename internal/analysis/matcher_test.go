package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescan/internal/types"
)

func TestLevenshteinRatio(t *testing.T) {
	assert.InDelta(t, 1.0, levenshteinRatio("kubernetes", "kubernetes"), 0.001)
	assert.Zero(t, levenshteinRatio("", "abc"))
	assert.Zero(t, levenshteinRatio("abc", ""))

	// One substitution over ten characters.
	assert.InDelta(t, 0.9, levenshteinRatio("javascript", "javascripd"), 0.001)

	// Unrelated strings score low.
	assert.Less(t, levenshteinRatio("python", "haskell"), 0.3)
}

func TestSkillsMatch(t *testing.T) {
	t.Run("no job skills defaults to neutral", func(t *testing.T) {
		assert.InDelta(t, 0.6, skillsMatch([]string{"Go"}, nil), 0.001)
	})

	t.Run("no resume skills scores zero", func(t *testing.T) {
		assert.Zero(t, skillsMatch(nil, []string{"Go"}))
	})

	t.Run("full exact overlap scores high", func(t *testing.T) {
		score := skillsMatch(
			[]string{"Go", "Docker", "Kubernetes"},
			[]string{"Go", "Docker", "Kubernetes"},
		)
		assert.InDelta(t, 1.0, score, 0.001)
	})

	t.Run("partial overlap is penalized", func(t *testing.T) {
		score := skillsMatch(
			[]string{"Go"},
			[]string{"Go", "Rust", "Haskell", "Erlang"},
		)
		// One of four matched, below the 0.4 band, so the 0.8 penalty applies.
		assert.InDelta(t, 0.25*0.8, score, 0.001)
	})

	t.Run("near miss counts via fuzzy match", func(t *testing.T) {
		score := skillsMatch([]string{"javascripd"}, []string{"javascript"})
		assert.Greater(t, score, 0.5)
	})
}

func TestExperienceRelevance(t *testing.T) {
	assert.InDelta(t, 0.8, experienceRelevance(0, 0), 0.001)
	assert.InDelta(t, 1.0, experienceRelevance(7, 5), 0.001)
	assert.InDelta(t, 0.5, experienceRelevance(2, 4), 0.001)
	assert.InDelta(t, 0.2, experienceRelevance(0, 5), 0.001)
}

func TestEducationMatch(t *testing.T) {
	assert.InDelta(t, 0.8, educationMatch([]string{"Bachelor"}, nil), 0.001)
	assert.InDelta(t, 0.3, educationMatch(nil, []string{"Bachelor"}), 0.001)
	assert.InDelta(t, 1.0, educationMatch([]string{"bachelor"}, []string{"Bachelor"}), 0.001)
	assert.InDelta(t, 0.5, educationMatch([]string{"Bachelor"}, []string{"Bachelor", "PhD"}), 0.001)
}

func TestKeywordRelevance(t *testing.T) {
	text := "built scalable microservices with go and kubernetes"
	assert.InDelta(t, 1.0, keywordRelevance(text, text), 0.001)
	assert.Zero(t, keywordRelevance("alpha beta gamma", "delta epsilon zeta"))
	assert.Zero(t, keywordRelevance("", "anything"))
}

func TestMatchJobDampsOnPoorSkillsOverlap(t *testing.T) {
	parser := NewParser(DefaultVocabulary())
	parsed := &types.ParsedResume{
		Skills:          []string{"Photoshop"},
		ExperienceYears: 10,
		Education:       []string{"Bachelor"},
	}
	resumeText := "Graphic designer with Photoshop expertise and a Bachelor degree"
	jobDescription := "Looking for a backend engineer with Go, Kubernetes, Docker, PostgreSQL and AWS. Bachelor degree required, 5 years of experience."

	card := MatchJob(parsed, resumeText, jobDescription, parser)
	require.Equal(t, types.ScoringTypeJobMatch, card.ScoringType)

	// Poor skills overlap halves the dependent components.
	assert.Less(t, card.Components["skills_match"], 0.2)
	assert.LessOrEqual(t, card.Components["experience_relevance"], 0.5)
	assert.NotEmpty(t, card.Feedback)
	assert.NotEmpty(t, card.Recommendations)
}

func TestMatchJobStrongOverlap(t *testing.T) {
	parser := NewParser(DefaultVocabulary())
	parsed := &types.ParsedResume{
		Skills:          []string{"Go", "Kubernetes", "Docker", "PostgreSQL", "AWS"},
		ExperienceYears: 6,
		Education:       []string{"Bachelor"},
	}
	resumeText := strings.Join(sampleResumeLines(), "\n")
	jobDescription := "Backend engineer role using Go, Kubernetes, Docker, PostgreSQL and AWS."

	card := MatchJob(parsed, resumeText, jobDescription, parser)
	assert.GreaterOrEqual(t, card.Components["skills_match"], 0.7)

	// Strong overlap leaves the other components undamped.
	assert.InDelta(t, experienceRelevance(6, 0), card.Components["experience_relevance"], 0.001)
}

func TestMatchJobMeaninglessDescription(t *testing.T) {
	parser := NewParser(DefaultVocabulary())
	card := MatchJob(&types.ParsedResume{}, "resume text", "great job", parser)

	for _, component := range []string{"skills_match", "keyword_relevance", "experience_relevance", "education_match"} {
		assert.InDelta(t, 0.6, card.Components[component], 0.001, component)
	}
	assert.Contains(t, card.Feedback[0], "lacks specific requirements")
}
