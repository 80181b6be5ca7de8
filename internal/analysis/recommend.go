package analysis

import (
	"fmt"
	"strings"

	"resumescan/internal/types"
)

// Rule thresholds for the recommendation table.
const (
	minWordCount      = 200
	maxWordCount      = 1000
	minBullets        = 3
	minSkills         = 5
	maxSkills         = 20
	minActionVerbs    = 5
	maxPronouns       = 3
	maxBuzzwords      = 2
	minQuantified     = 3
	lowFleschScore    = 30.0
	goodComponent     = 0.8
	decentComponent   = 0.6
	seniorityYears    = 10
	juniorProjectYears = 3
)

// applyQualityRules runs the deterministic feedback/recommendation table
// over the extracted signals. Output order follows the rule order here, so
// identical inputs always produce identical narratives. Components at or
// above goodComponent contribute praise only.
func applyQualityRules(card *ScoreCard, parsed *types.ParsedResume, doc *types.ExtractedDocument) {
	// Format and structure.
	switch format := card.Components["format_structure"]; {
	case format >= goodComponent:
		card.addFeedback("Excellent resume structure and formatting")
	case format >= decentComponent:
		card.addFeedback("Good resume structure with room for minor improvements")
		card.addRecommendation("Consider adding more bullet points to highlight key achievements")
	default:
		card.addFeedback("Resume structure needs significant improvement")
		card.addRecommendation("Reorganize resume with clear sections: Contact, Summary, Experience, Education, Skills")
		card.addRecommendation("Use consistent formatting and bullet points throughout")
	}

	// Length.
	if parsed.WordCount < minWordCount {
		card.addFeedback("Resume content is too brief")
		card.addRecommendation("Expand on work experience with specific achievements and responsibilities")
	} else if parsed.WordCount > maxWordCount {
		card.addFeedback("Resume content is too lengthy")
		card.addRecommendation("Condense information to essential details only")
	}

	// Bullets: too few reads as a wall of text, too many as fragments.
	if parsed.BulletPoints < minBullets {
		card.addFeedback("Insufficient use of bullet points")
		card.addRecommendation("Use bullet points to list achievements and responsibilities")
	} else if limit := BulletLimit(parsed.WordCount); parsed.BulletPoints > limit {
		card.addFeedback(fmt.Sprintf("Excessive bullet points (%d) for a resume of this length", parsed.BulletPoints))
		card.addRecommendation(fmt.Sprintf("Consolidate bullet points; aim for at most %d", limit))
	}

	// Content quality.
	switch content := card.Components["content_quality"]; {
	case content >= goodComponent:
		card.addFeedback("High-quality content with comprehensive information")
	case content >= decentComponent:
		card.addFeedback("Good content quality with some areas for enhancement")
	default:
		card.addFeedback("Content quality needs improvement")
		card.addRecommendation("Include quantifiable achievements with numbers and percentages")
	}

	// Skills breadth.
	if len(parsed.Skills) < minSkills {
		card.addFeedback("Limited skills listed")
		card.addRecommendation("Add both technical and soft skills relevant to your field")
	} else if len(parsed.Skills) > maxSkills {
		card.addFeedback("Consider focusing on most relevant skills")
		card.addRecommendation("Prioritize skills most relevant to your target positions")
	}

	// Contact details.
	if parsed.ContactInfo.Email == "" {
		card.addFeedback("Missing email contact information")
		card.addRecommendation("Add a professional email address")
	}
	if parsed.ContactInfo.Phone == "" {
		card.addFeedback("Missing phone contact information")
		card.addRecommendation("Include a professional phone number")
	}

	// Grammar and language.
	switch grammar := card.Components["grammar_language"]; {
	case grammar >= 0.9:
		card.addFeedback("Excellent grammar and language usage")
	case grammar >= 0.7:
		card.addFeedback("Good grammar with minor errors")
		card.addRecommendation("Proofread carefully for remaining grammar issues")
	default:
		card.addFeedback("Grammar and language need significant attention")
		card.addRecommendation("Thoroughly proofread for grammar, spelling, and punctuation errors")
		card.addRecommendation("Ensure consistent verb tenses throughout")
	}

	// Action verbs and style.
	if parsed.ActionVerbs < minActionVerbs {
		card.addFeedback("Use more strong action verbs")
		card.addRecommendation("Start bullet points with powerful action verbs such as Led, Achieved, Implemented")
	}
	if parsed.WeakVerbs > 0 {
		card.addRecommendation("Replace weak openings like \"was responsible for\" with direct action verbs")
	}
	if parsed.Pronouns > maxPronouns {
		card.addFeedback("Excessive use of personal pronouns")
		card.addRecommendation("Avoid using 'I', 'me', 'my' - use action-oriented statements instead")
	}
	if parsed.Buzzwords > maxBuzzwords {
		card.addFeedback("Consider reducing generic buzzwords")
		card.addRecommendation("Replace vague terms with specific skills and achievements")
	}
	if parsed.Quantified < minQuantified {
		card.addFeedback("Limited use of quantifiable achievements")
		card.addRecommendation("Include specific numbers, percentages, and metrics to demonstrate impact")
	}

	// Completeness.
	switch complete := card.Components["completeness"]; {
	case complete >= 0.9:
		card.addFeedback("Resume contains all essential information")
	case complete >= 0.7:
		card.addFeedback("Resume is mostly complete with minor gaps")
	default:
		card.addFeedback("Resume is missing critical information")
		card.addRecommendation("Include complete contact information, work experience, and education details")
	}

	// Experience-stage advice.
	if parsed.ExperienceYears == 0 {
		card.addRecommendation("Include internships, projects, or volunteer work if lacking professional experience")
	} else if parsed.ExperienceYears > seniorityYears {
		card.addRecommendation("Focus on most recent and relevant positions")
	}

	// Missing optional sections.
	var missing []string
	if !containsString(parsed.SectionsPresent, "summary") {
		missing = append(missing, "Professional Summary")
	}
	if !containsString(parsed.SectionsPresent, "projects") && parsed.ExperienceYears < juniorProjectYears {
		missing = append(missing, "Projects")
	}
	if !containsString(parsed.SectionsPresent, "certifications") {
		missing = append(missing, "Certifications (if applicable)")
	}
	if len(missing) > 0 {
		card.addRecommendation("Consider adding these sections: " + strings.Join(missing, ", "))
	}

	// Readability.
	if parsed.Readability.FleschReadingEase > 0 && parsed.Readability.FleschReadingEase < lowFleschScore {
		card.addFeedback("Text is hard to read")
		card.addRecommendation("Shorten sentences and prefer plain words over jargon")
	}

	// Formatting issues surfaced by the format checker.
	if inconsistent, _ := FontConsistency(doc.FontUsage); inconsistent {
		card.addFeedback("Font usage is inconsistent across the document")
		card.addRecommendation("Stick to one or two fonts throughout the resume")
	}
}

// addFeedback appends unless the exact message is already present.
func (c *ScoreCard) addFeedback(msg string) {
	if !containsString(c.Feedback, msg) {
		c.Feedback = append(c.Feedback, msg)
	}
}

func (c *ScoreCard) addRecommendation(msg string) {
	if !containsString(c.Recommendations, msg) {
		c.Recommendations = append(c.Recommendations, msg)
	}
}
