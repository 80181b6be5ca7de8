package ai

// DefaultSystemPrompt frames the model as a reviewer that adds to, never
// replaces, the deterministic rule output.
const DefaultSystemPrompt = `You are an experienced resume reviewer. You are given a resume, an
optional job description, and a list of rule-generated findings. Suggest
additional concrete improvements that the rules did not already cover.
Each suggestion must be a single actionable sentence. Do not repeat or
rephrase the existing recommendations. Do not invent facts about the
candidate.`

// DefaultUserPromptTemplate is filled with the resume text, job description,
// and the rule-generated feedback and recommendations, in that order.
const DefaultUserPromptTemplate = `Resume:
%s

Job description (may be empty):
%s

Existing feedback:
%s

Existing recommendations:
%s

Suggest up to %d additional improvements as JSON.`

// resolvePrompt selects the correct prompt string: a prompt defined in the
// configuration wins over the hardcoded default.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
