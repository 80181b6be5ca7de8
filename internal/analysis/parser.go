package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkPattern  = regexp.MustCompile(`(?i)(https?://)?(www\.)?(linkedin\.com/in/|github\.com/)[A-Za-z0-9_.-]+`)

	experienceClaims = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(of\s*)?experience`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*yrs?\s*(of\s*)?experience`),
		regexp.MustCompile(`(?i)experience[:\s]*(\d+)\+?\s*years?`),
	}

	// yearRangePattern matches employment date spans like "2019 - 2023",
	// "2019–present" or "2019 to 2022".
	yearRangePattern = regexp.MustCompile(`(?i)\b(19\d{2}|20\d{2})\s*(?:-|–|—|to)\s*(19\d{2}|20\d{2}|present|current|now)\b`)

	bulletPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*[•·▪▫‣⁃]\s`),
		regexp.MustCompile(`^\s*[-*]\s`),
		regexp.MustCompile(`^\s*\d+\.\s`),
	}

	numberPattern = regexp.MustCompile(`\b\d+[%\w]*\b`)
)

// maxExperienceYears caps the estimate against runaway date-range sums.
const maxExperienceYears = 40

// Parser extracts structured signals from extracted resume text. A Parser is
// immutable after construction and safe for concurrent use.
type Parser struct {
	vocab         *Vocabulary
	skillPatterns map[string]*regexp.Regexp
}

// NewParser compiles word-boundary matchers for every vocabulary skill.
func NewParser(vocab *Vocabulary) *Parser {
	patterns := make(map[string]*regexp.Regexp)
	for _, skill := range vocab.AllSkills() {
		patterns[skill] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return &Parser{vocab: vocab, skillPatterns: patterns}
}

// ExtractContact finds the first email, first phone number and any
// profile links in the text.
func (p *Parser) ExtractContact(text string) (email, phone string, links []string) {
	if m := emailPattern.FindString(text); m != "" {
		email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		phone = strings.TrimSpace(m)
	}
	for _, l := range linkPattern.FindAllString(text, -1) {
		links = append(links, l)
	}
	return email, phone, dedupeStrings(links)
}

// ExtractSkills matches the vocabulary against the text and returns the
// skills found plus the industry category with the most hits.
func (p *Parser) ExtractSkills(text string) (skills []string, industry string) {
	hitsByCategory := make(map[string]int)
	for category, group := range p.vocab.SkillsByCategory {
		for _, skill := range group {
			if p.skillPatterns[skill].MatchString(text) {
				skills = append(skills, skill)
				hitsByCategory[category]++
			}
		}
	}
	sort.Strings(skills)

	best := 0
	for category, hits := range hitsByCategory {
		// Soft skills never decide the industry on their own.
		if category == "soft_skills" {
			continue
		}
		if hits > best || (hits == best && category < industry) {
			best = hits
			industry = category
		}
	}
	if best == 0 {
		industry = "general"
	}
	return skills, industry
}

// ExtractExperienceYears estimates total professional experience from
// explicit claims ("8+ years of experience") and from summed employment
// date ranges. The larger of the two wins, capped at maxExperienceYears.
func (p *Parser) ExtractExperienceYears(text, experienceBody string) int {
	claimed := 0
	for _, pattern := range experienceClaims {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > claimed {
				claimed = n
			}
		}
	}

	ranged := sumYearRanges(experienceBody)
	years := claimed
	if ranged > years {
		years = ranged
	}
	if years > maxExperienceYears {
		years = maxExperienceYears
	}
	return years
}

func sumYearRanges(body string) int {
	currentYear := time.Now().Year()
	total := 0
	for _, m := range yearRangePattern.FindAllStringSubmatch(body, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := currentYear
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if end >= start && end <= currentYear {
			total += end - start
		}
	}
	return total
}

// ExtractEducation returns the degree terms present in the text.
func (p *Parser) ExtractEducation(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range p.vocab.EducationTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// CountBullets counts list-item lines across the document.
func (p *Parser) CountBullets(lines []string) int {
	count := 0
	for _, line := range lines {
		for _, pattern := range bulletPatterns {
			if pattern.MatchString(line) {
				count++
				break
			}
		}
	}
	return count
}

// CountActionVerbs counts distinct strong verbs appearing in the text and,
// separately, weak-verb phrases that dilute bullet impact.
func (p *Parser) CountActionVerbs(text string) (strong, weak int) {
	lower := strings.ToLower(text)
	for _, verb := range p.vocab.ActionVerbs {
		if strings.Contains(lower, verb) {
			strong++
		}
	}
	for _, verb := range p.vocab.WeakVerbs {
		if strings.Contains(lower, verb) {
			weak++
		}
	}
	return strong, weak
}

// CountQuantified counts number-bearing tokens, a proxy for quantified
// achievements ("increased sales by 25%").
func (p *Parser) CountQuantified(text string) int {
	return len(numberPattern.FindAllString(text, -1))
}

// Tokenize lowercases the text and strips stopwords and punctuation,
// producing the token stream used for keyword-relevance comparison.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '+' && r != '#'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
