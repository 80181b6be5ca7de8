package analysis

import (
	"regexp"
	"strings"

	"resumescan/internal/types"
)

// canonicalSections in display order. The first five are the ones the
// validator and format checker treat as core.
var canonicalSections = []string{
	"summary", "experience", "education", "skills",
	"projects", "certifications", "achievements",
}

// sectionHeaderPatterns recognizes a line as the heading of a canonical
// section. Matching is case-insensitive and anchored so that prose lines
// mentioning a section name do not start a new region.
var sectionHeaderPatterns = map[string]*regexp.Regexp{
	"summary":        regexp.MustCompile(`(?i)^\s*(professional\s+)?(summary|profile|objective|career\s+objective)\b`),
	"experience":     regexp.MustCompile(`(?i)^\s*((work|professional)\s+)?(experience|employment(\s+history)?|work\s+history)\b`),
	"education":      regexp.MustCompile(`(?i)^\s*(education|academic(\s+background)?|qualifications)\b`),
	"skills":         regexp.MustCompile(`(?i)^\s*((technical|core)\s+)?(skills|competencies|technologies|expertise)\b`),
	"projects":       regexp.MustCompile(`(?i)^\s*((personal|selected)\s+)?(projects|portfolio)\b`),
	"certifications": regexp.MustCompile(`(?i)^\s*(certifications?|certificates?|licenses?)\b`),
	"achievements":   regexp.MustCompile(`(?i)^\s*(achievements?|accomplishments?|awards?|honors?)\b`),
}

// headerRegion is the implicit section holding everything before the first
// recognized heading (typically the name and contact block).
const headerRegion = "header"

// maxHeaderWords keeps long prose lines from being mistaken for headings.
const maxHeaderWords = 6

// SegmentSections splits the document lines into contiguous regions. Every
// line lands in exactly one region: from a recognized heading up to (not
// including) the next one. The return value preserves document order.
func SegmentSections(lines []string) []types.Section {
	if len(lines) == 0 {
		return nil
	}

	sections := []types.Section{{
		Name:      headerRegion,
		StartLine: 0,
	}}

	for i, line := range lines {
		name, ok := matchSectionHeader(line)
		if !ok {
			continue
		}
		// Close the open region and start a new one at this heading.
		sections[len(sections)-1].EndLine = i
		sections = append(sections, types.Section{
			Name:      name,
			Heading:   strings.TrimSpace(line),
			StartLine: i,
		})
	}
	sections[len(sections)-1].EndLine = len(lines)

	// Drop an empty implicit header region (document starts with a heading).
	if sections[0].Name == headerRegion && sections[0].EndLine == 0 {
		sections = sections[1:]
	}

	for i := range sections {
		body := lines[sections[i].StartLine:sections[i].EndLine]
		sections[i].Body = strings.Join(body, "\n")
	}

	return sections
}

func matchSectionHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(strings.Fields(trimmed)) > maxHeaderWords {
		return "", false
	}
	for _, name := range canonicalSections {
		if sectionHeaderPatterns[name].MatchString(trimmed) {
			return name, true
		}
	}
	return "", false
}

// SectionPresence reports which canonical sections were found and which are
// missing, each in canonical order.
func SectionPresence(sections []types.Section) (present, missing []string) {
	found := make(map[string]bool, len(sections))
	for _, s := range sections {
		if s.Name != headerRegion {
			found[s.Name] = true
		}
	}
	for _, name := range canonicalSections {
		if found[name] {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	return present, missing
}

// FindSection returns the first region with the given canonical name.
func FindSection(sections []types.Section, name string) (types.Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return types.Section{}, false
}
