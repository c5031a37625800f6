// Package layout turns unstructured resume text into a sequence of lines
// tagged with structural roles, which the renderer maps to visual styles.
package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role is the structural role of a single line of resume text.
type Role int

const (
	Prose Role = iota
	SectionHeader
	SubHeader
	Bullet
	ContactLine
	SkillsList
)

func (r Role) String() string {
	switch r {
	case SectionHeader:
		return "section-header"
	case SubHeader:
		return "sub-header"
	case Bullet:
		return "bullet"
	case ContactLine:
		return "contact-line"
	case SkillsList:
		return "skills-list"
	default:
		return "prose"
	}
}

// Line is a classified line of text. Lines are produced in document order
// and consumed once by the renderer.
type Line struct {
	Text string
	Role Role
}

// Canonical section names. Matching is by case-insensitive containment, so
// "=== EDUCATION ===" still classifies as a header.
var sectionNames = []string{
	"CONTACT INFORMATION",
	"PROFESSIONAL SUMMARY",
	"PROFESSIONAL EXPERIENCE",
	"TECHNICAL SKILLS",
	"EDUCATION",
	"PROJECTS",
	"CERTIFICATIONS",
}

var titleIndicators = []string{
	"ENGINEER", "DEVELOPER", "MANAGER", "ANALYST", "SPECIALIST",
	"INTERN", "CONSULTANT", "COORDINATOR", "DIRECTOR", "ASSOCIATE",
}

var degreeIndicators = []string{
	"BACHELOR", "MASTER", "B.TECH", "M.TECH", "MBA", "PHD", "B.S.", "M.S.",
}

var recentYears = []string{"2020", "2021", "2022", "2023", "2024", "2025"}

var contactMarkers = []string{"@", "phone", "linkedin", "github"}

// proseSplitThreshold is the line length in characters above which prose is
// broken at sentence boundaries into separate blocks.
const proseSplitThreshold = 100

// Classify assigns a role to a single non-blank line. The checks form an
// ordered decision list; the first match wins.
func Classify(line string) Role {
	upper := strings.ToUpper(line)
	lower := strings.ToLower(line)

	for _, name := range sectionNames {
		if strings.Contains(upper, name) {
			return SectionHeader
		}
	}

	if isSubHeader(line, upper, lower) {
		return SubHeader
	}

	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return Bullet
	}

	if isContactLine(line, lower) {
		return ContactLine
	}

	if strings.Count(line, ",") >= 2 {
		return SkillsList
	}

	return Prose
}

// isSubHeader matches job-title lines ("Senior Engineer – Acme | 2021") and
// degree lines with a recent year. Title lines also accept a dash, pipe, or
// "at" as evidence of a title/company pairing.
func isSubHeader(line, upper, lower string) bool {
	hasYear := false
	for _, year := range recentYears {
		if strings.Contains(line, year) {
			hasYear = true
			break
		}
	}

	for _, indicator := range titleIndicators {
		if !strings.Contains(upper, indicator) {
			continue
		}
		if strings.Contains(line, "–") || strings.Contains(line, "|") ||
			strings.Contains(lower, "at") || hasYear {
			return true
		}
	}

	if hasYear {
		for _, degree := range degreeIndicators {
			if strings.Contains(upper, degree) {
				return true
			}
		}
	}

	return false
}

// isContactLine matches explicit contact markers, or short digit-free lines
// such as a bare name or city.
func isContactLine(line, lower string) bool {
	for _, marker := range contactMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	if len(strings.Fields(line)) <= 3 && utf8.RuneCountInString(line) > 5 {
		for _, r := range line {
			if unicode.IsDigit(r) {
				return false
			}
		}
		return true
	}

	return false
}

// ClassifyText splits text into lines, drops blanks, classifies each line,
// and breaks overlong prose at sentence boundaries.
func ClassifyText(text string) []Line {
	var out []Line

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		role := Classify(line)
		if role == Prose && utf8.RuneCountInString(line) > proseSplitThreshold {
			out = append(out, splitProse(line)...)
			continue
		}

		out = append(out, Line{Text: line, Role: role})
	}

	return out
}

// splitProse breaks a long line at ". " boundaries, re-terminating every
// sentence but the last with its period.
func splitProse(line string) []Line {
	sentences := strings.Split(line, ". ")

	var out []Line
	for i, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if i < len(sentences)-1 {
			sentence += "."
		}
		out = append(out, Line{Text: sentence, Role: Prose})
	}

	return out
}
