package enhance

import (
	"strings"
)

// Phrase upgrades for the structural rebuild, a superset of the safe set.
// Applied in order; substring replacement matches the rubric's own loose
// keyword matching.
var structuralReplacements = []struct {
	old, new string
}{
	{"worked on", "developed"},
	{"helped with", "assisted in"},
	{"did", "executed"},
	{"made", "created"},
	{"was responsible for", "managed"},
	{"was in charge of", "led"},
	{"took care of", "maintained"},
	{"dealt with", "handled"},
}

// sectionRules map loose keywords found in a line to the canonical header
// emitted in its place. First match wins.
var sectionRules = []struct {
	keywords []string
	header   string
}{
	{[]string{"SUMMARY", "OBJECTIVE", "PROFILE"}, "PROFESSIONAL SUMMARY"},
	{[]string{"EXPERIENCE", "WORK", "EMPLOYMENT"}, "PROFESSIONAL EXPERIENCE"},
	{[]string{"SKILLS", "TECHNICAL", "COMPETENCIES"}, "TECHNICAL SKILLS"},
	{[]string{"EDUCATION", "DEGREE", "UNIVERSITY", "COLLEGE"}, "EDUCATION"},
	{[]string{"PROJECTS", "PROJECT"}, "PROJECTS"},
}

// Lines under these sections get a bullet prefix when they start with a
// recognizable achievement verb.
var bulletVerbs = []string{"developed", "created", "managed", "led", "implemented"}

const structuralSummary = "Experienced professional with a strong background in technology and problem-solving. Seeking opportunities to contribute technical expertise and drive impactful results."

// StructuralFallback rebuilds the resume around canonical section headers:
// it pulls out name/email/phone into a labeled contact block, normalizes
// section headers, upgrades weak phrases, bullets achievement lines, and
// appends a generic summary if none survived. Like SmartFallback it is
// pure; scoring is the caller's job.
func StructuralFallback(text string) string {
	lines := strings.Split(text, "\n")

	name, email, phone := extractContact(lines)

	var out []string
	if name != "" {
		out = append(out, "CONTACT INFORMATION", "", name)
		if email != "" {
			out = append(out, email)
		}
		if phone != "" {
			out = append(out, phone)
		}
		out = append(out, "")
	}

	section := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || line == name || line == email || line == phone {
			continue
		}

		if header, ok := matchSection(strings.ToUpper(line)); ok {
			section = header
			out = append(out, section, "")
			continue
		}

		for _, r := range structuralReplacements {
			line = strings.ReplaceAll(line, r.old, r.new)
		}

		if (section == "PROFESSIONAL EXPERIENCE" || section == "PROJECTS") &&
			!strings.HasPrefix(line, "•") && hasBulletVerb(line) {
			line = "• " + line
		}

		out = append(out, line)
	}

	if !strings.Contains(strings.Join(out, "\n"), "PROFESSIONAL SUMMARY") {
		out = appendGenericSummary(out)
	}

	return strings.Join(out, "\n")
}

// extractContact scans for the first email line, the first phone-looking
// line, and the first short digit-free line as the name. Each line feeds at
// most one slot.
func extractContact(lines []string) (name, email, phone string) {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(line, "@") && email == "":
			email = line
		case phone == "" && (strings.Contains(lower, "phone") || strings.Contains(line, "+") ||
			strings.Contains(line, "(") || strings.Contains(line, ")")):
			phone = line
		case name == "" && len(strings.Fields(line)) <= 3 && !containsDigit(line):
			name = line
		}
	}
	return name, email, phone
}

func matchSection(upper string) (string, bool) {
	for _, rule := range sectionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.header, true
			}
		}
	}
	return "", false
}

func hasBulletVerb(line string) bool {
	lower := strings.ToLower(line)
	for _, verb := range bulletVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// appendGenericSummary inserts a summary block right after the contact
// block, or at the top when there is none.
func appendGenericSummary(lines []string) []string {
	idx := 0
	if len(lines) > 0 && lines[0] == "CONTACT INFORMATION" {
		idx = 1
	}
	for idx < len(lines) && strings.TrimSpace(lines[idx]) != "" {
		idx++
	}

	block := []string{"PROFESSIONAL SUMMARY", "", structuralSummary, ""}
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:min(idx+1, len(lines))]...)
	out = append(out, block...)
	if idx+1 < len(lines) {
		out = append(out, lines[idx+1:]...)
	}
	return out
}
