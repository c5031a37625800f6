package enhance

import (
	"strings"
	"unicode"
)

// Conservative phrase upgrades applied in order. Slices rather than a map
// so the replacement order is stable across runs.
var safeReplacements = []struct {
	old, new string
}{
	{"worked on", "developed"},
	{"helped with", "assisted in"},
	{"was responsible for", "managed"},
	{"took care of", "maintained"},
}

const summaryInsertLengthLimit = 1000

const genericSummary = "Experienced professional seeking to leverage skills and expertise in a challenging role."

// SmartFallback applies minimal safe transforms: label the contact block,
// upgrade weak phrases, and add a generic summary to short resumes that
// lack one. It is pure text manipulation; the caller decides whether the
// result actually scores better.
func SmartFallback(text string) string {
	enhanced := text

	if !strings.Contains(strings.ToUpper(enhanced), "CONTACT") {
		enhanced = insertContactHeader(enhanced)
	}

	for _, r := range safeReplacements {
		enhanced = strings.ReplaceAll(enhanced, r.old, r.new)
	}

	upper := strings.ToUpper(enhanced)
	if !strings.Contains(upper, "SUMMARY") && !strings.Contains(upper, "OBJECTIVE") &&
		len(enhanced) < summaryInsertLengthLimit {
		enhanced = insertGenericSummary(enhanced)
	}

	return enhanced
}

// insertContactHeader places a CONTACT INFORMATION header before the first
// line that looks like an email address or a bare name.
func insertContactHeader(text string) string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if strings.Contains(line, "@") || (len(strings.Fields(line)) <= 3 && !containsDigit(line)) {
			inserted := make([]string, 0, len(lines)+2)
			inserted = append(inserted, lines[:i]...)
			inserted = append(inserted, "CONTACT INFORMATION", "")
			inserted = append(inserted, lines[i:]...)
			return strings.Join(inserted, "\n")
		}
	}

	return text
}

// insertGenericSummary adds a summary block two lines after the first
// contact detail. No contact detail means no safe anchor, so the text is
// returned unchanged.
func insertGenericSummary(text string) string {
	lines := strings.Split(text, "\n")

	pos := 0
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "@") || strings.Contains(lower, "phone") || strings.Contains(lower, "linkedin") {
			pos = i + 2
			break
		}
	}
	if pos == 0 {
		return text
	}
	if pos > len(lines) {
		pos = len(lines)
	}

	inserted := make([]string, 0, len(lines)+3)
	inserted = append(inserted, lines[:pos]...)
	inserted = append(inserted, "PROFESSIONAL SUMMARY", genericSummary, "")
	inserted = append(inserted, lines[pos:]...)
	return strings.Join(inserted, "\n")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
