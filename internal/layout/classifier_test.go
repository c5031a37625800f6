package layout

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Role
	}{
		{
			name: "canonical header",
			line: "PROFESSIONAL EXPERIENCE",
			want: SectionHeader,
		},
		{
			name: "header lowercase with decoration",
			line: "=== technical skills ===",
			want: SectionHeader,
		},
		{
			name: "header embedded in longer line",
			line: "My Education and Training",
			want: SectionHeader,
		},
		{
			name: "job title with en dash",
			line: "Senior Software Engineer – Acme Corp",
			want: SubHeader,
		},
		{
			name: "job title with pipe",
			line: "Backend Developer | Initech",
			want: SubHeader,
		},
		{
			name: "job title with recent year",
			line: "Data Analyst, Hooli, 2023",
			want: SubHeader,
		},
		{
			name: "degree with recent year",
			line: "Bachelor of Science, State University, 2022",
			want: SubHeader,
		},
		{
			name: "degree without recent year is not a sub-header",
			line: "Bachelor of Science, State University, 2012",
			want: SkillsList,
		},
		{
			name: "glyph bullet",
			line: "• Built the ingestion service",
			want: Bullet,
		},
		{
			name: "dash bullet",
			line: "- Built the ingestion service",
			want: Bullet,
		},
		{
			name: "asterisk bullet",
			line: "* Built the ingestion service",
			want: Bullet,
		},
		{
			name: "email marker",
			line: "Reach me: jane@example.com",
			want: ContactLine,
		},
		{
			name: "linkedin marker",
			line: "linkedin.com/in/janedoe",
			want: ContactLine,
		},
		{
			name: "short name line",
			line: "Jane Q. Doe",
			want: ContactLine,
		},
		{
			name: "short line with digits is not a contact",
			line: "Since 1999",
			want: Prose,
		},
		{
			name: "comma separated skills",
			line: "Python, SQL, AWS, Docker",
			want: SkillsList,
		},
		{
			name: "single comma is prose",
			line: "First clause here, and then the second clause follows it naturally",
			want: Prose,
		},
		{
			name: "plain prose",
			line: "Delivered the quarterly report ahead of schedule for the third time",
			want: Prose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

// Header detection must win over every later rule, and bullets must win
// over contact/skills matches.
func TestClassifyOrder(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Role
	}{
		{
			name: "header beats skills list",
			line: "TECHNICAL SKILLS, TOOLS, PLATFORMS",
			want: SectionHeader,
		},
		{
			name: "header beats sub-header",
			line: "PROFESSIONAL EXPERIENCE – ENGINEER",
			want: SectionHeader,
		},
		{
			name: "bullet beats contact marker",
			line: "- email jane@example.com for details",
			want: Bullet,
		},
		{
			name: "contact marker beats skills list",
			line: "jane@example.com, springfield, illinois",
			want: ContactLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyTextDropsBlankLines(t *testing.T) {
	text := "TECHNICAL SKILLS\n\n   \nPython, SQL, AWS, Docker\n"

	lines := ClassifyText(text)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(lines), lines)
	}
	if lines[0].Role != SectionHeader {
		t.Errorf("lines[0].Role = %v, want SectionHeader", lines[0].Role)
	}
	if lines[1].Role != SkillsList || lines[1].Text != "Python, SQL, AWS, Docker" {
		t.Errorf("lines[1] = %+v, want skills list", lines[1])
	}
}

func TestClassifyTextSplitsLongProse(t *testing.T) {
	first := "The first sentence describes the responsibilities held during the engagement in full detail"
	second := "The second sentence explains the measurable outcome that the work produced"
	text := first + ". " + second + "."

	if len(text) <= proseSplitThreshold {
		t.Fatalf("fixture is %d chars, need > %d", len(text), proseSplitThreshold)
	}

	lines := ClassifyText(text)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(lines), lines)
	}
	if lines[0].Text != first+"." {
		t.Errorf("lines[0].Text = %q, want re-terminated first sentence", lines[0].Text)
	}
	if lines[1].Text != second+"." {
		t.Errorf("lines[1].Text = %q, want %q", lines[1].Text, second+".")
	}
	for i, line := range lines {
		if line.Role != Prose {
			t.Errorf("lines[%d].Role = %v, want Prose", i, line.Role)
		}
	}
}

func TestClassifyTextShortProseKeptWhole(t *testing.T) {
	text := "Wrote the deployment runbook. Trained the on-call rotation."

	lines := ClassifyText(text)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %+v", len(lines), lines)
	}
	if lines[0].Text != text {
		t.Errorf("short prose was split: %q", lines[0].Text)
	}
}

func TestClassifyTextProseSplitCountsCharacters(t *testing.T) {
	// 96 characters in total but 168 bytes; below the split threshold either
	// way only when characters are counted.
	part := strings.TrimSpace(strings.Repeat("ééé ", 12))
	text := part + ". " + part

	lines := ClassifyText(text)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %+v", len(lines), lines)
	}
	if lines[0].Text != text {
		t.Errorf("accented short prose was split: %q", lines[0].Text)
	}
}

func TestClassifyContactLengthCountsCharacters(t *testing.T) {
	// Four characters, six bytes. Too short to be a bare name or city.
	if got := Classify("Réné"); got != Prose {
		t.Errorf("Classify(Réné) = %v, want Prose", got)
	}
	// Six characters qualifies.
	if got := Classify("Renata"); got != ContactLine {
		t.Errorf("Classify(Renata) = %v, want ContactLine", got)
	}
}

func TestClassifyTextStableUnderDuplication(t *testing.T) {
	source := []string{
		"PROFESSIONAL EXPERIENCE",
		"Senior Engineer – Acme | 2023",
		"• Shipped the importer",
		"jane@example.com",
		"Go, SQL, AWS",
		"Wrote the deployment runbook.",
	}

	single := ClassifyText(strings.Join(source, "\n"))
	if len(single) != len(source) {
		t.Fatalf("got %d lines, want %d: %+v", len(single), len(source), single)
	}

	var doubled []string
	for _, line := range source {
		doubled = append(doubled, line, line)
	}
	twice := ClassifyText(strings.Join(doubled, "\n"))
	if len(twice) != 2*len(single) {
		t.Fatalf("got %d lines, want %d: %+v", len(twice), 2*len(single), twice)
	}

	// Each copy classifies exactly like the original occurrence, in order.
	for i, want := range single {
		for _, got := range []Line{twice[2*i], twice[2*i+1]} {
			if got != want {
				t.Errorf("duplicated line %d = %+v, want %+v", i, got, want)
			}
		}
	}
}

func TestRoleString(t *testing.T) {
	roles := map[Role]string{
		Prose:         "prose",
		SectionHeader: "section-header",
		SubHeader:     "sub-header",
		Bullet:        "bullet",
		ContactLine:   "contact-line",
		SkillsList:    "skills-list",
	}
	for role, want := range roles {
		if got := role.String(); got != want {
			t.Errorf("Role(%d).String() = %q, want %q", role, got, want)
		}
	}
}

func BenchmarkClassifyText(b *testing.B) {
	text := strings.Repeat("PROFESSIONAL EXPERIENCE\nSenior Engineer – Acme | 2023\n- Shipped the thing\nPython, SQL, AWS\n\n", 20)

	for b.Loop() {
		ClassifyText(text)
	}
}
