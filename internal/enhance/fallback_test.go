package enhance

import (
	"strings"
	"testing"
)

func TestSmartFallbackInsertsContactHeader(t *testing.T) {
	text := "Jane Doe\njane@example.com\nexperience"

	got := SmartFallback(text)

	if !strings.HasPrefix(got, "CONTACT INFORMATION\n") {
		t.Errorf("contact header not inserted at top:\n%s", got)
	}
}

func TestSmartFallbackKeepsExistingContactHeader(t *testing.T) {
	text := "Contact Info\nJane Doe\njane@example.com"

	got := SmartFallback(text)

	if strings.Count(strings.ToUpper(got), "CONTACT") != 1 {
		t.Errorf("contact header duplicated:\n%s", got)
	}
}

func TestSmartFallbackPhraseUpgrades(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "worked on",
			in:   "CONTACT\nsummary\nworked on the data pipeline",
			want: "developed the data pipeline",
		},
		{
			name: "was responsible for",
			in:   "CONTACT\nsummary\nwas responsible for deployments",
			want: "managed deployments",
		},
		{
			name: "took care of",
			in:   "CONTACT\nsummary\ntook care of the test suite",
			want: "maintained the test suite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SmartFallback(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("SmartFallback(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSmartFallbackSummaryInsertion(t *testing.T) {
	t.Run("added to short resume after contact details", func(t *testing.T) {
		text := "CONTACT\nJane Doe\njane@example.com\nexperience"
		got := SmartFallback(text)
		if !strings.Contains(got, "PROFESSIONAL SUMMARY") {
			t.Errorf("summary not inserted:\n%s", got)
		}
		if strings.Index(got, "jane@example.com") > strings.Index(got, "PROFESSIONAL SUMMARY") {
			t.Errorf("summary inserted before contact details:\n%s", got)
		}
	})

	t.Run("skipped when objective present", func(t *testing.T) {
		text := "CONTACT\njane@example.com\nOBJECTIVE\nFind a role"
		got := SmartFallback(text)
		if strings.Contains(got, "PROFESSIONAL SUMMARY") {
			t.Errorf("summary inserted despite existing objective:\n%s", got)
		}
	})

	t.Run("skipped for long resumes", func(t *testing.T) {
		text := "CONTACT\njane@example.com\n" + strings.Repeat("long body line of content here. ", 40)
		got := SmartFallback(text)
		if strings.Contains(got, "PROFESSIONAL SUMMARY") {
			t.Errorf("summary inserted into long resume:\n%s", got)
		}
	})
}

func TestStructuralFallbackRebuild(t *testing.T) {
	text := `Jane Doe
jane@example.com
(555) 111-2222
work history and employment
worked on the payments platform
skills
Python, SQL`

	got := StructuralFallback(text)

	wantInOrder := []string{
		"CONTACT INFORMATION",
		"Jane Doe",
		"jane@example.com",
		"(555) 111-2222",
		"PROFESSIONAL EXPERIENCE",
		"\u2022 developed the payments platform",
		"TECHNICAL SKILLS",
		"Python, SQL",
	}

	last := -1
	for _, want := range wantInOrder {
		idx := strings.Index(got, want)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
		if idx < last {
			t.Errorf("%q appears out of order:\n%s", want, got)
		}
		last = idx
	}

	if !strings.Contains(got, "PROFESSIONAL SUMMARY") {
		t.Errorf("generic summary not appended:\n%s", got)
	}
}

func TestStructuralFallbackCanonicalHeaders(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "objective", line: "career objective", want: "PROFESSIONAL SUMMARY"},
		{name: "employment", line: "employment record", want: "PROFESSIONAL EXPERIENCE"},
		{name: "competencies", line: "core competencies", want: "TECHNICAL SKILLS"},
		{name: "university", line: "university studies", want: "EDUCATION"},
		{name: "projects", line: "side projects", want: "PROJECTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StructuralFallback("Jane Doe\n" + tt.line)
			if !strings.Contains(got, tt.want) {
				t.Errorf("StructuralFallback with %q did not emit %q:\n%s", tt.line, tt.want, got)
			}
			if strings.Contains(got, tt.line) {
				t.Errorf("raw header line %q survived normalization:\n%s", tt.line, got)
			}
		})
	}
}

func TestStructuralFallbackBulletsOnlyExperienceAndProjects(t *testing.T) {
	text := "Jane Doe\nwork experience\ndeveloped the importer\nskills\ncreated internal tooling"

	got := StructuralFallback(text)

	if !strings.Contains(got, "\u2022 developed the importer") {
		t.Errorf("experience line not bulleted:\n%s", got)
	}
	if strings.Contains(got, "\u2022 created internal tooling") {
		t.Errorf("skills line was bulleted:\n%s", got)
	}
}

func TestStructuralFallbackNoContactBlockWithoutName(t *testing.T) {
	// Every line has digits or too many words, so no name is found and no
	// contact block is emitted.
	text := "jane@example.com 123\nexperienced engineer working across four teams since 2019"

	got := StructuralFallback(text)

	if strings.Contains(got, "CONTACT INFORMATION") {
		t.Errorf("contact block emitted without a name:\n%s", got)
	}
}

func TestBuildRewritePromptEmbedsResume(t *testing.T) {
	resume := "Jane Doe\njane@example.com"
	prompt := BuildRewritePrompt(resume)

	if !strings.Contains(prompt, resume) {
		t.Error("prompt does not embed the resume text")
	}
	for _, header := range []string{
		"CONTACT INFORMATION", "PROFESSIONAL SUMMARY", "PROFESSIONAL EXPERIENCE",
		"TECHNICAL SKILLS", "EDUCATION",
	} {
		if !strings.Contains(prompt, header) {
			t.Errorf("prompt missing canonical header %q", header)
		}
	}
}
