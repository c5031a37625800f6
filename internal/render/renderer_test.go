package render

import (
	"bytes"
	"strings"
	"testing"

	"resumelift/internal/layout"
)

func TestBuildDocumentSpacerBeforeHeaders(t *testing.T) {
	lines := []layout.Line{
		{Text: "Jane Doe", Role: layout.ContactLine},
		{Text: "PROFESSIONAL EXPERIENCE", Role: layout.SectionHeader},
		{Text: "• Shipped the importer", Role: layout.Bullet},
		{Text: "EDUCATION", Role: layout.SectionHeader},
	}

	doc := BuildDocument(lines)

	// Two spacers plus four text blocks, in input order.
	if len(doc.Blocks) != 6 {
		t.Fatalf("got %d blocks, want 6: %+v", len(doc.Blocks), doc.Blocks)
	}

	wantKinds := []BlockKind{TextBlock, SpacerBlock, TextBlock, TextBlock, SpacerBlock, TextBlock}
	for i, kind := range wantKinds {
		if doc.Blocks[i].Kind != kind {
			t.Errorf("Blocks[%d].Kind = %v, want %v", i, doc.Blocks[i].Kind, kind)
		}
	}

	if doc.Blocks[1].Height != spacerHeight {
		t.Errorf("spacer Height = %v, want %v", doc.Blocks[1].Height, spacerHeight)
	}
}

func TestBuildDocumentStyles(t *testing.T) {
	tests := []struct {
		name string
		line layout.Line
		want Style
	}{
		{"section header", layout.Line{Text: "EDUCATION", Role: layout.SectionHeader}, headerStyle},
		{"sub-header", layout.Line{Text: "Engineer – Acme", Role: layout.SubHeader}, subHeaderStyle},
		{"bullet", layout.Line{Text: "• Did a thing", Role: layout.Bullet}, bulletStyle},
		{"contact", layout.Line{Text: "jane@example.com", Role: layout.ContactLine}, contactStyle},
		{"prose", layout.Line{Text: "A sentence.", Role: layout.Prose}, normalStyle},
		{"skills", layout.Line{Text: "Go, SQL, AWS", Role: layout.SkillsList}, normalStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := BuildDocument([]layout.Line{tt.line})
			var text *Block
			for i := range doc.Blocks {
				if doc.Blocks[i].Kind == TextBlock {
					text = &doc.Blocks[i]
				}
			}
			if text == nil {
				t.Fatal("no text block produced")
			}
			if text.Style != tt.want {
				t.Errorf("Style = %+v, want %+v", text.Style, tt.want)
			}
		})
	}
}

func TestBuildDocumentJoinsSkills(t *testing.T) {
	doc := BuildDocument([]layout.Line{
		{Text: "Python, SQL, AWS, Docker", Role: layout.SkillsList},
	})

	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
	}
	want := "Python • SQL • AWS • Docker"
	if doc.Blocks[0].Text != want {
		t.Errorf("Text = %q, want %q", doc.Blocks[0].Text, want)
	}
}

func TestBuildDocumentFromText(t *testing.T) {
	text := "TECHNICAL SKILLS\nGo, SQL, AWS\n\n- Built things"

	doc := BuildDocumentFromText(text)

	// spacer, header, skills, bullet
	if len(doc.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4: %+v", len(doc.Blocks), doc.Blocks)
	}
	if doc.Blocks[0].Kind != SpacerBlock {
		t.Errorf("Blocks[0].Kind = %v, want spacer before header", doc.Blocks[0].Kind)
	}
	if doc.Blocks[2].Text != "Go • SQL • AWS" {
		t.Errorf("skills Text = %q", doc.Blocks[2].Text)
	}
}

func TestWritePDF(t *testing.T) {
	text := `Jane Doe
jane@example.com

PROFESSIONAL SUMMARY
Engineer focused on data infrastructure and developer tooling at scale.

PROFESSIONAL EXPERIENCE
Senior Engineer – Acme | 2023
• Built the streaming ingestion service
• Reduced pipeline latency by 40%

TECHNICAL SKILLS
Go, Python, SQL, Kubernetes`

	var buf bytes.Buffer
	if err := RenderPDF(text, &buf); err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic: %q", out[:min(len(out), 8)])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("output missing PDF trailer")
	}
}

func TestWritePDFEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(Document{}, &buf); err != nil {
		t.Fatalf("WritePDF on empty document failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty document produced no output")
	}
}

func TestJoinSkills(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a, b, c", "a • b • c"},
		{"a,b,c", "a • b • c"},
		{"a, , c", "a • c"},
		{"  spaced  ,  items  ,  here  ", "spaced • items • here"},
	}

	for _, tt := range tests {
		if got := joinSkills(tt.in); got != tt.want {
			t.Errorf("joinSkills(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func BenchmarkRenderPDF(b *testing.B) {
	text := strings.Repeat("PROFESSIONAL EXPERIENCE\nEngineer – Acme | 2023\n• Built a service\nGo, SQL, AWS\n\n", 10)

	for b.Loop() {
		var buf bytes.Buffer
		_ = RenderPDF(text, &buf)
	}
}
