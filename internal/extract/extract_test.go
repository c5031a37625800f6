package extract

import (
	"errors"
	"strings"
	"testing"

	apperrors "resumelift/internal/errors"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		filename  string
		want      Kind
		wantError bool
	}{
		{filename: "resume.pdf", want: KindPDF},
		{filename: "Resume.PDF", want: KindPDF},
		{filename: "scan.png", want: KindImage},
		{filename: "scan.jpg", want: KindImage},
		{filename: "scan.JPEG", want: KindImage},
		{filename: "resume.docx", wantError: true},
		{filename: "resume", wantError: true},
		{filename: "resume.pdf.exe", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectKind(tt.filename)
			if tt.wantError {
				if err == nil {
					t.Errorf("DetectKind(%q) = %q, want error", tt.filename, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectKind(%q) failed: %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("DetectKind(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	long := strings.Repeat("resume content with plenty of extractable text. ", 3)

	tests := []struct {
		name      string
		text      string
		want      string
		wantError bool
	}{
		{name: "empty", text: "", wantError: true},
		{name: "whitespace only", text: "   \n\t  ", wantError: true},
		{name: "just under the minimum", text: strings.Repeat("a", 49), wantError: true},
		{name: "padding does not count", text: "  short  \n\n" + strings.Repeat(" ", 100), wantError: true},
		{name: "exactly the minimum", text: strings.Repeat("a", 50), want: strings.Repeat("a", 50)},
		{name: "trimmed", text: "  " + long + "  \n", want: long[:len(long)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.text)
			if tt.wantError {
				if err == nil {
					t.Fatalf("Validate(%q) = %q, want error", tt.text, got)
				}
				var appErr *apperrors.AppError
				if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeInsufficientText {
					t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeInsufficientText)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Hello World", want: "Hello World"},
		{name: "escaped parens", in: `\(quoted\)`, want: "(quoted)"},
		{name: "newline and tab", in: `a\nb\tc`, want: "a\nb\tc"},
		{name: "octal space", in: `a\040b`, want: "a b"},
		{name: "short octal", in: `\51`, want: ")"},
		{name: "backslash", in: `a\\b`, want: `a\b`},
		{name: "unknown escape passes through", in: `a\qb`, want: "aqb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodePDFString([]byte(tt.in)); got != tt.want {
				t.Errorf("decodePDFString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractTextFromStream(t *testing.T) {
	stream := strings.Join([]string{
		"BT",
		"/F1 12 Tf",
		"72 720 Td",
		"(PROFESSIONAL EXPERIENCE) Tj",
		"0 -14 Td",
		"[(Senior ) (Engineer)] TJ",
		"T*",
		"(Built the ingestion service) '",
		"ET",
	}, "\n")

	got := extractTextFromStream([]byte(stream))

	want := "PROFESSIONAL EXPERIENCE\nSenior Engineer\n\nBuilt the ingestion service"
	if got != want {
		t.Errorf("extractTextFromStream =\n%q\nwant\n%q", got, want)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses spaces within a line", in: "a   b\tc", want: "a b c"},
		{name: "keeps newlines", in: "line one\nline two", want: "line one\nline two"},
		{name: "trims trailing spaces per line", in: "a  \nb\t\t", want: "a\nb"},
		{name: "drops unprintable runes", in: "a\x00b\x07c", want: "abc"},
		{name: "trims outer whitespace", in: "\n\n x \n\n", want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.in); got != tt.want {
				t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
