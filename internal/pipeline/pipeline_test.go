package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"resumelift/internal/ats"
	"resumelift/internal/enhance"
	apperrors "resumelift/internal/errors"
)

type stubRewriter struct {
	text string
	err  error
}

func (s *stubRewriter) Name() string { return "stub" }

func (s *stubRewriter) Rewrite(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func newTestController(t *testing.T, providers ...enhance.Rewriter) *Controller {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	engine := ats.NewEngine(ats.DefaultLexicon())
	return NewController(engine, enhance.NewChain(engine, providers, logger), logger)
}

const testResume = "John Smith\njohn@example.com\nexperience\nworked on the billing system"

func TestControllerScore(t *testing.T) {
	c := newTestController(t)

	b := c.Score(testResume)
	if b.Total < 0 || b.Total > 100 {
		t.Errorf("Total = %d, want within [0, 100]", b.Total)
	}
	if b.Contact == 0 {
		t.Error("Contact = 0, want email credit")
	}
}

func TestControllerProcessNeverRegresses(t *testing.T) {
	providerSets := [][]enhance.Rewriter{
		nil,
		{&stubRewriter{err: errors.New("provider down")}},
		{&stubRewriter{text: "zz"}},
	}

	for _, providers := range providerSets {
		c := newTestController(t, providers...)
		result, err := c.Process(context.Background(), testResume)
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}

		if result.EnhancedScore < result.OriginalScore {
			t.Errorf("EnhancedScore %d < OriginalScore %d (providers=%d)",
				result.EnhancedScore, result.OriginalScore, len(providers))
		}
		if result.Strategy == "" {
			t.Error("Strategy not set")
		}
	}
}

func TestControllerProcessReportsStrategy(t *testing.T) {
	c := newTestController(t)

	result, err := c.Process(context.Background(), testResume)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.Strategy != enhance.StrategySmart {
		t.Errorf("Strategy = %q, want %q", result.Strategy, enhance.StrategySmart)
	}
	if result.EnhancedText == testResume {
		t.Error("EnhancedText unchanged despite fallback acceptance")
	}
}

func TestControllerProcessAndRender(t *testing.T) {
	c := newTestController(t)

	var buf bytes.Buffer
	result, err := c.ProcessAndRender(context.Background(), testResume, &buf)
	if err != nil {
		t.Fatalf("ProcessAndRender failed: %v", err)
	}

	if result.EnhancedScore < result.OriginalScore {
		t.Errorf("EnhancedScore %d < OriginalScore %d", result.EnhancedScore, result.OriginalScore)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("rendered output is not a PDF")
	}
}

func TestControllerProcessRejectsShortInput(t *testing.T) {
	c := newTestController(t)

	_, err := c.Process(context.Background(), "too short")
	if err == nil {
		t.Fatal("Process accepted input below the minimum meaningful length")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.ErrCodeInsufficientText {
		t.Errorf("Code = %q, want %q", appErr.Code, apperrors.ErrCodeInsufficientText)
	}
}

func TestControllerEnhanceNeverFails(t *testing.T) {
	c := newTestController(t, &stubRewriter{err: errors.New("provider down")})

	if got := c.Enhance(context.Background(), "zz"); got == "" {
		t.Error("Enhance returned empty text")
	}
}

func TestControllerRenderPDF(t *testing.T) {
	c := newTestController(t)

	var buf bytes.Buffer
	if err := c.RenderPDF("PROFESSIONAL SUMMARY\nBuilds reliable services.", &buf); err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("RenderPDF produced no output")
	}
}
