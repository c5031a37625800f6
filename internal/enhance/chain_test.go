package enhance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumelift/internal/ats"
	apperrors "resumelift/internal/errors"
)

type fakeRewriter struct {
	name string
	text string
	err  error
}

func (f *fakeRewriter) Name() string { return f.name }

func (f *fakeRewriter) Rewrite(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func testLogger(t *testing.T) *apperrors.Logger {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

// weakResume scores low: short-document penalty eats most of its points.
const weakResume = "John Smith\njohn@example.com\nexperience\nworked on the billing system"

// strongRewrite is what a well-behaved provider would return for weakResume.
const strongRewrite = `CONTACT INFORMATION
John Smith
john@example.com
phone: (555) 123-4567

PROFESSIONAL SUMMARY
Experienced software engineer who builds billing and payment platforms.
Developed systems that reduced invoice errors by 30%.

PROFESSIONAL EXPERIENCE
Software Engineer, Billing Team (2021 - 2024)
• Developed the billing reconciliation pipeline, improved accuracy by 30%
• Managed the migration to event-driven invoicing

TECHNICAL SKILLS
Python, Go, SQL, AWS, Docker

EDUCATION
Bachelor of Science in Computer Science`

func TestChainAcceptsProviderRewrite(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := NewChain(engine, []Rewriter{&fakeRewriter{name: "fake", text: strongRewrite}}, testLogger(t))

	got := chain.Enhance(context.Background(), weakResume)

	if got.Strategy != StrategyAI {
		t.Errorf("Strategy = %q, want %q", got.Strategy, StrategyAI)
	}
	if got.Text != strongRewrite {
		t.Errorf("Text = %q, want provider output", got.Text)
	}
	if got.Score < engine.Score(weakResume) {
		t.Errorf("Score = %d, regressed below original %d", got.Score, engine.Score(weakResume))
	}
}

func TestChainDiscardsRegressingRewrite(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	// Provider output scores zero, strictly below the original.
	chain := NewChain(engine, []Rewriter{&fakeRewriter{name: "fake", text: "zz"}}, testLogger(t))

	got := chain.Enhance(context.Background(), weakResume)

	if got.Strategy == StrategyAI {
		t.Fatalf("regressing rewrite was accepted: %+v", got)
	}
	if got.Score < engine.Score(weakResume) {
		t.Errorf("Score = %d, regressed below original %d", got.Score, engine.Score(weakResume))
	}
}

func TestChainFallsBackOnProviderError(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := NewChain(engine, []Rewriter{
		&fakeRewriter{name: "broken", err: errors.New("quota exceeded")},
	}, testLogger(t))

	got := chain.Enhance(context.Background(), weakResume)

	if got.Strategy != StrategySmart {
		t.Errorf("Strategy = %q, want %q", got.Strategy, StrategySmart)
	}
	if got.Score <= engine.Score(weakResume) {
		t.Errorf("fallback Score = %d, want strictly above original %d", got.Score, engine.Score(weakResume))
	}
	if !strings.Contains(got.Text, "CONTACT INFORMATION") {
		t.Errorf("smart fallback output missing contact header:\n%s", got.Text)
	}
}

func TestChainTriesProvidersInOrder(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := NewChain(engine, []Rewriter{
		&fakeRewriter{name: "first", err: errors.New("unavailable")},
		&fakeRewriter{name: "second", text: strongRewrite},
	}, testLogger(t))

	got := chain.Enhance(context.Background(), weakResume)

	if got.Strategy != StrategyAI {
		t.Errorf("Strategy = %q, want %q", got.Strategy, StrategyAI)
	}
	if got.Text != strongRewrite {
		t.Errorf("Text = %q, want second provider's output", got.Text)
	}
}

func TestChainSkipsEmptyProviderOutput(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := NewChain(engine, []Rewriter{
		&fakeRewriter{name: "empty", text: "   \n  "},
	}, testLogger(t))

	got := chain.Enhance(context.Background(), weakResume)

	if got.Strategy == StrategyAI {
		t.Fatalf("blank rewrite was accepted: %+v", got)
	}
}

// With a lexicon that matches nothing, every candidate scores zero and the
// fallbacks can never strictly improve, so the chain must hand back the
// input byte for byte.
func TestChainReturnsOriginalUnchanged(t *testing.T) {
	nonsense := ats.Lexicon{
		EmailMarkers:       []string{"zzqx"},
		PhoneMarkers:       []string{"zzqx"},
		NetworkMarkers:     []string{"zzqx"},
		AddressMarkers:     []string{"zzqx"},
		SummaryKeywords:    []string{"zzqx"},
		ExperienceKeywords: []string{"zzqx"},
		JobTitles:          []string{"zzqx"},
		SkillsKeywords:     []string{"zzqx"},
		TechSkills:         []string{"zzqx"},
		SoftSkills:         []string{"zzqx"},
		CertKeywords:       []string{"zzqx"},
		EducationKeywords:  []string{"zzqx"},
		DegreeKeywords:     []string{"zzqx"},
		HonorsMarkers:      []string{"zzqx"},
		ActionVerbs:        []string{"zzqx"},
		SectionKeywords:    []string{"zzqx"},
		FillerPhrases:      []string{"zzqx"},
	}
	engine := ats.NewEngine(nonsense)
	chain := NewChain(engine, nil, testLogger(t))

	// Leading/trailing whitespace must survive untouched.
	input := "  John Smith\njohn@example.com\nexperience\n"
	got := chain.Enhance(context.Background(), input)

	if got.Strategy != StrategyOriginal {
		t.Errorf("Strategy = %q, want %q", got.Strategy, StrategyOriginal)
	}
	if got.Text != input {
		t.Errorf("Text = %q, want input returned byte for byte", got.Text)
	}
}

func TestChainNeverRegresses(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())

	inputs := []string{
		"",
		"john@example.com",
		weakResume,
		strongRewrite,
		strings.Repeat("experience skills education contact summary ", 150),
	}
	providers := [][]Rewriter{
		nil,
		{&fakeRewriter{name: "bad", text: "zz"}},
		{&fakeRewriter{name: "broken", err: errors.New("boom")}},
	}

	for _, input := range inputs {
		for _, p := range providers {
			chain := NewChain(engine, p, testLogger(t))
			got := chain.Enhance(context.Background(), input)
			if original := engine.Score(input); got.Score < original {
				t.Errorf("Enhance(%.30q) Score = %d, below original %d", input, got.Score, original)
			}
		}
	}
}

// Running the chain on its own output must never lose ground: the second
// pass either improves the text again or returns it unchanged.
func TestChainEnhanceIdempotentFloor(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := NewChain(engine, nil, testLogger(t))

	inputs := []string{
		weakResume,
		strongRewrite,
		"john@example.com",
		strings.Repeat("experience skills education contact summary ", 150),
	}

	for _, input := range inputs {
		first := chain.Enhance(context.Background(), input)
		second := chain.Enhance(context.Background(), first.Text)

		if second.Score < first.Score {
			t.Errorf("second pass on %.30q scored %d, below first pass %d",
				input, second.Score, first.Score)
		}
	}
}

// With no providers configured the chain is fully deterministic: repeated
// calls on the same input return the same text, score, and strategy.
func TestChainFallbacksDeterministic(t *testing.T) {
	engine := ats.NewEngine(ats.DefaultLexicon())
	chain := NewChain(engine, nil, testLogger(t))

	inputs := []string{
		weakResume,
		strongRewrite,
		"john@example.com",
	}

	for _, input := range inputs {
		first := chain.Enhance(context.Background(), input)
		for range 3 {
			again := chain.Enhance(context.Background(), input)
			if again.Text != first.Text {
				t.Errorf("repeated Enhance(%.30q) changed text:\n%q\nvs\n%q", input, again.Text, first.Text)
			}
			if again.Score != first.Score || again.Strategy != first.Strategy {
				t.Errorf("repeated Enhance(%.30q) = (%d, %q), want (%d, %q)",
					input, again.Score, again.Strategy, first.Score, first.Strategy)
			}
		}
	}
}
