package enhance

import (
	"context"
	"fmt"
	"strings"

	"resumelift/internal/ats"
	"resumelift/internal/errors"
)

// Strategy names which step of the chain produced the accepted text.
type Strategy string

const (
	StrategyAI         Strategy = "ai"
	StrategySmart      Strategy = "smart-fallback"
	StrategyStructural Strategy = "structural-fallback"
	StrategyOriginal   Strategy = "original"
)

// Candidate is the outcome of an enhancement attempt: the accepted text,
// its rubric score, and which strategy produced it.
type Candidate struct {
	Text     string   `json:"text"`
	Score    int      `json:"score"`
	Strategy Strategy `json:"strategy"`
}

// Chain runs enhancement strategies in fixed order: each configured rewrite
// provider, then the smart fallback, then the structural fallback. A
// provider result is accepted when it scores at least as well as the input;
// fallback results must score strictly better. When nothing qualifies the
// input text is returned untouched, so the output score never regresses.
type Chain struct {
	engine         *ats.Engine
	providers      []Rewriter
	logger         *errors.Logger
	promptTemplate string
}

// NewChain builds a chain. providers may be empty, in which case only the
// local fallbacks run.
func NewChain(engine *ats.Engine, providers []Rewriter, logger *errors.Logger) *Chain {
	return &Chain{
		engine:    engine,
		providers: providers,
		logger:    logger,
	}
}

// SetPromptTemplate overrides the default rewrite instruction template. The
// template must contain a single %s placeholder for the resume text.
func (c *Chain) SetPromptTemplate(template string) {
	c.promptTemplate = template
}

// Enhance runs the chain on text. Provider errors and timeouts are logged
// and treated as "no candidate"; Enhance itself never fails.
func (c *Chain) Enhance(ctx context.Context, text string) Candidate {
	originalScore := c.engine.Score(text)

	prompt := BuildRewritePrompt(text)
	if c.promptTemplate != "" {
		prompt = fmt.Sprintf(c.promptTemplate, text)
	}

	for _, provider := range c.providers {
		rewritten, err := provider.Rewrite(ctx, prompt)
		if err != nil {
			c.logger.Warn("Rewrite provider failed, trying next strategy",
				"provider", provider.Name(),
				"error", err)
			continue
		}
		if strings.TrimSpace(rewritten) == "" {
			c.logger.Warn("Rewrite provider returned empty text",
				"provider", provider.Name())
			continue
		}

		score := c.engine.Score(rewritten)
		if score >= originalScore {
			c.logger.Info("Accepted provider rewrite",
				"provider", provider.Name(),
				"originalScore", originalScore,
				"enhancedScore", score)
			return Candidate{Text: rewritten, Score: score, Strategy: StrategyAI}
		}

		c.logger.Info("Provider rewrite regressed score, discarding",
			"provider", provider.Name(),
			"originalScore", originalScore,
			"rewrittenScore", score)
	}

	if smart := SmartFallback(text); c.engine.Score(smart) > originalScore {
		score := c.engine.Score(smart)
		c.logger.Info("Accepted smart fallback",
			"originalScore", originalScore,
			"enhancedScore", score)
		return Candidate{Text: smart, Score: score, Strategy: StrategySmart}
	}

	if structural := StructuralFallback(text); c.engine.Score(structural) > originalScore {
		score := c.engine.Score(structural)
		c.logger.Info("Accepted structural fallback",
			"originalScore", originalScore,
			"enhancedScore", score)
		return Candidate{Text: structural, Score: score, Strategy: StrategyStructural}
	}

	c.logger.Info("No strategy improved the score, keeping original",
		"originalScore", originalScore)
	return Candidate{Text: text, Score: originalScore, Strategy: StrategyOriginal}
}
