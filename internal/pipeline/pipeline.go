// Package pipeline wires the scoring engine, enhancement chain, and
// document renderer into the end-to-end resume processing flow.
package pipeline

import (
	"context"
	"io"

	"resumelift/internal/ats"
	"resumelift/internal/enhance"
	"resumelift/internal/errors"
	"resumelift/internal/extract"
	"resumelift/internal/render"
)

// Result is the outcome of processing one resume.
type Result struct {
	OriginalScore int              `json:"originalScore"`
	EnhancedScore int              `json:"enhancedScore"`
	EnhancedText  string           `json:"enhancedText"`
	Strategy      enhance.Strategy `json:"strategy"`
}

// Controller runs the processing stages in order. Each invocation is
// independent; a single Controller is safe for concurrent use.
type Controller struct {
	engine *ats.Engine
	chain  *enhance.Chain
	logger *errors.Logger
}

// NewController assembles a pipeline from its stages.
func NewController(engine *ats.Engine, chain *enhance.Chain, logger *errors.Logger) *Controller {
	return &Controller{
		engine: engine,
		chain:  chain,
		logger: logger,
	}
}

// Score returns the rubric breakdown for text.
func (c *Controller) Score(text string) ats.Breakdown {
	return c.engine.Breakdown(text)
}

// Enhance runs the enhancement chain and returns the accepted text. It
// never fails: when no strategy improves the score, the input comes back
// unchanged.
func (c *Controller) Enhance(ctx context.Context, text string) string {
	return c.chain.Enhance(ctx, text).Text
}

// Process scores the text, runs the enhancement chain, and re-scores the
// accepted candidate. The enhanced score never comes back lower than the
// original: when no strategy improves the text, the original text and score
// are returned as-is. Inputs below the minimum meaningful length are
// rejected before any work happens.
func (c *Controller) Process(ctx context.Context, text string) (Result, error) {
	if _, err := extract.Validate(text); err != nil {
		return Result{}, err
	}

	originalScore := c.engine.Score(text)

	candidate := c.chain.Enhance(ctx, text)

	c.logger.Info("Processed resume",
		"originalScore", originalScore,
		"enhancedScore", candidate.Score,
		"strategy", candidate.Strategy)

	return Result{
		OriginalScore: originalScore,
		EnhancedScore: candidate.Score,
		EnhancedText:  candidate.Text,
		Strategy:      candidate.Strategy,
	}, nil
}

// RenderPDF writes the styled PDF for text to w.
func (c *Controller) RenderPDF(text string, w io.Writer) error {
	return render.RenderPDF(text, w)
}

// RenderPDFToFile writes the styled PDF for text to path. The file appears
// only when the whole PDF has been rendered and written; a failure leaves
// nothing at path.
func (c *Controller) RenderPDFToFile(text, path string) error {
	return render.RenderPDFFile(text, path)
}

// ProcessAndRender runs Process and renders the enhanced text to w. The
// result is returned even when rendering fails so callers can still report
// scores.
func (c *Controller) ProcessAndRender(ctx context.Context, text string, w io.Writer) (Result, error) {
	result, err := c.Process(ctx, text)
	if err != nil {
		return Result{}, err
	}
	if err := c.RenderPDF(result.EnhancedText, w); err != nil {
		return result, err
	}
	return result, nil
}
