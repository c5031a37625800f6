package ai

import (
	"context"

	"resumelift/internal/enhance"
	"resumelift/internal/observability"
)

// InstrumentedRewriter wraps a GeminiRewriter with rewrite duration, count,
// and token usage metrics. The serve path uses it so every model call in the
// enhancement chain shows up in the exported metrics.
type InstrumentedRewriter struct {
	inner *GeminiRewriter
	om    *observability.ObservabilityManager
}

var _ enhance.Rewriter = (*InstrumentedRewriter)(nil)

// InstrumentRewriters wraps each rewriter for use in the enhancement chain.
func InstrumentRewriters(rewriters []*GeminiRewriter, om *observability.ObservabilityManager) []enhance.Rewriter {
	wrapped := make([]enhance.Rewriter, 0, len(rewriters))
	for _, r := range rewriters {
		wrapped = append(wrapped, &InstrumentedRewriter{inner: r, om: om})
	}
	return wrapped
}

func (ir *InstrumentedRewriter) Name() string {
	return ir.inner.Name()
}

func (ir *InstrumentedRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	metrics := ir.om.GetMetrics()

	var text string
	err := metrics.TrackRewriteWithTokens(ctx, ir.inner.Name(), func(ctx context.Context) *observability.RewriteResult {
		t, usage, rewriteErr := ir.inner.RewriteWithUsage(ctx, prompt)
		text = t
		return &observability.RewriteResult{
			Error:      rewriteErr,
			TokenUsage: (*observability.TokenUsage)(usage),
		}
	}, ir.om)
	if err != nil {
		return "", err
	}

	return text, nil
}
