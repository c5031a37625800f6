// Package enhance rewrites resume text to raise its rubric score. It tries
// an external rewrite provider first and falls back to deterministic local
// transforms, never returning text that scores worse than the input.
package enhance

import "context"

// Rewriter produces a rewritten resume from a prompt. Implementations must
// honor ctx cancellation; a failed or empty rewrite is reported as an error,
// never as partial text.
type Rewriter interface {
	// Name identifies the provider (typically the model name) for logging.
	Name() string
	// Rewrite sends the prompt and returns the generated text.
	Rewrite(ctx context.Context, prompt string) (string, error)
}
