package cli

import (
	"context"

	"resumelift/internal/ai"
	"resumelift/internal/ats"
	"resumelift/internal/config"
	"resumelift/internal/enhance"
	"resumelift/internal/errors"
	"resumelift/internal/pipeline"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumelift",
	Short: "A CLI tool for scoring and enhancing resumes",
	Long: `Resumelift extracts text from PDF and image resumes, scores it against
an ATS-style rubric, enhances it through AI rewrites with deterministic
fallbacks, and renders the result as a styled PDF. The enhanced resume never
scores lower than the original.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// buildEngine creates a scoring engine from the configured lexicon file.
func buildEngine(cfg *config.Config) (*ats.Engine, error) {
	lex, err := config.LoadLexicon(cfg.Scoring.LexiconFile)
	if err != nil {
		return nil, err
	}
	return ats.NewEngine(lex), nil
}

// buildController assembles the full processing pipeline: scoring engine,
// AI providers (when an API key is configured), and the enhancement chain.
func buildController(cfg *config.Config, logger *errors.Logger) (*pipeline.Controller, error) {
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	providers, err := ai.NewProviders(&cfg.AI, logger)
	if err != nil {
		return nil, err
	}

	chain := enhance.NewChain(engine, providers, logger)
	if cfg.AI.RewritePrompt != "" {
		chain.SetPromptTemplate(cfg.AI.RewritePrompt)
	}
	return pipeline.NewController(engine, chain, logger), nil
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
