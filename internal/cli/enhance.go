package cli

import (
	"context"
	"fmt"

	"resumelift/internal/common"
	"resumelift/internal/types"

	"github.com/spf13/cobra"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [resume-file]",
	Short: "Enhance a resume through the AI/fallback chain",
	Long: `Run a resume through the enhancement chain: AI models first (when an API
key is configured), then deterministic rewrite fallbacks. Every candidate is
re-scored and only accepted if it does not score below the original text, so
the reported enhanced score never regresses.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if enhanceConfig.OutputFormat == "" {
			enhanceConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(enhanceConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runEnhance,
}

var enhanceConfig common.CommandConfig

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	enhanceCmd.Flags().StringVar(&enhanceConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = enhanceCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	controller, err := buildController(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	logDetails := func(text string, cfg common.CommandConfig) {
		logger.Info("Starting resume enhancement",
			"resume_chars", len(text),
			"output_format", cfg.OutputFormat)
	}

	enhanceOperation := func(ctx context.Context, text string) (types.EnhanceOutput, error) {
		result, err := controller.Process(ctx, text)
		if err != nil {
			return types.EnhanceOutput{}, err
		}
		return types.EnhanceOutput{
			OriginalScore: result.OriginalScore,
			EnhancedScore: result.EnhancedScore,
			Strategy:      string(result.Strategy),
			EnhancedText:  result.EnhancedText,
		}, nil
	}

	err = common.RunTextCommand(
		cmd.Context(),
		logger,
		enhanceConfig,
		args[0],
		enhanceOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to enhance resume: %w", err)
	}
	logger.Info("Resume enhancement completed successfully")
	return nil
}
