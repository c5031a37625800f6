package cli

import (
	"context"
	"fmt"

	"resumelift/internal/common"
	"resumelift/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file]",
	Short: "Score a resume against the ATS rubric",
	Long: `Score a resume against the ATS-style rubric and report the per-category
breakdown. The input can be a plain text file, a PDF, or an image (PNG/JPEG);
PDFs and images go through text extraction first.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	engine, err := buildEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	logDetails := func(text string, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"resume_chars", len(text),
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, text string) (types.ScoreOutput, error) {
		breakdown := engine.Breakdown(text)
		return types.ScoreOutput{
			Score: breakdown.Total,
			Categories: types.CategoryScores{
				Contact:     breakdown.Contact,
				Summary:     breakdown.Summary,
				Experience:  breakdown.Experience,
				Skills:      breakdown.Skills,
				Education:   breakdown.Education,
				ActionVerbs: breakdown.ActionVerbs,
				Structure:   breakdown.Structure,
			},
			Penalty: breakdown.Penalty,
		}, nil
	}

	err = common.RunTextCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args[0],
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
