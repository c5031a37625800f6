package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"resumelift/internal/common"
	"resumelift/internal/types"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process [resume-file]",
	Short: "Enhance a resume and render it as a styled PDF",
	Long: `Run the full pipeline on a resume: extract text (for PDF/image inputs),
enhance it through the AI/fallback chain, and render the enhanced text as a
styled PDF. The score summary is written to stdout or --output; the PDF goes
to --pdf (default: enhanced_<input>.pdf in the current directory).`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if processConfig.OutputFormat == "" {
			processConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(processConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runProcess,
}

var (
	processConfig  common.CommandConfig
	processPDFPath string
)

func init() {
	processCmd.Flags().StringVarP(&processConfig.OutputFile, "output", "o", "", "Output file path for the score summary (default: stdout)")
	processCmd.Flags().StringVar(&processConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	processCmd.Flags().StringVar(&processPDFPath, "pdf", "", "Path for the rendered PDF (default: enhanced_<input>.pdf)")

	_ = processCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// defaultPDFPath derives the rendered PDF name from the input file name.
func defaultPDFPath(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "enhanced_" + base + ".pdf"
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	controller, err := buildController(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	pdfPath := processPDFPath
	if pdfPath == "" {
		pdfPath = defaultPDFPath(args[0])
	}

	logDetails := func(text string, cfg common.CommandConfig) {
		logger.Info("Starting resume processing",
			"resume_chars", len(text),
			"pdf_path", pdfPath,
			"output_format", cfg.OutputFormat)
	}

	processOperation := func(ctx context.Context, text string) (types.ProcessOutput, error) {
		result, err := controller.Process(ctx, text)
		if err != nil {
			return types.ProcessOutput{}, err
		}

		if err := controller.RenderPDFToFile(result.EnhancedText, pdfPath); err != nil {
			return types.ProcessOutput{}, err
		}

		return types.ProcessOutput{
			OriginalScore: result.OriginalScore,
			EnhancedScore: result.EnhancedScore,
			Strategy:      string(result.Strategy),
			EnhancedText:  result.EnhancedText,
			OutputFile:    pdfPath,
		}, nil
	}

	err = common.RunTextCommand(
		cmd.Context(),
		logger,
		processConfig,
		args[0],
		processOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to process resume: %w", err)
	}
	logger.Info("Resume processing completed successfully", "pdf_path", pdfPath)
	return nil
}
