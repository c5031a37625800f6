package cli

import (
	"fmt"

	"resumelift/internal/common"
	"resumelift/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [resume-file]",
	Short: "Render resume text as a styled PDF without enhancement",
	Long: `Render a resume as a styled PDF, skipping scoring and enhancement. Lines
are classified into headers, bullets, contact lines, and skill lists, and
each class gets its own typography. Useful for previewing how already
enhanced text will look on the page.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderPDFPath string

func init() {
	renderCmd.Flags().StringVarP(&renderPDFPath, "output", "o", "", "Path for the rendered PDF (default: enhanced_<input>.pdf)")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	pdfPath := renderPDFPath
	if pdfPath == "" {
		pdfPath = defaultPDFPath(args[0])
	}

	text, err := common.ResolveResumeText(cmd.Context(), args[0], logger)
	if err != nil {
		return err
	}

	logger.Info("Rendering resume",
		"resume_chars", len(text),
		"pdf_path", pdfPath)

	if err := render.RenderPDFFile(text, pdfPath); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	fmt.Printf("PDF written to: %s\n", pdfPath)
	logger.Info("Resume rendering completed successfully", "pdf_path", pdfPath)
	return nil
}
