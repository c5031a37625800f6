package common

import (
	"context"

	"resumelift/internal/errors"
	"resumelift/internal/extract"
	"resumelift/internal/utils"
)

// TextOperationFunc is a generic function signature for a pipeline operation
// that consumes resume text and produces a reportable output.
type TextOperationFunc[Output any] func(context.Context, string) (Output, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc func(text string, cfg CommandConfig)

// ResolveResumeText turns an input path into resume text. Plain text files
// are read directly; PDFs and images go through the extraction layer.
func ResolveResumeText(ctx context.Context, path string, logger *errors.Logger) (string, error) {
	if utils.IsDocumentFile(path) {
		return extract.Text(ctx, path)
	}

	return NewFileProcessor(logger).ReadResumeFile(path)
}

// RunTextCommand encapsulates the common logic for file-based CLI commands:
// resolve the resume text, run the operation, format and write the result.
func RunTextCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	path string,
	operation TextOperationFunc[Output],
	logDetails LogDetailsFunc,
) error {
	outputHandler := NewOutputHandler(logger)

	text, err := ResolveResumeText(ctx, path, logger)
	if err != nil {
		return err
	}

	if logDetails != nil {
		logDetails(text, cmdConfig)
	}

	result, err := operation(ctx, text)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
