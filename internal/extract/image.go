//go:build ocr

package extract

import (
	"context"
	"os"

	"github.com/otiai10/gosseract/v2"

	"resumelift/internal/errors"
)

// FromImage runs Tesseract OCR over a scanned resume image. Requires the
// binary to be built with -tags ocr and Tesseract installed on the host.
func FromImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read image file", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "failed to load image for OCR", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "OCR recognition failed", err)
	}

	return text, nil
}
