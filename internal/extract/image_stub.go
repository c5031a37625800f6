//go:build !ocr

package extract

import (
	"context"

	"resumelift/internal/errors"
)

// FromImage is the stub used when the binary is built without the ocr tag.
// Rebuild with -tags ocr (and Tesseract installed) to enable image input.
func FromImage(_ context.Context, _ string) (string, error) {
	return "", errors.NewExtractionError(
		errors.ErrCodeExtractionFailed,
		"image OCR support not enabled; rebuild with -tags ocr",
		nil,
	)
}
