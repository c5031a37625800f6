// Package extract pulls plain text out of uploaded resume documents. PDFs
// are parsed directly from their content streams; scanned images go through
// OCR when the binary is built with the ocr tag.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"resumelift/internal/errors"
)

// Kind is the supported input document type.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

// minMeaningfulChars is the minimum trimmed length a document must yield to
// be worth scoring.
const minMeaningfulChars = 50

// DetectKind maps a filename extension to a document kind.
func DetectKind(filename string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".png", ".jpg", ".jpeg":
		return KindImage, nil
	default:
		return "", errors.NewValidationError(
			errors.ErrCodeInvalidFormat,
			"unsupported file type: "+filepath.Ext(filename),
			nil,
		)
	}
}

// Text extracts plain text from the document at path, dispatching on the
// file extension. The result is trimmed and validated for minimum length.
func Text(ctx context.Context, path string) (string, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return "", err
	}

	var text string
	switch kind {
	case KindPDF:
		text, err = FromPDF(path)
	case KindImage:
		text, err = FromImage(ctx, path)
	}
	if err != nil {
		return "", err
	}

	return Validate(text)
}

// Validate trims the extracted text and rejects documents that yielded too
// little to score meaningfully.
func Validate(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minMeaningfulChars {
		return "", errors.NewExtractionError(
			errors.ErrCodeInsufficientText,
			"could not extract sufficient text from the file",
			nil,
		)
	}
	return trimmed, nil
}
