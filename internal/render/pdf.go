package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"resumelift/internal/errors"
)

const pageMargin = 72.0

// renderDocument assembles the letter-size PDF fully in memory, so a render
// failure produces no output bytes at all.
func renderDocument(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, block := range doc.Blocks {
		if block.Kind == SpacerBlock {
			pdf.Ln(block.Height)
			continue
		}

		style := block.Style
		fontStyle := ""
		if style.Bold {
			fontStyle = "B"
		}
		pdf.SetFont("Helvetica", fontStyle, style.Size)
		pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)

		pdf.Ln(style.SpaceBefore)
		pdf.SetX(left + style.Indent)
		lineHeight := style.Size * 1.3
		pdf.MultiCell(contentWidth-style.Indent, lineHeight, tr(block.Text), "", "L", false)
		pdf.Ln(style.SpaceAfter)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed, "failed to render PDF document", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders the document and copies the finished PDF to w. Render
// failures never reach w; a failure of w itself can still leave partial
// bytes with the writer, so callers producing files should use WritePDFFile.
func WritePDF(doc Document, w io.Writer) error {
	data, err := renderDocument(doc)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed, "failed to write PDF output", err)
	}
	return nil
}

// WritePDFFile renders the document and writes it to path atomically: the
// PDF lands in a temp file next to path and is renamed into place only once
// fully written. A failure at any stage leaves no file at path.
func WritePDFFile(doc Document, path string) error {
	data, err := renderDocument(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdf-*")
	if err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed, "failed to create PDF output file", err)
	}

	_, writeErr := tmp.Write(data)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmp.Name(), path)
	}
	if writeErr != nil {
		_ = os.Remove(tmp.Name())
		return errors.NewRenderError(errors.ErrCodeRenderFailed, "failed to write PDF output", writeErr)
	}
	return nil
}

// RenderPDF classifies text, builds the styled document, and writes the PDF
// in one call.
func RenderPDF(text string, w io.Writer) error {
	return WritePDF(BuildDocumentFromText(text), w)
}

// RenderPDFFile is RenderPDF with the atomic file guarantees of
// WritePDFFile.
func RenderPDFFile(text, path string) error {
	return WritePDFFile(BuildDocumentFromText(text), path)
}
