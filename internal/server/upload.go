package server

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"resumelift/internal/extract"
)

// extractUpload spools an uploaded document to a temp file and runs text
// extraction on it. The extractors work from paths, so the upload has to
// touch disk; the temp file is removed before returning.
func (s *Server) extractUpload(ctx context.Context, file multipart.File, filename string) (string, error) {
	if _, err := extract.DetectKind(filename); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "resumelift-upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.Logger.Warn("Failed to remove temp upload", "path", tmpPath, "error", err.Error())
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to flush upload: %w", err)
	}

	return extract.Text(ctx, tmpPath)
}
