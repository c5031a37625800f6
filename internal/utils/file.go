// Package utils holds small path and file helpers shared by the CLI
// commands.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resume inputs arrive either as plain text or as documents that need the
// extraction layer before they can be scored.
var (
	textExtensions     = map[string]bool{".txt": true, ".md": true, ".markdown": true, ".text": true}
	documentExtensions = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true}
)

// ValidateInputFile checks that a resume file exists, is a regular file,
// and can be opened for reading.
func ValidateInputFile(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}
		return fmt.Errorf("cannot access file %s: %w", filename, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", filename, err)
	}
	return nil
}

// ValidateOutputFile ensures the directory for an output path exists,
// creating it when needed. An empty path means stdout and is always valid.
func ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil
	}

	dir := filepath.Dir(filename)
	if dir == "." {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetFileExtension returns the file extension in lowercase.
func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsTextFile reports whether the file looks like plain resume text that can
// be read directly.
func IsTextFile(filename string) bool {
	return textExtensions[GetFileExtension(filename)]
}

// IsDocumentFile reports whether the file is a PDF or image that must go
// through text extraction first.
func IsDocumentFile(filename string) bool {
	return documentExtensions[GetFileExtension(filename)]
}

// FormatFileSize returns a human-readable file size for log output.
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
