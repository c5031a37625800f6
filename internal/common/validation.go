package common

import (
	"fmt"
	"strings"
)

// ValidateOutputFormat checks a report format name against the configured
// allow-list. Matching is case-insensitive; an empty allow-list accepts any
// format.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	for _, supported := range supportedFormats {
		if strings.EqualFold(format, supported) {
			return nil
		}
	}

	return fmt.Errorf("unsupported output format %q (supported: %s)",
		format, strings.Join(supportedFormats, ", "))
}

// GetSupportedFormats returns the format names offered by the CLI's flag
// completion.
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
