package errors

import (
	"strings"
	"unicode"
)

// maxNameLength caps chart names. Long enough for any sensible title,
// short enough to stay usable as a store key.
const maxNameLength = 256

// ValidateChartName checks a chart name before it becomes a store key.
// Names surface in URLs and in file paths derived from them, so
// anything that could smuggle a path component is rejected: control
// characters (including null bytes), backslashes, parent-directory and
// double-slash sequences.
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "chart name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "chart name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "chart name contains control characters")
		}
	}
	for _, seq := range []string{"..", "//", "\\"} {
		if strings.Contains(name, seq) {
			return New(ErrCodeInvalidInput, "chart name contains invalid characters: %q", seq)
		}
	}
	return nil
}
