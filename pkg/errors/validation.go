package errors

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Limits on external input. The knot code itself has no size limits; these
// keep a single CLI or API request from running unbounded.
const (
	MaxPivots     = 4096
	MaxLeads      = 512
	MaxBights     = 512
	MaxLayers     = 16
	MaxNameLength = 128
)

// ValidatePivotCount rejects empty or oversized point lists.
func ValidatePivotCount(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidInput, "knot needs at least one point")
	}
	if n > MaxPivots {
		return New(ErrCodeTooLarge, "too many points: %d (max %d)", n, MaxPivots)
	}
	return nil
}

// ValidateTurksHead checks Turks'-Head parameters before building the knot.
func ValidateTurksHead(leads, bights int) error {
	if leads <= 0 || bights <= 0 {
		return New(ErrCodeInvalidInput, "leads and bights must be positive, got TH(%d,%d)", leads, bights)
	}
	if leads > MaxLeads || bights > MaxBights {
		return New(ErrCodeTooLarge, "TH(%d,%d) exceeds the limit of %d leads and %d bights", leads, bights, MaxLeads, MaxBights)
	}
	return nil
}

// ValidateLayerCount rejects empty or oversized layer lists.
func ValidateLayerCount(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidLayer, "at least one layer is required")
	}
	if n > MaxLayers {
		return New(ErrCodeTooLarge, "too many layers: %d (max %d)", n, MaxLayers)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed, case-insensitively.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, strings.ToLower(format)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// ValidateName validates a knot or definition name. Names end up in file
// names and cache keys, so the rules are conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of MaxNameLength characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %s", fmt.Sprintf("%q", r))
		}
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "name cannot contain path separators or '..'")
	}
	return nil
}
