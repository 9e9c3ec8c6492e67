package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "th-3-4", false},
		{"valid with dot", "layers.v2", false},
		{"valid underscore", "two_strand", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"space", "my knot", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTurksHead(t *testing.T) {
	tests := []struct {
		name          string
		leads, bights int
		code          Code
	}{
		{"valid", 3, 4, ""},
		{"zero leads", 0, 4, ErrCodeInvalidInput},
		{"negative bights", 3, -1, ErrCodeInvalidInput},
		{"too many leads", MaxLeads + 1, 3, ErrCodeTooLarge},
		{"too many bights", 3, MaxBights + 1, ErrCodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTurksHead(tt.leads, tt.bights)
			if got := GetCode(err); got != tt.code {
				t.Errorf("ValidateTurksHead(%d, %d) code = %q, want %q", tt.leads, tt.bights, got, tt.code)
			}
		})
	}
}

func TestValidateCounts(t *testing.T) {
	if err := ValidatePivotCount(6); err != nil {
		t.Errorf("ValidatePivotCount(6) = %v", err)
	}
	if !Is(ValidatePivotCount(0), ErrCodeInvalidInput) {
		t.Error("ValidatePivotCount(0) should be INVALID_INPUT")
	}
	if !Is(ValidatePivotCount(MaxPivots+1), ErrCodeTooLarge) {
		t.Error("ValidatePivotCount over the limit should be TOO_LARGE")
	}
	if !Is(ValidateLayerCount(0), ErrCodeInvalidLayer) {
		t.Error("ValidateLayerCount(0) should be INVALID_LAYER")
	}
	if !Is(ValidateLayerCount(MaxLayers+1), ErrCodeTooLarge) {
		t.Error("ValidateLayerCount over the limit should be TOO_LARGE")
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("SVG", "svg", "png", "dot"); err != nil {
		t.Errorf("ValidateFormat(SVG) = %v", err)
	}
	err := ValidateFormat("pdf", "svg", "png")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(pdf) = %v, want INVALID_FORMAT", err)
	}
}
