package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"coded", New(ErrCodeInvalidFormat, "x"), ErrCodeInvalidFormat},
		{"empty knot", knot.ErrEmptyKnot, ErrCodeInvalidInput},
		{"malformed", fmt.Errorf("%w: (1,0)", knot.ErrMalformedPoint), ErrCodeMalformedPoint},
		{"no corner", knot.ErrNoLowerLeftCorner, ErrCodeNoLowerLeftCorner},
		{"not tyable", fmt.Errorf("%w: did not close", knot.ErrNotTyable), ErrCodeNotTyable},
		{"trace failure", fmt.Errorf("%w: %w", knot.ErrNotTyable, knot.ErrAmbiguousLine), ErrCodeAmbiguousLine},
		{"unreachable", knot.ErrUnreachablePath, ErrCodeUnreachablePath},
		{"nonterminating", knot.ErrNonterminatingPath, ErrCodeNonterminatingPath},
		{"bad parameter", factory.ErrInvalidParameter, ErrCodeInvalidInput},
		{"bad layer", factory.ErrInvalidLayer, ErrCodeInvalidLayer},
		{"non-divisible", factory.ErrNonDivisibleLayer, ErrCodeNonDivisibleLayer},
		{"exhausted", factory.ErrLayerSearchExhausted, ErrCodeSearchExhausted},
		{"too large", factory.ErrSearchTooLarge, ErrCodeTooLarge},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"unknown", errors.New("disk on fire"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFromKnot(t *testing.T) {
	if FromKnot(nil, "x") != nil {
		t.Error("FromKnot(nil) should be nil")
	}

	_, err := knot.New([]lattice.Point{lattice.Pt(0, 0), lattice.Pt(1, 0)})
	wrapped := FromKnot(err, "reading %s", "input.json")
	if !Is(wrapped, ErrCodeMalformedPoint) {
		t.Errorf("FromKnot code = %q, want MALFORMED_POINT", GetCode(wrapped))
	}
	if !errors.Is(wrapped, knot.ErrMalformedPoint) {
		t.Error("FromKnot should keep the sentinel in the chain")
	}

	coded := New(ErrCodeInvalidFormat, "bad")
	if FromKnot(coded, "ignored") != error(coded) {
		t.Error("FromKnot should return coded errors unchanged")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeMalformedPoint, http.StatusBadRequest},
		{ErrCodeNotTyable, http.StatusUnprocessableEntity},
		{ErrCodeSearchExhausted, http.StatusUnprocessableEntity},
		{ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeNonterminatingPath, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
