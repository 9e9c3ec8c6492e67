package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
)

// classes maps knot sentinels to codes. Order matters: a trace failure
// matches both ErrNotTyable and ErrAmbiguousLine and is reported as the
// more specific ambiguous line.
var classes = []struct {
	target error
	code   Code
}{
	{knot.ErrEmptyKnot, ErrCodeInvalidInput},
	{knot.ErrMalformedPoint, ErrCodeMalformedPoint},
	{knot.ErrNoLowerLeftCorner, ErrCodeNoLowerLeftCorner},
	{knot.ErrNotPivot, ErrCodeInvalidInput},
	{knot.ErrAmbiguousLine, ErrCodeAmbiguousLine},
	{knot.ErrNotTyable, ErrCodeNotTyable},
	{knot.ErrUnreachablePath, ErrCodeUnreachablePath},
	{knot.ErrNonterminatingPath, ErrCodeNonterminatingPath},
	{factory.ErrInvalidParameter, ErrCodeInvalidInput},
	{factory.ErrInvalidLayer, ErrCodeInvalidLayer},
	{factory.ErrNonDivisibleLayer, ErrCodeNonDivisibleLayer},
	{factory.ErrLayerSearchExhausted, ErrCodeSearchExhausted},
	{factory.ErrSearchTooLarge, ErrCodeTooLarge},
	{context.DeadlineExceeded, ErrCodeTimeout},
}

// Classify returns the code for err. An *Error keeps its own code; knot and
// factory sentinels map to their codes; anything else is internal.
func Classify(err error) Code {
	if err == nil {
		return ""
	}
	if code := GetCode(err); code != "" {
		return code
	}
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return c.code
		}
	}
	return ErrCodeInternal
}

// FromKnot wraps err with its classified code. It returns nil for nil and
// err unchanged when it already carries a code.
func FromKnot(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if GetCode(err) != "" {
		return err
	}
	return Wrap(Classify(err), err, format, args...)
}

// HTTPStatus returns the HTTP status code for an error code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidLayer,
		ErrCodeMalformedPoint, ErrCodeNoLowerLeftCorner:
		return http.StatusBadRequest
	case ErrCodeAmbiguousLine, ErrCodeNotTyable, ErrCodeUnreachablePath,
		ErrCodeNonterminatingPath, ErrCodeNonDivisibleLayer, ErrCodeSearchExhausted:
		return http.StatusUnprocessableEntity
	case ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
