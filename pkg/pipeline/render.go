package pipeline

import (
	"bytes"
	"context"
	"fmt"

	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/render"
)

// Render generates output artifacts for one analyzed knot in the requested
// formats.
func Render(ctx context.Context, a *Analysis, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	dotSource := func() (string, error) {
		if dot != "" {
			return dot, nil
		}
		var err error
		dot, err = render.ToDOT(a.Knot, a.Strands, a.Crossings, opts.RenderOptions(a.Name))
		return dot, err
	}

	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, a, format, dotSource)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, a *Analysis, format string, dotSource func() (string, error)) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := knotio.WriteAnalysis(a.Doc(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTXT:
		return []byte(render.Preview(a.Knot, a.Strands, a.Crossings) + "\n"), nil
	}

	dot, err := dotSource()
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return render.RenderSVG(ctx, dot)
	case FormatPNG:
		return render.RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
