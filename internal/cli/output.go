package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/turkshead/pkg/pipeline"
)

// outputOpts holds the flags shared by every command that runs the pipeline.
type outputOpts struct {
	output    string  // output file (single knot and format) or base path
	formats   string  // comma-separated formats
	noCache   bool    // disable caching
	refresh   bool    // ignore cached results
	crossings bool    // mark crossings and dash under segments
	grid      bool    // draw the lattice grid
	scale     float64 // inches per lattice unit
}

func (o *outputOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output file (single knot and format), base path, or - for stdout")
	f.StringVarP(&o.formats, "format", "f", "", "output format(s): json, dot, svg, png, txt (comma-separated)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&o.refresh, "refresh", false, "recompute even when cached")
	f.BoolVar(&o.crossings, "crossings", true, "mark crossings and dash under segments")
	f.BoolVar(&o.grid, "grid", false, "draw the lattice grid")
	f.Float64Var(&o.scale, "scale", pipeline.DefaultScale, "distance between lattice units in inches")
}

// writesFiles reports whether artifacts go to files rather than a terminal
// summary.
func (o *outputOpts) writesFiles() bool {
	return o.formats != "" || o.output != ""
}

// resolveFormats returns the requested formats. Without --format the format
// is taken from the --output extension; without either the text preview is
// rendered for the summary.
func (o *outputOpts) resolveFormats() []string {
	if f := parseFormats(o.formats); len(f) > 0 {
		return f
	}
	if ext := strings.TrimPrefix(filepath.Ext(o.output), "."); slices.Contains(pipeline.ValidFormats, ext) {
		return []string{ext}
	}
	if o.output != "" {
		return []string{pipeline.FormatJSON}
	}
	return []string{pipeline.FormatTXT}
}

func (o *outputOpts) apply(opts *pipeline.Options) {
	opts.Formats = o.resolveFormats()
	opts.Refresh = o.refresh
	opts.Crossings = o.crossings
	opts.Grid = o.grid
	opts.Scale = o.scale
}

// run executes the pipeline and reports the result.
func (c *CLI) run(ctx context.Context, opts pipeline.Options, out *outputOpts) error {
	out.apply(&opts)
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Tracing knots...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Pipeline failed")
		return err
	}
	spinner.Stop()

	if !out.writesFiles() {
		printSummary(res, true)
		return nil
	}
	if out.output == "-" && (len(res.Knots) != 1 || len(opts.Formats) != 1) {
		return fmt.Errorf("stdout output needs a single knot and format, have %d knots and %d formats", len(res.Knots), len(opts.Formats))
	}
	if out.output != "-" {
		printSummary(res, false)
	}
	paths, err := writeArtifacts(res, opts.Formats, out.output)
	for _, p := range paths {
		printFile(p)
	}
	return err
}

// printSummary prints one block per knot, optionally with its text preview.
func printSummary(res *pipeline.Result, preview bool) {
	if s := res.Synthesis; s != nil {
		printSuccess("Synthesized %d knots from %s", len(s.Knots), StyleHighlight.Render(s.Layers.String()))
		printDetail("%d candidates, %d tyable", s.Candidates, s.Tyable)
		if len(res.Knots) < len(s.Knots) {
			printDetail("showing the first %d", len(res.Knots))
		}
	}
	cached := res.CacheInfo.BuildHit || res.CacheInfo.RenderHits > 0
	for _, kr := range res.Knots {
		a := kr.Analysis
		card := knotCard{
			name:      a.Name,
			key:       a.Knot.Key(),
			period:    a.Knot.XModulus(),
			height:    a.Knot.YMax(),
			pivots:    a.Knot.Len(),
			strands:   a.Strands.Count(),
			crossings: a.Crossings.Len(),
			cached:    cached,
		}
		if preview {
			card.preview = string(kr.Artifacts[pipeline.FormatTXT])
		}
		fmt.Println()
		fmt.Print(card.render())
	}
}

// writeArtifacts writes every artifact of res and returns the paths written.
// A single knot in a single format goes to output as given; otherwise output
// is a base path and each file gets the knot name and format appended.
func writeArtifacts(res *pipeline.Result, formats []string, output string) ([]string, error) {
	single := len(res.Knots) == 1 && len(formats) == 1
	var written []string
	for _, kr := range res.Knots {
		for _, format := range formats {
			path := artifactPath(output, kr.Analysis.Name, format, single, len(res.Knots) > 1)
			if err := writeOutput(path, kr.Artifacts[format]); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			if path != "-" {
				written = append(written, path)
			}
		}
	}
	return written, nil
}

// artifactPath derives the file for one artifact.
func artifactPath(output, name, format string, single, multiKnot bool) string {
	if single && output != "" {
		return output
	}
	if output == "" {
		return fileStem(name) + "." + format
	}
	base := output
	if ext := filepath.Ext(output); slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		base = strings.TrimSuffix(output, ext)
	}
	if multiKnot {
		base += "_" + fileStem(name)
	}
	return base + "." + format
}

// fileStem turns a knot name such as "TH(3,4)" or "3@1,3@2#2" into a file
// name stem.
func fileStem(name string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '@', r == '-':
			return r
		case r == ',':
			return '-'
		default:
			return '_'
		}
	}, name)
	if stem = strings.Trim(stem, "_"); stem == "" {
		return "knot"
	}
	return stem
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
