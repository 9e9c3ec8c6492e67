// Package pipeline runs the build → analyze → render stages shared by the CLI
// and the HTTP server.
//
// A run starts from one knot source: explicit points, a Turks'-Head
// TH(leads, bights), or a layer synthesis request. The build stage turns the
// source into knots (layer searches are cached), the analyze stage decomposes
// each knot into strands and classifies its crossings, and the render stage
// produces the requested artifacts (cached per knot and format).
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/turkshead/pkg/cache"
	errs "github.com/matzehuels/turkshead/pkg/errors"
	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/lattice"
	"github.com/matzehuels/turkshead/pkg/render"
)

// =============================================================================
// Format Constants
// =============================================================================

const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatTXT  = "txt"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatTXT}

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMaxCandidates bounds layer searches unless the caller sets a
	// limit of its own.
	DefaultMaxCandidates = 1 << 20

	// DefaultScale is the render distance between lattice units, in inches.
	DefaultScale = 0.5
)

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. Exactly one source must be set: Points,
// Leads/Bights, or Layers.
type Options struct {
	// Name labels the output. Defaults to a name derived from the source.
	Name string

	// Source: explicit points
	Points []lattice.Point

	// Source: Turks'-Head
	Leads  int
	Bights int

	// Source: layer synthesis
	Layers        factory.Layers
	SingleStrand  bool
	Workers       int
	MaxCandidates int
	// Limit caps how many synthesized knots are analyzed and rendered.
	// Zero means all of them.
	Limit int

	// Render options
	Formats   []string
	Scale     float64
	Crossings bool
	Grid      bool

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool

	Logger *log.Logger

	validated bool
}

// FromDefinition converts a knot definition into pipeline options.
// Render options are left for the caller.
func FromDefinition(d *knotio.Definition) (Options, error) {
	if err := d.Validate(); err != nil {
		return Options{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "definition")
	}
	opts := Options{Name: d.Name, SingleStrand: d.SingleStrand}
	switch d.Kind() {
	case knotio.KindPoints:
		opts.Points = d.PointList()
	case knotio.KindTurksHead:
		opts.Leads, opts.Bights = d.TurksHead.Leads, d.TurksHead.Bights
	case knotio.KindLayers:
		opts.Layers = factory.Layers(d.Layers)
	}
	return opts, nil
}

// Source reports which knot source the options use.
func (o *Options) Source() knotio.DefinitionKind {
	switch {
	case len(o.Layers) > 0:
		return knotio.KindLayers
	case o.Leads != 0 || o.Bights != 0:
		return knotio.KindTurksHead
	default:
		return knotio.KindPoints
	}
}

// ValidateAndSetDefaults checks the source and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks that exactly one source is set and within limits.
func (o *Options) ValidateForBuild() error {
	sources := 0
	if len(o.Points) > 0 {
		sources++
	}
	if o.Leads != 0 || o.Bights != 0 {
		sources++
	}
	if len(o.Layers) > 0 {
		sources++
	}
	switch {
	case sources == 0:
		return errs.New(errs.ErrCodeInvalidInput, "points, turkshead or layers is required")
	case sources > 1:
		return errs.New(errs.ErrCodeInvalidInput, "points, turkshead and layers are exclusive")
	}

	switch o.Source() {
	case knotio.KindPoints:
		if err := errs.ValidatePivotCount(len(o.Points)); err != nil {
			return err
		}
	case knotio.KindTurksHead:
		if err := errs.ValidateTurksHead(o.Leads, o.Bights); err != nil {
			return err
		}
	case knotio.KindLayers:
		if err := errs.ValidateLayerCount(len(o.Layers)); err != nil {
			return err
		}
		if err := o.Layers.Validate(); err != nil {
			return errs.FromKnot(err, "layers %s", o.Layers)
		}
		if o.MaxCandidates == 0 {
			o.MaxCandidates = DefaultMaxCandidates
		}
	}

	if o.Name == "" {
		o.Name = o.defaultName()
	} else if err := errs.ValidateName(o.Name); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender checks formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if err := errs.ValidateFormat(f, ValidFormats...); err != nil {
			return err
		}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

func (o *Options) defaultName() string {
	switch o.Source() {
	case knotio.KindTurksHead:
		return fmt.Sprintf("TH(%d,%d)", o.Leads, o.Bights)
	case knotio.KindLayers:
		return o.Layers.Sorted().String()
	default:
		return "knot"
	}
}

// SynthesisOptions returns the factory options for a layer search.
func (o *Options) SynthesisOptions() factory.Options {
	return factory.Options{
		SingleStrand:  o.SingleStrand,
		Workers:       o.Workers,
		MaxCandidates: o.MaxCandidates,
	}
}

// RenderOptions returns DOT options for the knot named title.
func (o *Options) RenderOptions(title string) render.Options {
	return render.Options{
		Scale:     o.Scale,
		Crossings: o.Crossings,
		Grid:      o.Grid,
		Title:     title,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered artifact.
func (o *Options) ArtifactKeyOpts(format, title string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Scale:     o.Scale,
		Crossings: o.Crossings,
		Grid:      o.Grid,
		Title:     title,
	}
}

// =============================================================================
// Result Types
// =============================================================================

// Result holds the output of a full pipeline run.
type Result struct {
	RunID     string
	Source    knotio.DefinitionKind
	Synthesis *factory.Synthesis // set for layer sources
	Knots     []KnotResult
	Stats     Stats
	CacheInfo CacheInfo
}

// KnotResult is one analyzed knot and its rendered artifacts keyed by format.
type KnotResult struct {
	Analysis  *Analysis
	Artifacts map[string][]byte
}

// Stats holds timing and size information.
type Stats struct {
	BuildTime   time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
	KnotCount   int
	Strands     int // summed over all knots
	Crossings   int // summed over all knots
}

// CacheInfo reports which stages hit the cache.
type CacheInfo struct {
	BuildHit   bool // layer search result came from cache
	RenderHits int  // artifacts served from cache
}
