package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/pipeline"
)

// searchOpts holds the layer search flags.
type searchOpts struct {
	singleStrand  bool
	workers       int
	maxCandidates int
	limit         int
}

func (o *searchOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.singleStrand, "single-strand", false, "keep only knots tied with one cord")
	f.IntVar(&o.workers, "workers", runtime.GOMAXPROCS(0), "goroutines evaluating candidates")
	f.IntVar(&o.maxCandidates, "max-candidates", pipeline.DefaultMaxCandidates, "refuse searches with more candidates")
	f.IntVar(&o.limit, "limit", 0, "analyze and output at most this many knots (0 = all)")
}

func (o *searchOpts) apply(opts *pipeline.Options) {
	if o.singleStrand {
		opts.SingleStrand = true
	}
	opts.Workers = o.workers
	opts.MaxCandidates = o.maxCandidates
	opts.Limit = o.limit
}

// synthCommand creates the synth command for layer searches.
func (c *CLI) synthCommand() *cobra.Command {
	var (
		out    outputOpts
		search searchOpts
		name   string
	)

	cmd := &cobra.Command{
		Use:   "synth [layers]",
		Short: "Search a layer family for knots that tie",
		Long: `Search a layer family for knots that tie.

Layers are given as count@height pairs, e.g. "3@1,3@2". The bottom row holds
one pivot per layer pivot; every candidate placement of the upper rows is
traced and the distinct knots that tie are reported in key order.

Results are cached locally for faster subsequent runs.`,
		Example: `  turkshead synth 3@2
  turkshead synth 3@2,3@4 --single-strand -f svg -o family`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := factory.ParseLayers(args[0])
			if err != nil {
				return err
			}
			if n, err := factory.SearchSpace(layers); err == nil {
				loggerFromContext(cmd.Context()).Debug("search space", "layers", layers, "candidates", n)
			}
			opts := pipeline.Options{Name: name, Layers: layers}
			search.apply(&opts)
			return c.run(cmd.Context(), opts, &out)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name prefix for found knots (default: the layer list)")
	search.bind(cmd)
	out.bind(cmd)
	return cmd
}

// renderCommand creates the render command for knot definition files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		out    outputOpts
		search searchOpts
	)

	cmd := &cobra.Command{
		Use:   "render [definition.toml]",
		Short: "Build and render the knot described by a definition file",
		Long: `Build and render the knot described by a definition file.

A definition is TOML or JSON and names exactly one source:

  name = "ring"
  [turkshead]
  leads = 3
  bights = 4

or a points = [[x, y], ...] list, or [[layers]] tables with count and height
(plus single_strand = true) for a layer search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := knotio.LoadDefinition(args[0])
			if err != nil {
				return err
			}
			opts, err := pipeline.FromDefinition(def)
			if err != nil {
				return err
			}
			search.apply(&opts)
			return c.run(cmd.Context(), opts, &out)
		},
	}

	search.bind(cmd)
	out.bind(cmd)
	return cmd
}
