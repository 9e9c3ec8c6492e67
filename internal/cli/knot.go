package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/pipeline"
)

// turksHeadCommand creates the th command for analyzing TH(leads, bights).
func (c *CLI) turksHeadCommand() *cobra.Command {
	var out outputOpts
	var name string

	cmd := &cobra.Command{
		Use:   "th [leads] [bights]",
		Short: "Analyze the Turks'-Head knot TH(leads, bights)",
		Long: `Analyze the Turks'-Head knot TH(leads, bights).

The knot has one row of bights at the bottom of the cylinder and one at
height leads. It ties with gcd(leads, bights) separate cords.

Without --format or --output a summary with a text preview is printed.`,
		Example: `  turkshead th 3 4
  turkshead th 3 5 -f svg,json -o th35`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("leads: %w", err)
			}
			bights, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bights: %w", err)
			}
			return c.run(cmd.Context(), pipeline.Options{Name: name, Leads: leads, Bights: bights}, &out)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "knot name (default TH(leads,bights))")
	out.bind(cmd)
	return cmd
}

// traceCommand creates the trace command for analyzing explicit points.
func (c *CLI) traceCommand() *cobra.Command {
	var out outputOpts
	var name string

	cmd := &cobra.Command{
		Use:   "trace [points.json|-]",
		Short: "Trace and analyze a knot given as lattice points",
		Long: `Trace and analyze a knot given as lattice points.

The input is JSON: a list of [x, y] pairs, a list of {"x": .., "y": ..}
objects, or an object with a "pivots" list (as written by -f json). Use - to
read from stdin. Points are translated so the lowest-left pivot sits at the
origin before tracing.`,
		Example: `  echo '[[0,0],[2,0],[4,0],[0,2],[2,2],[4,2]]' | turkshead trace -`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			points, err := knotio.ImportPoints(args[0])
			if err != nil {
				return err
			}
			logger.Debug("read points", "count", len(points), "source", args[0])
			return c.run(cmd.Context(), pipeline.Options{Name: name, Points: points}, &out)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "knot name (default knot)")
	out.bind(cmd)
	return cmd
}
