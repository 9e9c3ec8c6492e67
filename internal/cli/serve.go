package cli

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/turkshead/internal/server"
	"github.com/matzehuels/turkshead/pkg/observability"
	"github.com/matzehuels/turkshead/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		timeout       time.Duration
		limit         int
		maxCandidates int
		workers       int
		noCache       bool
		noMetrics     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the knot pipeline over HTTP",
		Long: `Serve the knot pipeline over HTTP.

Routes:
  GET  /healthz
  GET  /v1/turkshead?leads=3&bights=4
  POST /v1/knots          JSON point list
  POST /v1/definitions    TOML (Content-Type: application/toml) or JSON definition
  POST /v1/synthesize     {"layers": "3@2,3@4", "single_strand": true}
  GET  /metrics

Knot routes accept ?format=dot|svg|png|txt to return one rendered artifact.`,
		Example: `  turkshead serve --addr :8080
  turkshead serve --redis localhost:6379 --timeout 1m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := server.Config{
				Addr:          addr,
				Logger:        c.Logger,
				Timeout:       timeout,
				Limit:         limit,
				MaxCandidates: maxCandidates,
				Workers:       workers,
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				observability.Register(observability.NewPrometheus(reg))
				defer observability.Reset()
				cfg.Gatherer = reg
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			cfg.Runner = runner

			printInfo("Serving on %s", StyleLink.Render("http://"+addr))
			return server.New(cfg).ListenAndServe(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	f.DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request time limit")
	f.IntVar(&limit, "limit", server.DefaultLimit, "most knots returned by one layer search")
	f.IntVar(&maxCandidates, "max-candidates", pipeline.DefaultMaxCandidates, "refuse searches with more candidates")
	f.IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "goroutines evaluating candidates")
	f.BoolVar(&noCache, "no-cache", false, "disable caching")
	f.BoolVar(&noMetrics, "no-metrics", false, "disable /metrics and hook collection")
	return cmd
}
