package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/turkshead/pkg/buildinfo"
	"github.com/matzehuels/turkshead/pkg/cache"
	"github.com/matzehuels/turkshead/pkg/observability"
	"github.com/matzehuels/turkshead/pkg/pipeline"
)

const (
	appName = "turkshead"

	// envRedisAddr names the environment variable holding a Redis address.
	envRedisAddr = "TURKSHEAD_REDIS_ADDR"

	// envMongoURI names the environment variable holding a MongoDB URI.
	envMongoURI = "TURKSHEAD_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// redisAddr and mongoURI select a shared cache when set.
	redisAddr string
	mongoURI  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Turkshead builds and analyzes lattice knots",
		Long: `Turkshead models decorative knots as pivot points on a diagonal lattice
wrapped around a cylinder. It traces the cords of a knot, decomposes it into
strands, classifies every crossing as over or under, and searches layered
families for knots that tie.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.redisAddr, "redis", os.Getenv(envRedisAddr), "Redis address for the shared cache (env "+envRedisAddr+")")
	root.PersistentFlags().StringVar(&c.mongoURI, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the shared cache (env "+envMongoURI+")")

	root.AddCommand(c.turksHeadCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.synthCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CachePrefix())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache picks the cache backend: none, Redis or MongoDB when configured
// and reachable, otherwise the local file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		rc := cache.NewRedisCache(cache.RedisConfig{Addr: c.redisAddr})
		err := rc.Ping(ctx)
		if err == nil {
			c.Logger.Debug("using redis cache", "addr", c.redisAddr)
			return cache.Instrument(rc, observability.Cache()), nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "addr", c.redisAddr, "error", err)
		rc.Close()
	}
	if c.mongoURI != "" {
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{URI: c.mongoURI})
		if err == nil {
			if err = mc.Ping(ctx); err == nil {
				c.Logger.Debug("using mongo cache")
				return cache.Instrument(mc, observability.Cache()), nil
			}
			mc.Close()
		}
		c.Logger.Warn("mongo unavailable, using file cache", "error", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(fc, observability.Cache()), nil
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/turkshead/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
