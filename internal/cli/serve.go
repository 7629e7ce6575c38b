package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kritika1265/chartkit/internal/server"
	"github.com/kritika1265/chartkit/pkg/cache"
	"github.com/kritika1265/chartkit/pkg/pipeline"
	"github.com/kritika1265/chartkit/pkg/store"
)

// serveOpts holds the serve command's flags.
type serveOpts struct {
	addr        string
	mongoURI    string
	redisAddr   string
	cachePrefix string
	noCache     bool
}

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart rendering HTTP service",
		Long: `Run the chart rendering HTTP service.

The service renders submitted definitions (POST /api/render) and manages
saved charts (POST/GET/DELETE /api/charts) that can be re-rendered by ID.

By default charts are kept in memory and render results are cached on
the local filesystem. Pass --mongo-uri to persist charts in MongoDB and
--redis-addr to share the render cache between instances; instances
sharing one Redis can set --cache-prefix to keep their entries apart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address (host:port)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string for chart persistence (default: in-memory)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for a shared render cache (default: local file cache)")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "key prefix isolating this instance's entries in a shared cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runServe assembles the store, cache, and runner, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	// Remote backends ping with retries, so startup time is worth logging.
	prog := newProgress(c.Logger)

	ch, err := serveCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(ch, serveKeyer(opts), c.Logger)
	defer runner.Close()

	st, err := serveStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())
	prog.done("Store and cache ready")

	printKeyValue("Address", opts.addr)
	printKeyValue("Store", storeLabel(opts))
	printKeyValue("Cache", cacheLabel(opts))
	printNewline()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Store:  st,
		Runner: runner,
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx)
}

// serveCache picks the render cache backend: disabled, shared Redis, or
// the local file cache used by the rest of the CLI.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	}
	return newCache(false)
}

// serveKeyer scopes cache keys when the instance was given a prefix,
// so deployments sharing one Redis do not mix entries. Nil selects the
// runner's default keyer.
func serveKeyer(opts serveOpts) cache.Keyer {
	if opts.cachePrefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, opts.cachePrefix)
}

// serveStore picks the chart store backend: MongoDB when configured,
// otherwise in-memory.
func serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
	}
	return store.NewMemStore(), nil
}

// storeLabel names the store backend for startup output.
func storeLabel(opts serveOpts) string {
	if opts.mongoURI != "" {
		return "mongodb"
	}
	return "in-memory"
}

// cacheLabel names the cache backend for startup output.
func cacheLabel(opts serveOpts) string {
	switch {
	case opts.noCache:
		return "disabled"
	case opts.redisAddr != "":
		return "redis (" + opts.redisAddr + ")"
	default:
		return "local file cache"
	}
}
