// Package cli implements the cardpress command-line interface.
//
// # Commands
//
//   - generate: lay out card definitions and write one SVG per card
//   - print: pack rendered cards onto A4 sheets as PDF or PNG
//   - inspect: show the computed regions of a card or the grid of a sheet
//   - serve: run the layout HTTP service
//   - cache: manage the raster cache
//
// All commands read $XDG_CONFIG_HOME/cardpress/config.toml (or --config);
// flags override the file. --verbose (-v) enables debug logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardpress/pkg/buildinfo"
	"github.com/matzehuels/cardpress/pkg/cache"
	"github.com/matzehuels/cardpress/pkg/config"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/observability"
	"github.com/matzehuels/cardpress/pkg/pipeline"
	"github.com/matzehuels/cardpress/pkg/render/card/art"
	"github.com/matzehuels/cardpress/pkg/render/raster"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cardpress"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config

	// hooks is set for debug runs and receives pipeline events.
	hooks *observability.LogHooks

	// openBackend builds the rasterizer for a backend name.
	openBackend func(raster.Backend, time.Duration) (raster.Rasterizer, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), openBackend: raster.New}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "cardpress lays out trading cards and packs them onto print sheets",
		Long:         `cardpress turns card definitions into print-ready SVG cards and tiles rendered cards onto A4 sheets with optional crop marks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks()
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file (default $XDG_CONFIG_HOME/cardpress/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	for _, k := range cfg.Undecoded {
		c.Logger.Warn("unknown config key", "key", k)
	}
	c.cfg = cfg
	return nil
}

// installHooks routes pipeline and cache events to the log when debug
// logging is on.
func (c *CLI) installHooks() {
	if c.hooks != nil || c.Logger.GetLevel() > log.DebugLevel {
		return
	}
	c.hooks = observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(c.hooks)
	observability.SetCacheHooks(c.hooks)
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (as in tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts selects the collaborators of a CLI runner.
type runnerOpts struct {
	raster  bool   // Build a rasterizer (print only)
	backend string        // Overrides raster.backend
	timeout time.Duration // Overrides raster.timeout
	noCache bool
	artRoot string
}

// newRunner creates a pipeline runner for CLI use. The returned close
// function releases the raster cache.
func (c *CLI) newRunner(ctx context.Context, o runnerOpts) (*pipeline.Runner, func() error, error) {
	cfg := c.config()
	themes, unknown, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}
	for _, k := range unknown {
		c.Logger.Warn("unknown theme key ignored", "key", k)
	}

	closer := func() error { return nil }
	var rz raster.Rasterizer
	if o.raster {
		backend := cfg.Raster.Backend
		if o.backend != "" {
			backend = o.backend
		}
		timeout := cfg.Raster.Timeout.Duration
		if o.timeout > 0 {
			timeout = o.timeout
		}
		inner, err := c.openBackend(raster.Backend(backend), timeout)
		if err != nil {
			return nil, nil, err
		}
		store, err := c.newCache(ctx, o.noCache)
		if err != nil {
			return nil, nil, err
		}
		closer = store.Close
		var keyer cache.Keyer
		if cfg.Cache.KeyScope != "" {
			keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyScope+":")
		}
		rz = raster.NewCached(inner, store, keyer, raster.Backend(backend), cfg.Cache.TTL.Duration)
	}

	runner := pipeline.NewRunner(rz, themes, c.Logger)
	runner.Art = art.Memo(art.Files{Root: o.artRoot})
	return runner, closer, nil
}

// newCache opens the configured raster cache. A file cache whose directory
// cannot be determined silently disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.config().Cache
	if noCache || cc.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if cc.Backend == config.CacheRedis {
		return cache.NewRedisCache(ctx, cc.RedisURL, cc.Prefix)
	}
	dir := cc.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open cache %s", dir)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cardpress/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
