// Package cli implements the steering command-line interface.
//
// # Commands
//
//   - influence: rank the objects that can steer a target and recommend actions
//   - power, integrity, distortion: evaluate the auxiliary formulas
//   - serve: run the HTTP API
//   - cache: inspect or clear the local result cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives in the [CLI] struct and is shared with the runner.
//
// # Configuration
//
// Defaults come from the TOML file given by --config, or from
// $XDG_CONFIG_HOME/steering/config.toml when present. Flags override the file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/metasystem/steering/pkg/buildinfo"
	"github.com/metasystem/steering/pkg/cache"
	"github.com/metasystem/steering/pkg/config"
	"github.com/metasystem/steering/pkg/steering"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "steering"

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

	// Config is loaded in the root command's PersistentPreRunE.
	Config config.Config

	configPath string
	verbose    bool
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command results (tables, JSON, DOT) away from stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Steering finds the objects with the most leverage over a target",
		Long:          `Steering analyses graphs of cybernetic objects and their relations. It searches backwards from a target for chains of influence, scores every influencer by control leverage and recommends where to act.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/steering/config.toml)")

	root.AddCommand(c.influenceCommand())
	root.AddCommand(c.powerCommand())
	root.AddCommand(c.integrityCommand())
	root.AddCommand(c.distortionCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies the log level.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	c.Logger.Debug("configuration loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a steering runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*steering.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := steering.NewRunner(cc, nil, c.Logger)
	r.Limits = c.Config.Search.Limits()
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache opens the configured backend. The file backend falls back to the
// XDG cache directory and degrades to no caching when that is unavailable.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.Config.Cache.Options()
	if opts.Backend == "" || opts.Backend == cache.BackendFile {
		if opts.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				c.Logger.Warn("cache disabled", "error", err)
				return cache.NewNullCache(), nil
			}
			opts.Dir = dir
		}
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/steering/).
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
