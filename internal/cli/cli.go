// Package cli implements the chartkit command-line interface.
//
// Subcommands cover the whole chart workflow: render turns a
// definition file into SVG, PNG, PDF, JSON, or terminal artifacts;
// preview draws the chart live in the terminal; inspect summarizes
// the dataset behind a definition without rendering it; serve exposes
// the pipeline over HTTP; cache manages the on-disk render cache.
//
// Commands share one [CLI] value holding the logger. --verbose raises
// it to debug level, and render attaches it to the command context so
// helpers deep inside a run can log without threading a parameter
// through every call.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kritika1265/chartkit/pkg/buildinfo"
	"github.com/kritika1265/chartkit/pkg/cache"
	"github.com/kritika1265/chartkit/pkg/pipeline"
)

// appName names the binary, the root command, and the per-user
// directories derived from it.
const appName = "chartkit"

// Log levels re-exported so main.go can pick one without importing the
// logging library.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand assembles the root cobra command and its subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Chartkit renders charts from declarative definitions",
		Long:         `Chartkit is a CLI tool for turning chart definitions (TOML or JSON) and their datasets into SVG, PNG, PDF, JSON, or terminal output, with an HTTP service mode for rendering over the network.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Example: `  chartkit render revenue.toml -o revenue.svg
  chartkit preview revenue.toml
  chartkit inspect revenue.toml
  chartkit serve --addr :8080`,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner builds a pipeline runner backed by the on-disk cache, or
// by no cache at all when the user asked for --no-cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache opens the file cache. A missing home directory downgrades
// to uncached operation rather than failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves the per-user cache location, honoring
// $XDG_CACHE_HOME and defaulting to ~/.cache/chartkit.
func cacheDir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated format list, tolerating spaces
// after commas. An empty flag value selects SVG.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
