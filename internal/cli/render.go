package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kritika1265/chartkit/pkg/pipeline"
)

// renderCommand creates the render command for generating chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [chart.toml]",
		Short: "Render a chart definition to one or more output formats",
		Long: `Render a chart definition to one or more output formats.

The render command takes a definition file (TOML or JSON) describing the
chart kind, style, and data source, resolves the dataset (inline, local
file, or remote URL), and renders the chart to the requested formats:
svg, png, pdf, json, or term (Unicode braille output for terminals).

Remote datasets and rendered artifacts are cached locally for faster
subsequent runs. Use --refresh to refetch remote data and re-render, or
--no-cache to bypass the cache entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DefinitionPath = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, term (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "surface width in pixels (overrides definition)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "surface height in pixels (overrides definition)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "pixel density multiplier for PNG output")
	cmd.Flags().IntVar(&opts.TermCols, "cols", 0, "terminal width in cells for term output")
	cmd.Flags().IntVar(&opts.TermRows, "rows", 0, "terminal height in cells for term output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "refetch remote data and re-render, ignoring cached copies")

	return cmd
}

// runRender executes the pipeline and writes artifacts to files. The term
// format is the exception: it goes to stdout, since its whole point is
// being looked at in a terminal.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	ctx = withLogger(ctx, c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.DefinitionPath))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var fileFormats []string
	for _, format := range opts.Formats {
		if format == pipeline.FormatTerm {
			fmt.Println(string(result.Artifacts[format]))
			continue
		}
		fileFormats = append(fileFormats, format)
	}

	written, err := writeArtifacts(ctx, result.Artifacts, fileFormats, opts.DefinitionPath, output)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		return nil
	}

	printSuccess("Rendered %s", opts.DefinitionPath)
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.EntryCount, result.Stats.PrimitiveCount, result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Preview", "chartkit preview "+opts.DefinitionPath)

	return nil
}

// writeArtifacts writes one file per format and returns the paths written.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	logger := loggerFromContext(ctx)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := artifactPath(output, input, format, len(formats) == 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Wrote %s (%d bytes)", path, len(artifacts[format]))
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath determines the output path for one format. A single format
// with an explicit --output writes exactly there; otherwise paths derive
// from the base: chart.toml rendered to svg and png becomes chart.svg and
// chart.png.
func artifactPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return outputBase(output, input) + "." + format
}

// outputBase derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries
// a format extension (.svg, .png, ...), that extension is stripped.
func outputBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
