package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kritika1265/chartkit/pkg/dataset"
	"github.com/kritika1265/chartkit/pkg/geom"
	"github.com/kritika1265/chartkit/pkg/pipeline"
)

// inspectCommand creates the inspect command for dataset summaries.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [chart.toml]",
		Short: "Summarize the dataset behind a chart definition",
		Long: `Summarize the dataset behind a chart definition.

The inspect command resolves the definition's data source the same way
render does (inline, local file, or remote URL) and prints descriptive
statistics plus a sparkline, without rendering anything. Useful for
checking what a remote dataset actually contains before plotting it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DefinitionPath = args[0]
			return c.runInspect(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "refetch remote data, ignoring cached copies")

	return cmd
}

// runInspect loads the dataset and prints labels, stats, and a sparkline.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	def, err := runner.LoadDefinition(opts)
	if err != nil {
		return fmt.Errorf("definition: %w", err)
	}

	points, slices, _, cached, err := runner.LoadDatasetWithCacheInfo(ctx, def, opts)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	var values []float64
	var labels []string
	if len(slices) > 0 {
		values = dataset.SliceValues(slices)
		for _, s := range slices {
			labels = append(labels, s.Label)
		}
	} else {
		values = dataset.PointValues(points)
		for _, p := range points {
			labels = append(labels, p.Label)
		}
	}

	title := def.Title
	if title == "" {
		title = opts.DefinitionPath
	}
	fmt.Println(StyleTitle.Render(title))
	printStats(len(values), 0, cached)
	printNewline()

	if len(values) == 0 {
		printWarning("Dataset is empty")
		return nil
	}

	summary, err := dataset.Summarize(values)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	fmt.Println(summaryTable(def.Kind, summary, labels))
	printNewline()
	fmt.Println("  " + StyleNumber.Render(sparkline(values)))
	printNewline()
	printNextStep("Render", "chartkit render "+opts.DefinitionPath)

	return nil
}

// summaryTable lays out the summary statistics as a bordered table.
func summaryTable(kind string, s dataset.Summary, labels []string) string {
	rows := [][]string{
		{"kind", kind},
		{"entries", strconv.Itoa(s.Count)},
		{"min", formatValue(s.Min)},
		{"max", formatValue(s.Max)},
		{"mean", formatValue(s.Mean)},
		{"median", formatValue(s.Median)},
		{"stddev", formatValue(s.StdDev)},
		{"total", formatValue(s.Total)},
		{"range", labelRange(labels)},
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stat", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// labelRange renders "first … last" for the dataset's label column.
func labelRange(labels []string) string {
	if len(labels) == 0 {
		return "—"
	}
	first, last := labels[0], labels[len(labels)-1]
	if first == last {
		return first
	}
	return first + " … " + last
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// sparkTicks are the eight block characters used for sparklines, lowest
// to highest.
var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// sparkline maps values onto block characters. A flat series renders at
// mid-height, matching how a degenerate range is normalized everywhere
// else.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		t := geom.Normalize(v, lo, hi)
		idx := int(t*float64(len(sparkTicks)-1) + 0.5)
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}
