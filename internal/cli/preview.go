package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/chartfile"
	"github.com/kritika1265/chartkit/pkg/pipeline"
)

// previewCommand creates the preview command for live terminal charts.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [chart.toml]",
		Short: "Preview a chart interactively in the terminal",
		Long: `Preview a chart interactively in the terminal.

The preview command renders the chart on a Unicode braille canvas that
redraws when the terminal is resized. Press r to refetch the data and
redraw, k to cycle the chart kind (line → bar → pie) without touching
the definition file, and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := newCache(noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			// The pipeline's stage logs would scribble over the alt
			// screen, so the preview runner logs to nowhere.
			runner := pipeline.NewRunner(cache, nil, log.New(io.Discard))
			defer runner.Close()

			p := tea.NewProgram(
				newPreviewModel(runner, args[0]),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type previewKeyMap struct {
	Kind   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k previewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Kind, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k previewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Kind, k.Reload, k.Quit}}
}

var previewKeys = previewKeyMap{
	Kind:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "cycle kind")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload data")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// previewModel - Live chart preview
// =============================================================================

// previewRenderedMsg carries a finished render back into the update loop.
type previewRenderedMsg struct {
	canvas  string
	title   string
	kind    string
	entries int
	cached  bool
}

// previewErrorMsg carries a render failure. The previous canvas stays on
// screen so a bad reload doesn't blank the chart.
type previewErrorMsg struct{ err error }

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	runner *pipeline.Runner
	path   string
	keys   previewKeyMap
	help   help.Model

	width  int
	height int

	kindOverride chart.Kind // empty: use the definition's kind

	canvas  string
	title   string
	kind    string
	entries int
	cached  bool
	loading bool
	err     error
}

// newPreviewModel creates the preview model for the given definition path.
func newPreviewModel(runner *pipeline.Runner, path string) previewModel {
	return previewModel{
		runner:  runner,
		path:    path,
		keys:    previewKeys,
		help:    help.New(),
		loading: true,
	}
}

// Init waits for the initial WindowSizeMsg; the first render needs the
// terminal dimensions.
func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.loading = true
		return m, m.renderChart(false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, m.renderChart(true)
		case key.Matches(msg, m.keys.Kind):
			m.kindOverride = nextKind(m.kind)
			m.loading = true
			return m, m.renderChart(false)
		}

	case previewRenderedMsg:
		m.canvas = msg.canvas
		m.title = msg.title
		m.kind = msg.kind
		m.entries = msg.entries
		m.cached = msg.cached
		m.loading = false
		m.err = nil
		return m, nil

	case previewErrorMsg:
		m.err = msg.err
		m.loading = false
		return m, nil
	}

	return m, nil
}

// renderChart renders the chart for the current terminal size in the
// background and reports back with a message.
func (m previewModel) renderChart(refresh bool) tea.Cmd {
	runner := m.runner
	path := m.path
	kind := m.kindOverride
	cols, rows := m.canvasSize()

	return func() tea.Msg {
		opts := pipeline.Options{
			DefinitionPath: path,
			Formats:        []string{pipeline.FormatTerm},
			TermCols:       cols,
			TermRows:       rows,
			Refresh:        refresh,
			Logger:         log.New(io.Discard),
		}

		if kind != "" {
			def, err := chartfile.Load(path)
			if err != nil {
				return previewErrorMsg{err}
			}
			def.Kind = string(kind)
			if err := def.Validate(); err != nil {
				return previewErrorMsg{err}
			}
			opts.Definition = def
		}

		result, err := runner.Execute(context.Background(), opts)
		if err != nil {
			return previewErrorMsg{err}
		}

		return previewRenderedMsg{
			canvas:  strings.TrimRight(string(result.Artifacts[pipeline.FormatTerm]), "\n"),
			title:   result.Definition.Title,
			kind:    result.Definition.Kind,
			entries: result.Stats.EntryCount,
			cached:  result.CacheInfo.DatasetHit,
		}
	}
}

// canvasSize converts terminal dimensions into the chart's cell budget,
// reserving rows for the title and status bars.
func (m previewModel) canvasSize() (cols, rows int) {
	cols = max(m.width-2, 20)
	rows = max(m.height-4, 5)
	return cols, rows
}

func (m previewModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	titleText := m.title
	if titleText == "" {
		titleText = m.path
	}
	titleBar := StyleTitle.Width(m.width).Render(" " + titleText)

	var body string
	switch {
	case m.err != nil:
		body = "\n  " + StyleWarning.Render(m.err.Error())
	case m.loading && m.canvas == "":
		body = "\n  " + StyleDim.Render("rendering...")
	default:
		body = m.canvas
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleBar,
		body,
		m.statusBar(),
		m.help.View(m.keys),
	)
}

// statusBar renders the kind, entry count, and cache status.
func (m previewModel) statusBar() string {
	parts := []string{m.kind}
	if m.entries > 0 {
		parts = append(parts, fmt.Sprintf("%d entries", m.entries))
	}
	if m.cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	if m.loading {
		parts = append(parts, "rendering...")
	}
	return StyleDim.Render(" " + strings.Join(parts, " · "))
}

// nextKind returns the chart kind after current, wrapping around.
func nextKind(current string) chart.Kind {
	kinds := chart.Kinds()
	for i, k := range kinds {
		if string(k) == current {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}
