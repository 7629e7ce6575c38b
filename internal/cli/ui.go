package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary accents
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // suggested commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// fg builds a foreground-only style.
func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// =============================================================================
// Styles
// =============================================================================

// Styles shared with the preview TUI and the inspect tables.
var (
	// StyleTitle for headings and title bars.
	StyleTitle = fg(colorCyan).Bold(true)

	// StyleDim for secondary text.
	StyleDim = fg(colorDim)

	// StyleValue for data values.
	StyleValue = fg(colorWhite)

	// StyleNumber for numeric output like sparklines.
	StyleNumber = fg(colorCyan)

	// StyleWarning for recoverable problems.
	StyleWarning = fg(colorYellow)
)

var (
	styleIconSuccess = fg(colorGreen)
	styleIconError   = fg(colorRed)
	styleIconWarning = fg(colorYellow)
	styleIconInfo    = fg(colorGray)
	styleIconSpinner = fg(colorCyan)

	styleCached   = fg(colorGreen)
	styleComputed = fg(colorGray)

	styleCommand = fg(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// statusLine prints an icon-prefixed message to stdout.
func statusLine(icon lipgloss.Style, glyph, msg string) {
	fmt.Println(icon.Render(glyph) + " " + msg)
}

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	statusLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	statusLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	statusLine(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints a neutral status message.
func printInfo(format string, args ...any) {
	statusLine(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Structured Output
// =============================================================================

// printFile prints an output file path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value in aligned columns.
func printKeyValue(key, value string) {
	fmt.Println(fg(colorGray).Width(12).Render(key) + " " + StyleValue.Render(value))
}

// printStats prints dataset and geometry counts with the cache status.
func printStats(entryCount, primitiveCount int, cached bool) {
	var parts []string
	if entryCount > 0 {
		parts = append(parts, fmt.Sprintf("%d entries", entryCount))
	}
	if primitiveCount > 0 {
		parts = append(parts, fmt.Sprintf("%d primitives", primitiveCount))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
