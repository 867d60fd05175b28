package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raysh454/a11ylens/internal/model"
)

const (
	DefaultChartWidth = 40
	barRune           = "█"
)

var (
	colorBar    = lipgloss.Color("#7B68EE")
	colorZero   = lipgloss.Color("#888888")
	colorTitle  = lipgloss.Color("#FFFFFF")
	colorError  = lipgloss.Color("#FF5F5F")
	colorOK     = lipgloss.Color("#5FD75F")
	colorMuted  = lipgloss.Color("#888888")
	colorAccent = lipgloss.Color("#00AFFF")
)

var (
	styleBar     = lipgloss.NewStyle().Foreground(colorBar)
	styleZero    = lipgloss.NewStyle().Foreground(colorZero)
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleLink    = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
)

// BarLength scales count against max so the largest bar is width long. Any
// non-zero count gets at least one cell.
func BarLength(count, max, width int) int {
	if count <= 0 || max <= 0 {
		return 0
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	n := count * width / max
	if n == 0 {
		n = 1
	}
	return n
}

// Chart renders a horizontal bar chart of the five counts, one row per
// category in display order. Styling is applied only when color is true.
func Chart(r model.AccessibilityReport, width int, color bool) string {
	entries := r.Entries()
	labelWidth := 0
	for _, e := range entries {
		if l := len(e.Category.Title()); l > labelWidth {
			labelWidth = l
		}
	}

	max := r.Max()
	var b strings.Builder
	for _, e := range entries {
		label := fmt.Sprintf("%-*s", labelWidth, e.Category.Title())
		bar := strings.Repeat(barRune, BarLength(e.Count, max, width))
		count := fmt.Sprintf("%d", e.Count)
		if color {
			if e.Count == 0 {
				count = styleZero.Render(count)
			} else {
				bar = styleBar.Render(bar)
			}
		}
		if bar == "" {
			fmt.Fprintf(&b, "%s │ %s\n", label, count)
			continue
		}
		fmt.Fprintf(&b, "%s │ %s %s\n", label, bar, count)
	}
	return b.String()
}

func render(style lipgloss.Style, s string, color bool) string {
	if !color {
		return s
	}
	return style.Render(s)
}

// hyperlink wraps text in an OSC 8 escape so terminals render it clickable.
func hyperlink(text, url string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
