// Package style holds the colours and icons used by the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)

// Text styles for result tables.
var (
	Header = lipgloss.NewStyle().Bold(true).Foreground(Iris).Padding(0, 1)
	Cell   = lipgloss.NewStyle().Padding(0, 1)
	Faster = Cell.Foreground(Green)
	Slower = Cell.Foreground(Red)
	Border = lipgloss.NewStyle().Foreground(Slate)
)

// Ratio picks the style for a time ratio of faststring over the baseline.
func Ratio(r float64) lipgloss.Style {
	if r > 0 && r <= 1 {
		return Faster
	}
	return Slower
}
