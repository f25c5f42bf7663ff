package colors

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Dim       string
	Error     string
}

func DefaultPalette() *Palette {
	return &Palette{
		Primary:   "#F5F5F5",
		Secondary: "#9AA5B1",
		Accent:    "#7DD3FC",
		Dim:       "#52606D",
		Error:     "#FF6B6B",
	}
}

// Styles returns the foreground styles for upcoming, active and passed
// lyric lines.
func (p *Palette) Styles() (before lipgloss.Style, active lipgloss.Style, passed lipgloss.Style) {
	before = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Secondary))
	active = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true)
	passed = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)).Faint(true)
	return before, active, passed
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}
	total := int64(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
