package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/highlight"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m Model) viewWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) viewHeight() int {
	if m.height == 0 {
		return defaultHeight
	}
	return m.height
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.viewWidth()
	height := m.viewHeight()

	lines := m.headerLines(width)
	lines = append(lines, m.renderLyrics(height-len(lines), width)...)

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// headerLines is also used for click hit-testing, so its height must only
// depend on model state.
func (m Model) headerLines(width int) []string {
	if m.hideHeader {
		return nil
	}

	palette := m.palette
	lines := []string{""}

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Primary)).Bold(true)
	artistStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Secondary))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim))

	maxWidth := width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}

	title := "no track"
	artist := ""
	if m.track != nil {
		title = m.track.Title
		artist = m.track.Artist
	}

	stateIcon := "⏸"
	if m.playing {
		stateIcon = "▶"
	}
	lines = append(lines, "  "+artistStyle.Render(stateIcon)+" "+titleStyle.Render(truncate(title, maxWidth)))
	lines = append(lines, "    "+artistStyle.Render(truncate(artist, maxWidth)))
	lines = append(lines, m.renderProgress(width))

	switch {
	case m.statusText() != "":
		lines = append(lines, "  "+dimStyle.Italic(true).Render(m.statusText()))
	case m.err != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Error))
		lines = append(lines, "  "+errStyle.Render(truncate(m.err.Error(), maxWidth)))
	default:
		lines = append(lines, "")
	}

	lines = append(lines, "")
	return lines
}

func (m Model) renderProgress(width int) string {
	palette := m.palette

	barWidth := width - 20
	if barWidth < 10 {
		barWidth = 10
	}

	progress := 0.0
	if m.duration > 0 {
		progress = m.position / m.duration
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filledWidth := int(float64(barWidth) * progress)

	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Accent))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim)).Faint(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim))

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filledWidth:
			bar.WriteString(filledStyle.Render("━"))
		case i == filledWidth:
			bar.WriteString(filledStyle.Render("●"))
		default:
			bar.WriteString(emptyStyle.Render("─"))
		}
	}

	return fmt.Sprintf("  %s  %s  %s",
		timeStyle.Render(colors.FormatTime(m.position)),
		bar.String(),
		timeStyle.Render(colors.FormatTime(m.duration)))
}

func (m Model) renderLyrics(height int, width int) []string {
	if height <= 0 {
		return nil
	}

	output := make([]string, height)
	if m.surface.Len() == 0 {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Dim))
		output[height/2] = centerText(style.Render("♪"), 1, width)
		return output
	}

	beforeStyle, activeStyle, passedStyle := m.palette.Styles()
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Dim))

	for row, idx := range m.surface.Layout(height) {
		if idx < 0 {
			continue
		}

		text := m.surface.lines[idx].text
		if text == "" {
			text = "···"
		}
		text = truncate(text, width-4)

		var rendered string
		switch m.surface.State(idx) {
		case highlight.StateActive:
			rendered = activeStyle.Render(text)
		case highlight.StatePassed:
			rendered = passedStyle.Render(text)
		default:
			rendered = beforeStyle.Render(text)
		}

		visual := lipgloss.Width(text)
		if idx == m.cursor {
			rendered = cursorStyle.Render("› ") + rendered
			visual += 2
		}

		output[row] = centerText(rendered, visual, width)
	}

	return output
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	return string(runes[:maxWidth-1]) + "…"
}

func centerText(text string, visualWidth int, screenWidth int) string {
	padding := (screenWidth - visualWidth) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat(" ", padding) + text
}
