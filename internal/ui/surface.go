package ui

import (
	"karolbroda.com/lyricsync/internal/highlight"
)

// lineSpacing is the number of rows between consecutive lyric lines.
const lineSpacing = 2

type lineHandle struct {
	text  string
	time  float64
	state highlight.State
}

// Surface is the lyric list the controller draws on. Handles are built once
// by RenderLines and addressed by index afterwards.
type Surface struct {
	lines        []lineHandle
	scrollTarget int
	scrolls      int
}

func NewSurface() *Surface {
	return &Surface{scrollTarget: -1}
}

func (s *Surface) RenderLines(lines []highlight.Line) {
	s.lines = make([]lineHandle, len(lines))
	for i, line := range lines {
		s.lines[i] = lineHandle{text: line.Text, time: line.Time, state: highlight.StateBefore}
	}
	s.scrollTarget = -1
}

func (s *Surface) SetLineState(index int, state highlight.State) {
	if index < 0 || index >= len(s.lines) {
		return
	}
	s.lines[index].state = state
}

// ScrollIntoView centers the given line on the next render.
func (s *Surface) ScrollIntoView(index int) {
	if index < 0 || index >= len(s.lines) {
		return
	}
	s.scrollTarget = index
	s.scrolls++
}

func (s *Surface) Len() int {
	return len(s.lines)
}

func (s *Surface) State(index int) highlight.State {
	if index < 0 || index >= len(s.lines) {
		return highlight.StateBefore
	}
	return s.lines[index].state
}

func (s *Surface) ScrollTarget() int {
	return s.scrollTarget
}

// Layout maps each of height rows to the line drawn on it, or -1 for an
// empty row. The scroll target (or the first line) sits on the middle row.
func (s *Surface) Layout(height int) []int {
	if height <= 0 {
		return nil
	}

	anchor := s.scrollTarget
	if anchor < 0 {
		anchor = 0
	}
	center := height / 2

	rows := make([]int, height)
	for row := range rows {
		rows[row] = -1

		offset := row - center
		if offset%lineSpacing != 0 {
			continue
		}
		idx := anchor + offset/lineSpacing
		if idx >= 0 && idx < len(s.lines) {
			rows[row] = idx
		}
	}

	return rows
}

// LineAt returns the line drawn on row of a lyrics area height rows tall.
func (s *Surface) LineAt(row int, height int) (int, bool) {
	if row < 0 || row >= height {
		return -1, false
	}
	idx := s.Layout(height)[row]
	return idx, idx >= 0
}
