package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"karolbroda.com/lyricsync/internal/highlight"
)

func newTestSurface(n int) *Surface {
	s := NewSurface()
	lines := make([]highlight.Line, n)
	for i := range lines {
		lines[i] = highlight.Line{Index: i, Time: float64(i * 3), Text: "line"}
	}
	s.RenderLines(lines)
	return s
}

func TestSurfaceRenderLinesStartsBefore(t *testing.T) {
	s := newTestSurface(3)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, -1, s.ScrollTarget())
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, highlight.StateBefore, s.State(i))
	}
}

func TestSurfaceIgnoresOutOfRange(t *testing.T) {
	s := newTestSurface(2)

	s.SetLineState(5, highlight.StateActive)
	s.SetLineState(-1, highlight.StateActive)
	s.ScrollIntoView(7)

	assert.Equal(t, highlight.StateBefore, s.State(5))
	assert.Equal(t, -1, s.ScrollTarget())
	assert.Equal(t, 0, s.scrolls)
}

func TestSurfaceLayoutCentersAnchor(t *testing.T) {
	s := newTestSurface(5)

	rows := s.Layout(10)
	assert.Len(t, rows, 10)
	assert.Equal(t, 0, rows[5])
	assert.Equal(t, -1, rows[6])
	assert.Equal(t, 1, rows[7])
	assert.Equal(t, 2, rows[9])
	assert.Equal(t, -1, rows[3])

	s.ScrollIntoView(3)
	rows = s.Layout(10)
	assert.Equal(t, 3, rows[5])
	assert.Equal(t, 2, rows[3])
	assert.Equal(t, 1, rows[1])
	assert.Equal(t, 4, rows[7])
	assert.Equal(t, -1, rows[9])
}

func TestSurfaceLineAt(t *testing.T) {
	s := newTestSurface(4)

	idx, ok := s.LineAt(5, 10)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = s.LineAt(7, 10)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = s.LineAt(6, 10)
	assert.False(t, ok)

	_, ok = s.LineAt(-1, 10)
	assert.False(t, ok)

	_, ok = s.LineAt(10, 10)
	assert.False(t, ok)
}

func TestSurfaceLayoutZeroHeight(t *testing.T) {
	s := newTestSurface(2)
	assert.Nil(t, s.Layout(0))
}
