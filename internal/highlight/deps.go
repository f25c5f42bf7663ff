package highlight

import (
	"go.uber.org/zap"
)

type State int

const (
	StateBefore State = iota
	StateActive
	StatePassed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePassed:
		return "passed"
	default:
		return "before"
	}
}

// Device is the playback side the controller drives.
type Device interface {
	Paused() bool
	SetPosition(seconds float64) error
	// RequestPlay starts playback and reports the outcome through done,
	// possibly from another goroutine.
	RequestPlay(done func(error))
}

// Line describes one rendered lyric row.
type Line struct {
	Index int
	Time  float64
	Text  string
}

// Display is the rendering surface. Lines start in StateBefore after
// RenderLines.
type Display interface {
	RenderLines(lines []Line)
	SetLineState(index int, state State)
	ScrollIntoView(index int)
}

// Sink receives human-readable diagnostics. *zap.Logger satisfies it.
type Sink interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

type Deps struct {
	Device  Device
	Display Display
	Sink    Sink
}
