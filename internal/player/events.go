package player

import (
	"errors"

	"karolbroda.com/lyricsync/internal/track"
)

var (
	// ErrPlaybackRejected means a play request was refused.
	ErrPlaybackRejected = errors.New("playback start rejected")
	// ErrMediaUnavailable means the audio source could not be loaded or
	// went away.
	ErrMediaUnavailable = errors.New("media unavailable")
)

type Event int

const (
	EventPositionChanged Event = iota
	EventMetadataLoaded
	EventPlay
	EventPause
	EventEnded
	EventError
)

func (e Event) String() string {
	switch e {
	case EventPositionChanged:
		return "position-changed"
	case EventMetadataLoaded:
		return "metadata-loaded"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

type EventData struct {
	Type     Event
	Track    *track.Info
	Position float64
	Duration float64
	Err      error
}

// Device is a playback source the viewer can follow and control.
type Device interface {
	Start() error
	Stop()
	Events() <-chan EventData
	// Poll refreshes cached device state; called on every UI tick.
	Poll() error
	Position() (float64, error)
	Paused() bool
	SetPosition(seconds float64) error
	RequestPlay(done func(error))
	Pause() error
	Track() *track.Info
}
