package highlight

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"karolbroda.com/lyricsync/internal/lyrics"
)

var (
	ErrLineOutOfRange = errors.New("lyric line out of range")
	ErrSeekPastEnd    = errors.New("timestamp exceeds media duration")
)

const noAudioAdvisory = "no audio source is available; the lyrics view stays usable, add an audio file or start a player to hear playback"

// Controller keeps the per-line highlight state in step with the playback
// position and turns line clicks into seeks. It is not safe for concurrent
// use; the host delivers events one at a time.
type Controller struct {
	set     *lyrics.Set
	device  Device
	display Display
	log     Sink

	states   []State
	active   int
	duration float64
	advised  bool
}

func New(set *lyrics.Set, deps Deps) (*Controller, error) {
	if set == nil {
		return nil, errors.New("nil lyric set")
	}
	if deps.Device == nil {
		return nil, errors.New("nil playback device")
	}
	if deps.Display == nil {
		return nil, errors.New("nil display surface")
	}

	sink := deps.Sink
	if sink == nil {
		sink = zap.NewNop()
	}

	return &Controller{
		set:     set,
		device:  deps.Device,
		display: deps.Display,
		log:     sink,
		states:  make([]State, set.Len()),
		active:  lyrics.None,
	}, nil
}

// Init renders every line in its initial state.
func (c *Controller) Init() {
	lines := make([]Line, c.set.Len())
	for i := range lines {
		entry, _ := c.set.At(i)
		lines[i] = Line{Index: i, Time: entry.Time, Text: entry.Text}
		c.states[i] = StateBefore
	}
	c.active = lyrics.None

	c.display.RenderLines(lines)
	c.log.Info("lyrics player initialized", zap.Int("lines", len(lines)))
}

func (c *Controller) PositionChanged(currentTime float64) {
	if len(c.states) == 0 {
		return
	}

	index, _ := c.set.ResolveActive(currentTime)

	for i := range c.states {
		next := StateBefore
		if i == index {
			next = StateActive
		} else if i < index {
			next = StatePassed
		}
		c.setState(i, next)
	}

	if index != lyrics.None && index != c.active {
		c.display.ScrollIntoView(index)
	}
	c.active = index
}

// LineClicked seeks to the clicked line and starts playback when paused.
func (c *Controller) LineClicked(index int) error {
	entry, ok := c.set.At(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrLineOutOfRange, index)
	}

	if c.duration > 0 && entry.Time > c.duration {
		c.log.Warn("seek refused",
			zap.Int("line", index),
			zap.Float64("time", entry.Time),
			zap.Float64("duration", c.duration))
		return fmt.Errorf("%w: %.2fs > %.2fs", ErrSeekPastEnd, entry.Time, c.duration)
	}

	err := c.device.SetPosition(entry.Time)
	if err != nil {
		c.log.Warn("seek failed", zap.Int("line", index), zap.Error(err))
		return fmt.Errorf("seek to %.2fs: %w", entry.Time, err)
	}

	if c.device.Paused() {
		c.device.RequestPlay(c.playCompleted)
	}

	return nil
}

// playCompleted may run on the device's goroutine, so it only logs.
func (c *Controller) playCompleted(err error) {
	if err != nil {
		c.log.Warn("playback start rejected", zap.Error(err))
	}
}

func (c *Controller) PlaybackEnded() {
	for i := range c.states {
		c.setState(i, StateBefore)
	}
	c.active = lyrics.None
	c.log.Info("audio ended")
}

func (c *Controller) PlaybackStarted() {
	c.log.Info("audio playing")
}

func (c *Controller) PlaybackPaused() {
	c.log.Info("audio paused")
}

// MetadataLoaded records the media duration, used to refuse seeks past the
// end.
func (c *Controller) MetadataLoaded(duration float64) {
	if duration > 0 && !math.IsInf(duration, 0) {
		c.duration = duration
	} else {
		c.duration = 0
	}
	c.log.Info("audio loaded", zap.Float64("duration", duration))
}

func (c *Controller) PlaybackErrored(err error) {
	c.log.Error("audio error", zap.Error(err))
	if !c.advised {
		c.advised = true
		c.log.Info(noAudioAdvisory)
	}
}

// States returns a copy of the current per-line state.
func (c *Controller) States() []State {
	out := make([]State, len(c.states))
	copy(out, c.states)
	return out
}

// Active reports the active line, if any.
func (c *Controller) Active() (int, bool) {
	return c.active, c.active != lyrics.None
}

func (c *Controller) setState(index int, state State) {
	if c.states[index] == state {
		return
	}
	c.states[index] = state
	c.display.SetLineState(index, state)
}
