package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"karolbroda.com/lyricsync/internal/track"
)

const speakerBuffer = 100 * time.Millisecond

var errUnsupportedFormat = errors.New("unsupported audio format")

// FilePlayer plays a local mp3 or wav file through the default audio
// output. It starts paused, like a freshly loaded media element.
type FilePlayer struct {
	path      string
	eventChan chan EventData
	stopOnce  sync.Once

	// guarded by speaker.Lock once loaded
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	format   beep.Format

	info   *track.Info
	loaded atomic.Bool
	ended  atomic.Bool
}

func NewFilePlayer(path string) (*FilePlayer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty audio file path")
	}

	return &FilePlayer{
		path:      path,
		eventChan: make(chan EventData, 16),
		info:      track.FromPath(path),
	}, nil
}

// Start decodes the file and hands it to the speaker. A failure is both
// returned and emitted as EventError so the viewer can carry on without
// audio.
func (p *FilePlayer) Start() error {
	streamer, format, err := decodeFile(p.path)
	if err != nil {
		return p.fail(err)
	}

	err = speaker.Init(format.SampleRate, format.SampleRate.N(speakerBuffer))
	if err != nil {
		streamer.Close()
		return p.fail(fmt.Errorf("failed to open audio output: %w", err))
	}

	p.streamer = streamer
	p.format = format
	p.info.DurationSecs = format.SampleRate.D(streamer.Len()).Seconds()
	p.loaded.Store(true)

	speaker.Lock()
	p.arm()
	speaker.Unlock()

	p.emitEvent(EventData{Type: EventMetadataLoaded, Track: p.Track(), Duration: p.info.DurationSecs})
	return nil
}

func (p *FilePlayer) fail(err error) error {
	wrapped := fmt.Errorf("%w: %s: %w", ErrMediaUnavailable, p.path, err)
	p.emitEvent(EventData{Type: EventError, Err: wrapped})
	return wrapped
}

// arm queues a paused control streamer on the speaker. Callers hold
// speaker.Lock.
func (p *FilePlayer) arm() {
	p.ended.Store(false)
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(p.streamer, beep.Callback(p.onEnded)),
		Paused:   true,
	}
	speaker.Play(p.ctrl)
}

// onEnded runs on the speaker goroutine with the speaker lock held.
func (p *FilePlayer) onEnded() {
	p.ended.Store(true)
	p.emitEvent(EventData{Type: EventEnded})
}

func (p *FilePlayer) Stop() {
	p.stopOnce.Do(func() {
		if !p.loaded.Load() {
			return
		}
		speaker.Clear()
		speaker.Lock()
		p.streamer.Close()
		speaker.Unlock()
	})
}

func (p *FilePlayer) Events() <-chan EventData {
	return p.eventChan
}

func (p *FilePlayer) Poll() error {
	if !p.loaded.Load() {
		return ErrMediaUnavailable
	}
	return nil
}

func (p *FilePlayer) Position() (float64, error) {
	if !p.loaded.Load() {
		return 0, ErrMediaUnavailable
	}

	speaker.Lock()
	samples := p.streamer.Position()
	speaker.Unlock()

	return p.format.SampleRate.D(samples).Seconds(), nil
}

func (p *FilePlayer) Paused() bool {
	if !p.loaded.Load() || p.ended.Load() {
		return true
	}

	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

func (p *FilePlayer) SetPosition(seconds float64) error {
	if !p.loaded.Load() {
		return ErrMediaUnavailable
	}

	speaker.Lock()
	defer speaker.Unlock()

	n := p.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if last := p.streamer.Len(); n > last {
		n = last
	}

	err := p.streamer.Seek(n)
	if err != nil {
		return fmt.Errorf("failed to seek %s: %w", p.path, err)
	}

	return nil
}

func (p *FilePlayer) RequestPlay(done func(error)) {
	go func() {
		if !p.loaded.Load() {
			done(fmt.Errorf("%w: %w", ErrPlaybackRejected, ErrMediaUnavailable))
			return
		}

		speaker.Lock()
		if p.ended.Load() {
			if p.streamer.Position() >= p.streamer.Len() {
				_ = p.streamer.Seek(0)
			}
			p.arm()
		}
		p.ctrl.Paused = false
		speaker.Unlock()

		p.emitEvent(EventData{Type: EventPlay})
		done(nil)
	}()
}

func (p *FilePlayer) Pause() error {
	if !p.loaded.Load() {
		return ErrMediaUnavailable
	}

	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()

	p.emitEvent(EventData{Type: EventPause})
	return nil
}

func (p *FilePlayer) Track() *track.Info {
	infoCopy := *p.info
	return &infoCopy
}

func (p *FilePlayer) emitEvent(event EventData) {
	select {
	case p.eventChan <- event:
	default:
	}
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open audio file: %w", err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode audio file: %w", err)
	}

	return streamer, format, nil
}

func decoderFor(path string) (func(*os.File) (beep.StreamSeekCloser, beep.Format, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }, nil
	case ".wav":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, filepath.Ext(path))
	}
}
