package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/config"
	"karolbroda.com/lyricsync/internal/highlight"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/player"
	"karolbroda.com/lyricsync/internal/track"
)

type TickMsg time.Time

type PlayerEventMsg struct {
	Event player.EventData
}

type Model struct {
	device     player.Device
	controller *highlight.Controller
	surface    *Surface
	log        *zap.Logger
	palette    *colors.Palette

	syncOffset float64
	hideHeader bool

	track       *track.Info
	position    float64
	duration    float64
	playing     bool
	ended       bool
	cursor      int
	status      string
	statusUntil time.Time
	err         error
	quitting    bool
	width       int
	height      int
	tickCount   int
}

type ModelConfig struct {
	Device     player.Device
	Lyrics     *lyrics.Set
	Logger     *zap.Logger
	SyncOffset float64
	HideHeader bool
}

func NewModel(cfg ModelConfig) (Model, error) {
	if cfg.Device == nil {
		return Model{}, errors.New("nil playback device")
	}
	if cfg.Lyrics == nil {
		return Model{}, errors.New("nil lyric set")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	surface := NewSurface()
	controller, err := highlight.New(cfg.Lyrics, highlight.Deps{
		Device:  cfg.Device,
		Display: surface,
		Sink:    logger,
	})
	if err != nil {
		return Model{}, err
	}
	controller.Init()

	return Model{
		device:     cfg.Device,
		controller: controller,
		surface:    surface,
		log:        logger,
		palette:    colors.DefaultPalette(),
		syncOffset: cfg.SyncOffset,
		hideHeader: cfg.HideHeader,
		track:      cfg.Device.Track(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.listenForPlayerEvents())
}

func tickCmd() tea.Cmd {
	return tea.Tick(config.PollInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) listenForPlayerEvents() tea.Cmd {
	events := m.device.Events()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return PlayerEventMsg{Event: event}
	}
}

// reportPosition forwards a position to the controller, shifted by the sync
// offset. Unchanged positions are skipped unless force is set, so a paused
// track that has not moved yet stays unhighlighted.
func (m *Model) reportPosition(pos float64, force bool) {
	if !force && pos == m.position {
		return
	}
	m.position = pos
	m.controller.PositionChanged(pos + m.syncOffset)
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusUntil = time.Now().Add(config.StatusDuration)
}

func (m Model) statusText() string {
	if m.status == "" || time.Now().After(m.statusUntil) {
		return ""
	}
	return m.status
}

func (m Model) Width() int { return m.width }
func (m Model) Height() int { return m.height }
func (m Model) Track() *track.Info { return m.track }
func (m Model) Position() float64 { return m.position }
func (m Model) Duration() float64 { return m.duration }
func (m Model) Playing() bool { return m.playing }
func (m Model) Cursor() int { return m.cursor }
func (m Model) SyncOffset() float64 { return m.syncOffset }
func (m Model) HideHeader() bool { return m.hideHeader }
func (m Model) Err() error { return m.err }
func (m Model) IsQuitting() bool { return m.quitting }
func (m Model) Surface() *Surface { return m.surface }
func (m Model) Controller() *highlight.Controller { return m.controller }

func (m *Model) Stop() {
	m.device.Stop()
}
