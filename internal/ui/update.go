package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/player"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case PlayerEventMsg:
		return m.handlePlayerEvent(msg.Event)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.Stop()
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "enter":
		m.clickLine(m.cursor)
		return m, nil

	case " ", "p":
		m.togglePlayback()
		return m, nil

	case "+", "=":
		m.shiftSyncOffset(0.1)
		return m, nil

	case "-":
		m.shiftSyncOffset(-0.1)
		return m, nil

	case "]":
		m.shiftSyncOffset(0.5)
		return m, nil

	case "[":
		m.shiftSyncOffset(-0.5)
		return m, nil

	case "0":
		m.shiftSyncOffset(-m.syncOffset)
		return m, nil

	case "tab", "i":
		m.hideHeader = !m.hideHeader
		return m, nil
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		headerHeight := len(m.headerLines(m.viewWidth()))
		idx, ok := m.surface.LineAt(msg.Y-headerHeight, m.viewHeight()-headerHeight)
		if ok {
			m.clickLine(idx)
		}
	}
	return m, nil
}

// clickLine is the single dispatch point for line activation, from the mouse
// or the keyboard cursor.
func (m *Model) clickLine(index int) {
	if index < 0 || index >= m.surface.Len() {
		return
	}
	m.cursor = index

	err := m.controller.LineClicked(index)
	if err != nil {
		m.setStatus(err.Error())
		return
	}

	entryTime := m.surface.lines[index].time
	m.ended = false
	m.setStatus(fmt.Sprintf("jumped to %s", colors.FormatTime(entryTime)))
	m.reportPosition(entryTime, true)
}

func (m *Model) moveCursor(delta int) {
	if m.surface.Len() == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= m.surface.Len() {
		m.cursor = m.surface.Len() - 1
	}
}

func (m *Model) togglePlayback() {
	if !m.device.Paused() {
		err := m.device.Pause()
		if err != nil {
			m.log.Warn("pause failed", zap.Error(err))
			m.setStatus("pause failed")
		}
		return
	}

	logger := m.log
	m.device.RequestPlay(func(err error) {
		if err != nil {
			logger.Warn("playback start rejected", zap.Error(err))
		}
	})
}

func (m *Model) shiftSyncOffset(delta float64) {
	m.syncOffset += delta
	m.setStatus(fmt.Sprintf("sync offset %+.1fs", m.syncOffset))
	m.reportPosition(m.position, true)
}

func (m Model) handlePlayerEvent(event player.EventData) (tea.Model, tea.Cmd) {
	next := m.listenForPlayerEvents()

	switch event.Type {
	case player.EventPositionChanged:
		m.ended = false
		m.reportPosition(event.Position, true)

	case player.EventMetadataLoaded:
		if event.Track != nil {
			m.track = event.Track
		}
		m.duration = event.Duration
		m.err = nil
		m.controller.MetadataLoaded(event.Duration)

	case player.EventPlay:
		m.playing = true
		m.ended = false
		m.controller.PlaybackStarted()

	case player.EventPause:
		m.playing = false
		m.controller.PlaybackPaused()

	case player.EventEnded:
		m.playing = false
		m.ended = true
		m.controller.PlaybackEnded()

	case player.EventError:
		m.err = event.Err
		m.controller.PlaybackErrored(event.Err)
	}

	return m, next
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.tickCount++

	err := m.device.Poll()
	if err != nil {
		return m, tickCmd()
	}

	if m.ended {
		return m, tickCmd()
	}

	pos, err := m.device.Position()
	if err != nil {
		return m, tickCmd()
	}

	m.reportPosition(pos, false)

	return m, tickCmd()
}
