package player

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"karolbroda.com/lyricsync/internal/track"
)

const (
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"

	// seekTolerance is how far the reported position may drift from the
	// extrapolated one before it counts as a jump.
	seekTolerance = 3.0
)

type State struct {
	Track              *track.Info
	PositionSecs       float64
	Playing            bool
	Available          bool
	status             string
	lastPositionUpdate time.Time
	lastPositionSecs   float64
}

func (s *State) DetectSeek(newPosition float64) bool {
	if s.lastPositionUpdate.IsZero() {
		return false
	}

	expected := s.lastPositionSecs
	if s.Playing {
		expected += time.Since(s.lastPositionUpdate).Seconds()
	}

	return math.Abs(newPosition-expected) > seekTolerance
}

func (s *State) UpdatePosition(pos float64) {
	s.PositionSecs = pos
	s.lastPositionSecs = pos
	s.lastPositionUpdate = time.Now()
}

// Service follows an MPRIS player on the session bus.
type Service struct {
	bus        *dbus.Conn
	service    string
	signalChan chan *dbus.Signal
	stopChan   chan struct{}
	stopOnce   sync.Once
	eventChan  chan EventData
	state      *State
	mu         sync.RWMutex
}

func NewService(bus *dbus.Conn, mprisService string) (*Service, error) {
	if bus == nil {
		return nil, errors.New("nil dbus connection")
	}
	if mprisService == "" {
		return nil, errors.New("empty mpris service name")
	}

	return newService(bus, mprisService), nil
}

func newService(bus *dbus.Conn, mprisService string) *Service {
	return &Service{
		bus:       bus,
		service:   mprisService,
		eventChan: make(chan EventData, 16),
		state:     &State{Available: true},
	}
}

func (s *Service) Start() error {
	signalChan := make(chan *dbus.Signal, 10)
	s.signalChan = signalChan
	s.stopChan = make(chan struct{})

	s.bus.Signal(signalChan)

	matchPropertiesChanged := fmt.Sprintf(
		"type='signal',sender='%s',interface='org.freedesktop.DBus.Properties',member='PropertiesChanged',path='%s'",
		s.service, mprisPath,
	)
	matchSeeked := fmt.Sprintf(
		"type='signal',sender='%s',interface='%s',member='Seeked',path='%s'",
		s.service, mprisPlayerIface, mprisPath,
	)

	go s.signalLoop()

	err := s.bus.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, matchPropertiesChanged).Err
	if err != nil {
		return fmt.Errorf("failed to add properties match: %w", err)
	}

	err = s.bus.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, matchSeeked).Err
	if err != nil {
		return fmt.Errorf("failed to add seeked match: %w", err)
	}

	return nil
}

func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if s.stopChan != nil {
			close(s.stopChan)
		}
	})
}

func (s *Service) Events() <-chan EventData {
	return s.eventChan
}

func (s *Service) Track() *track.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Track == nil {
		return nil
	}
	trackCopy := *s.state.Track
	return &trackCopy
}

func (s *Service) GetCurrentTrack() (*track.Info, error) {
	prop, err := s.object().GetProperty(mprisPlayerIface + ".Metadata")
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata property: %w", err)
	}

	metadata, ok := prop.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("unexpected metadata type %T", prop.Value())
	}

	info := trackFromMetadata(metadata)
	if !info.IsValid() {
		return nil, fmt.Errorf("missing title in metadata (title=%q, artist=%q)", info.Title, info.Artist)
	}

	return info, nil
}

// Position returns the playback position in seconds.
func (s *Service) Position() (float64, error) {
	prop, err := s.object().GetProperty(mprisPlayerIface + ".Position")
	if err != nil {
		return 0, fmt.Errorf("failed to get position property: %w", err)
	}

	positionMicroseconds, ok := prop.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected position type %T", prop.Value())
	}
	if positionMicroseconds < 0 {
		return 0, nil
	}

	return microsToSeconds(positionMicroseconds), nil
}

func (s *Service) playbackStatus() (string, error) {
	prop, err := s.object().GetProperty(mprisPlayerIface + ".PlaybackStatus")
	if err != nil {
		return "", fmt.Errorf("failed to get playback status: %w", err)
	}
	status, ok := prop.Value().(string)
	if !ok {
		return "", fmt.Errorf("unexpected playback status type %T", prop.Value())
	}
	return status, nil
}

// Poll refreshes track, position and playback status. The first failure
// after a healthy poll is reported once as an EventError.
func (s *Service) Poll() error {
	trk, err := s.GetCurrentTrack()
	if err == nil {
		var status string
		status, err = s.playbackStatus()
		if err == nil {
			s.applyStatus(status)
		}
	}
	if err != nil {
		s.markUnavailable(err)
		return err
	}

	pos, err := s.Position()
	if err != nil {
		s.markUnavailable(err)
		return err
	}

	s.mu.Lock()
	s.state.Available = true
	currentTrack := s.state.Track
	seekDetected := s.state.DetectSeek(pos)
	s.state.UpdatePosition(pos)

	if !trk.IsSameTrack(currentTrack) {
		s.state.Track = trk
		s.mu.Unlock()
		s.emitEvent(EventData{Type: EventMetadataLoaded, Track: trk, Duration: trk.DurationSecs, Position: pos})
		return nil
	}
	s.mu.Unlock()

	if seekDetected {
		s.emitEvent(EventData{Type: EventPositionChanged, Position: pos})
	}

	return nil
}

func (s *Service) markUnavailable(cause error) {
	s.mu.Lock()
	wasAvailable := s.state.Available
	s.state.Available = false
	s.state.Track = nil
	s.mu.Unlock()

	if wasAvailable {
		s.emitEvent(EventData{Type: EventError, Err: fmt.Errorf("%w: %s: %v", ErrMediaUnavailable, s.service, cause)})
	}
}

func (s *Service) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.state.Playing
}

// SetPosition jumps to seconds. Players that publish no track id only get a
// relative Seek.
func (s *Service) SetPosition(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	target := secondsToMicros(seconds)

	s.mu.RLock()
	var trackID string
	if s.state.Track != nil {
		trackID = s.state.Track.TrackID
	}
	current := s.state.PositionSecs
	s.mu.RUnlock()

	var err error
	if trackID != "" && dbus.ObjectPath(trackID).IsValid() {
		err = s.object().Call(mprisPlayerIface+".SetPosition", 0, dbus.ObjectPath(trackID), target).Err
	} else {
		err = s.object().Call(mprisPlayerIface+".Seek", 0, target-secondsToMicros(current)).Err
	}
	if err != nil {
		return fmt.Errorf("failed to set position on %s: %w", s.service, err)
	}

	s.mu.Lock()
	s.state.UpdatePosition(seconds)
	s.mu.Unlock()

	return nil
}

// RequestPlay asks the player to start and reports the reply through done
// without blocking the caller.
func (s *Service) RequestPlay(done func(error)) {
	obj := s.object()

	prop, err := obj.GetProperty(mprisPlayerIface + ".CanPlay")
	if err == nil {
		if canPlay, ok := prop.Value().(bool); ok && !canPlay {
			go done(fmt.Errorf("%w: %s reports CanPlay=false", ErrPlaybackRejected, s.service))
			return
		}
	}

	call := obj.Go(mprisPlayerIface+".Play", 0, make(chan *dbus.Call, 1))
	go func() {
		<-call.Done
		if call.Err != nil {
			done(fmt.Errorf("%w: %v", ErrPlaybackRejected, call.Err))
			return
		}
		done(nil)
	}()
}

func (s *Service) Pause() error {
	err := s.object().Call(mprisPlayerIface+".Pause", 0).Err
	if err != nil {
		return fmt.Errorf("failed to pause %s: %w", s.service, err)
	}
	return nil
}

func (s *Service) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stateCopy := State{
		PositionSecs: s.state.PositionSecs,
		Playing:      s.state.Playing,
		Available:    s.state.Available,
	}

	if s.state.Track != nil {
		trackCopy := *s.state.Track
		stateCopy.Track = &trackCopy
	}

	return stateCopy
}

func (s *Service) object() dbus.BusObject {
	return s.bus.Object(s.service, mprisPath)
}

func (s *Service) signalLoop() {
	for {
		select {
		case sig, ok := <-s.signalChan:
			if !ok {
				return
			}
			s.handleSignal(sig)
		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) handleSignal(sig *dbus.Signal) {
	if sig == nil {
		return
	}

	switch sig.Name {
	case "org.freedesktop.DBus.Properties.PropertiesChanged":
		s.handlePropertiesChanged(sig)
	case "org.mpris.MediaPlayer2.Player.Seeked":
		s.handleSeeked(sig)
	}
}

func (s *Service) handlePropertiesChanged(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}

	interfaceName, ok := sig.Body[0].(string)
	if !ok || interfaceName != mprisPlayerIface {
		return
	}

	changedProps, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	if metadataVariant, exists := changedProps["Metadata"]; exists {
		metadata, ok := metadataVariant.Value().(map[string]dbus.Variant)
		if ok {
			info := trackFromMetadata(metadata)
			if info.IsValid() {
				s.mu.Lock()
				s.state.Track = info
				s.state.Available = true
				s.state.UpdatePosition(0)
				s.mu.Unlock()

				s.emitEvent(EventData{Type: EventMetadataLoaded, Track: info, Duration: info.DurationSecs})
			}
		}
	}

	if playbackVariant, exists := changedProps["PlaybackStatus"]; exists {
		if status, ok := playbackVariant.Value().(string); ok {
			s.applyStatus(status)
		}
	}
}

// applyStatus records a PlaybackStatus value and emits the matching
// lifecycle event when it changes.
func (s *Service) applyStatus(status string) {
	var event Event
	var playing bool
	switch status {
	case "Playing":
		event, playing = EventPlay, true
	case "Paused":
		event = EventPause
	case "Stopped":
		event = EventEnded
	default:
		return
	}

	s.mu.Lock()
	changed := s.state.status != status
	s.state.status = status
	s.state.Playing = playing
	s.state.lastPositionUpdate = time.Now()
	if event == EventEnded {
		s.state.lastPositionSecs = 0
		s.state.PositionSecs = 0
	}
	s.mu.Unlock()

	if changed {
		s.emitEvent(EventData{Type: event})
	}
}

func (s *Service) handleSeeked(sig *dbus.Signal) {
	if len(sig.Body) < 1 {
		return
	}

	positionMicroseconds, ok := sig.Body[0].(int64)
	if !ok || positionMicroseconds < 0 {
		return
	}

	pos := microsToSeconds(positionMicroseconds)

	s.mu.Lock()
	s.state.UpdatePosition(pos)
	s.mu.Unlock()

	s.emitEvent(EventData{Type: EventPositionChanged, Position: pos})
}

func (s *Service) emitEvent(event EventData) {
	select {
	case s.eventChan <- event:
	default:
	}
}

func trackFromMetadata(metadata map[string]dbus.Variant) *track.Info {
	return &track.Info{
		Title:        extractString(metadata, "xesam:title"),
		Artist:       extractArtist(metadata, "xesam:artist"),
		Album:        extractString(metadata, "xesam:album"),
		TrackID:      extractString(metadata, "mpris:trackid"),
		DurationSecs: extractDurationSeconds(metadata, "mpris:length"),
	}
}

func extractString(metadata map[string]dbus.Variant, key string) string {
	variant, exists := metadata[key]
	if !exists {
		return ""
	}

	switch typed := variant.Value().(type) {
	case string:
		return typed
	case dbus.ObjectPath:
		return string(typed)
	default:
		return ""
	}
}

func extractArtist(metadata map[string]dbus.Variant, key string) string {
	variant, exists := metadata[key]
	if !exists {
		return ""
	}

	switch typed := variant.Value().(type) {
	case []string:
		if len(typed) > 0 {
			return typed[0]
		}
		return ""
	case string:
		return typed
	default:
		return ""
	}
}

func extractDurationSeconds(metadata map[string]dbus.Variant, key string) float64 {
	variant, exists := metadata[key]
	if !exists {
		return 0
	}

	switch typed := variant.Value().(type) {
	case int64:
		if typed <= 0 {
			return 0
		}
		return microsToSeconds(typed)
	case uint64:
		return float64(typed) / 1e6
	default:
		return 0
	}
}

func microsToSeconds(us int64) float64 {
	return float64(us) / 1e6
}

func secondsToMicros(seconds float64) int64 {
	return int64(math.Round(seconds * 1e6))
}
