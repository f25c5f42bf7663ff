package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LYRICSYNC_SOURCE", "MPRIS_SERVICE", "LYRICSYNC_AUDIO_FILE", "SYNC_OFFSET",
		"HIDE_HEADER", "LYRICSYNC_LOG_FILE", "LYRICSYNC_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_STATE_HOME", "/state")

	cfg := Load()

	assert.Equal(t, SourceFile, cfg.Source)
	assert.Equal(t, DefaultMprisService, cfg.MprisService)
	assert.Equal(t, DefaultAudioFile, cfg.AudioFile)
	assert.Zero(t, cfg.SyncOffset)
	assert.False(t, cfg.HideHeader)
	assert.False(t, cfg.Debug)
	assert.Equal(t, filepath.Join("/state", "lyricsync", "lyricsync.log"), cfg.LogFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LYRICSYNC_SOURCE", "mpris")
	t.Setenv("MPRIS_SERVICE", "org.mpris.MediaPlayer2.vlc")
	t.Setenv("SYNC_OFFSET", "-0.75")
	t.Setenv("HIDE_HEADER", "yes")
	t.Setenv("LYRICSYNC_DEBUG", "1")
	t.Setenv("LYRICSYNC_LOG_FILE", "/tmp/ls.log")

	cfg := Load()

	assert.Equal(t, SourceMPRIS, cfg.Source)
	assert.Equal(t, "org.mpris.MediaPlayer2.vlc", cfg.MprisService)
	assert.InDelta(t, -0.75, cfg.SyncOffset, 1e-9)
	assert.True(t, cfg.HideHeader)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/ls.log", cfg.LogFile)
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("LYRICSYNC_SOURCE", "cassette")
	t.Setenv("SYNC_OFFSET", "soon")

	cfg := Load()

	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Zero(t, cfg.SyncOffset)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("LYRICSYNC_AUDIO_FILE")

	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LYRICSYNC_AUDIO_FILE=song.wav\n"), 0o644))
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := Load()
	assert.Equal(t, "song.wav", cfg.AudioFile)
	os.Unsetenv("LYRICSYNC_AUDIO_FILE")
}
