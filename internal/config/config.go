package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceMPRIS = "mpris"
	SourceFile  = "file"

	DefaultSource       = SourceFile
	DefaultMprisService = "org.mpris.MediaPlayer2.spotify"
	DefaultAudioFile    = "sample-audio.mp3"
	PollInterval        = 100 * time.Millisecond
	StatusDuration      = 2 * time.Second

	appDirName  = "lyricsync"
	logFileName = "lyricsync.log"
)

type Config struct {
	Source       string
	MprisService string
	AudioFile    string
	SyncOffset   float64
	HideHeader   bool
	LogFile      string
	Debug        bool
}

// Load reads the configuration from the environment. Values from a .env
// file in the working directory fill in variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	syncOffset, err := strconv.ParseFloat(getEnvOrDefault("SYNC_OFFSET", "0"), 64)
	if err != nil {
		syncOffset = 0
	}

	source := getEnvOrDefault("LYRICSYNC_SOURCE", DefaultSource)
	if source != SourceMPRIS && source != SourceFile {
		source = DefaultSource
	}

	return &Config{
		Source:       source,
		MprisService: getEnvOrDefault("MPRIS_SERVICE", DefaultMprisService),
		AudioFile:    getEnvOrDefault("LYRICSYNC_AUDIO_FILE", DefaultAudioFile),
		SyncOffset:   syncOffset,
		HideHeader:   parseBool(getEnvOrDefault("HIDE_HEADER", "false")),
		LogFile:      getEnvOrDefault("LYRICSYNC_LOG_FILE", defaultLogFile()),
		Debug:        parseBool(getEnvOrDefault("LYRICSYNC_DEBUG", "false")),
	}
}

func parseBool(value string) bool {
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// defaultLogFile places the log under the xdg state directory.
func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appDirName, logFileName)
		}
		stateHome = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateHome, appDirName, logFileName)
}

func getEnvOrDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
