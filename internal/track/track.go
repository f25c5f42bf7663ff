package track

import (
	"path/filepath"
	"strings"
)

type Info struct {
	Title        string
	Artist       string
	Album        string
	DurationSecs float64
	TrackID      string
}

func (t *Info) IsValid() bool {
	if t == nil {
		return false
	}
	return t.Title != ""
}

func (t *Info) IsSameTrack(other *Info) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.TrackID != "" && other.TrackID != "" {
		return t.TrackID == other.TrackID
	}
	return t.Title == other.Title && t.Artist == other.Artist
}

// FromPath names a local audio file after its base name.
func FromPath(path string) *Info {
	base := filepath.Base(path)
	return &Info{
		Title:   strings.TrimSuffix(base, filepath.Ext(base)),
		Artist:  "local file",
		TrackID: path,
	}
}
