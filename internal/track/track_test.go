package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSameTrack(t *testing.T) {
	a := &Info{Title: "Song", Artist: "Band", TrackID: "/t/1"}
	b := &Info{Title: "Other", Artist: "Band", TrackID: "/t/1"}
	c := &Info{Title: "Song", Artist: "Band"}

	assert.True(t, a.IsSameTrack(b))
	assert.True(t, a.IsSameTrack(c))
	assert.False(t, b.IsSameTrack(c))

	var none *Info
	assert.True(t, none.IsSameTrack(nil))
	assert.False(t, none.IsSameTrack(a))
	assert.False(t, a.IsSameTrack(nil))
}

func TestIsValid(t *testing.T) {
	assert.False(t, (*Info)(nil).IsValid())
	assert.False(t, (&Info{Artist: "x"}).IsValid())
	assert.True(t, (&Info{Title: "x"}).IsValid())
}

func TestFromPath(t *testing.T) {
	info := FromPath("/music/sample-audio.mp3")
	assert.Equal(t, "sample-audio", info.Title)
	assert.Equal(t, "/music/sample-audio.mp3", info.TrackID)
	assert.True(t, info.IsValid())
}
