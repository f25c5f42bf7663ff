package lyrics

import (
	"errors"
	"fmt"
	"math"
)

// None is the index reported when no entry has started yet.
const None = -1

var ErrInvalidTime = errors.New("invalid lyric timestamp")

type Entry struct {
	Time float64
	Text string
}

// Set is the fixed, ordered lyric table of one player session. Entries are
// expected in ascending time order; the order is not enforced.
type Set struct {
	entries []Entry
}

func NewSet(entries []Entry) (*Set, error) {
	copied := make([]Entry, len(entries))
	for i, entry := range entries {
		if math.IsNaN(entry.Time) || math.IsInf(entry.Time, 0) || entry.Time < 0 {
			return nil, fmt.Errorf("%w: entry %d has time %v", ErrInvalidTime, i, entry.Time)
		}
		copied[i] = entry
	}
	return &Set{entries: copied}, nil
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

func (s *Set) At(index int) (Entry, bool) {
	if s == nil || index < 0 || index >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[index], true
}

// Entries returns a copy of the table.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ResolveActive returns the index of the latest entry whose time does not
// exceed currentTime. When several entries share that time the highest index
// wins. It reports false (and None) before the first entry has started.
func (s *Set) ResolveActive(currentTime float64) (int, bool) {
	if s == nil {
		return None, false
	}

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Time <= currentTime {
			return i, true
		}
	}

	return None, false
}
