package lyrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T, times ...float64) *Set {
	t.Helper()
	entries := make([]Entry, len(times))
	for i, tm := range times {
		entries[i] = Entry{Time: tm, Text: string(rune('A' + i))}
	}
	set, err := NewSet(entries)
	require.NoError(t, err)
	return set
}

func TestResolveActive(t *testing.T) {
	set := newTestSet(t, 0, 3, 6)

	cases := []struct {
		name      string
		current   float64
		wantIndex int
		wantOK    bool
	}{
		{name: "exactly first", current: 0, wantIndex: 0, wantOK: true},
		{name: "inside first", current: 2.99, wantIndex: 0, wantOK: true},
		{name: "boundary is inclusive", current: 3, wantIndex: 1, wantOK: true},
		{name: "inside second", current: 4, wantIndex: 1, wantOK: true},
		{name: "last entry", current: 6, wantIndex: 2, wantOK: true},
		{name: "far past last", current: 7000, wantIndex: 2, wantOK: true},
		{name: "before first", current: -0.5, wantIndex: None, wantOK: false},
		{name: "nan resolves nothing", current: math.NaN(), wantIndex: None, wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := set.ResolveActive(tc.current)
			assert.Equal(t, tc.wantIndex, idx)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestResolveActiveBeforeFirstEntry(t *testing.T) {
	set := newTestSet(t, 5, 10, 15)

	for _, current := range []float64{0, 1, 4.999} {
		idx, ok := set.ResolveActive(current)
		assert.False(t, ok, "time %v", current)
		assert.Equal(t, None, idx)
	}
}

func TestResolveActiveCoversEachInterval(t *testing.T) {
	times := []float64{0, 1.5, 4, 4.25, 9}
	set := newTestSet(t, times...)

	for i := range times {
		upper := times[i] + 100
		if i+1 < len(times) {
			upper = times[i+1]
		}
		for _, current := range []float64{times[i], (times[i] + upper) / 2, math.Nextafter(upper, times[i])} {
			idx, ok := set.ResolveActive(current)
			require.True(t, ok)
			assert.Equal(t, i, idx, "time %v", current)
		}
	}
}

func TestResolveActiveTieKeepsLatest(t *testing.T) {
	set := newTestSet(t, 0, 2, 2, 2, 5)

	idx, ok := set.ResolveActive(2)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	idx, _ = set.ResolveActive(4.9)
	assert.Equal(t, 3, idx)
}

func TestResolveActiveEmpty(t *testing.T) {
	set, err := NewSet(nil)
	require.NoError(t, err)

	for _, current := range []float64{-1, 0, 1e9} {
		idx, ok := set.ResolveActive(current)
		assert.False(t, ok)
		assert.Equal(t, None, idx)
	}

	var nilSet *Set
	idx, ok := nilSet.ResolveActive(1)
	assert.False(t, ok)
	assert.Equal(t, None, idx)
	assert.Zero(t, nilSet.Len())
}

func TestNewSetRejectsInvalidTimes(t *testing.T) {
	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := NewSet([]Entry{{Time: 0, Text: "ok"}, {Time: bad, Text: "bad"}})
		assert.ErrorIs(t, err, ErrInvalidTime)
	}
}

func TestNewSetCopiesInput(t *testing.T) {
	entries := []Entry{{Time: 0, Text: "first"}}
	set, err := NewSet(entries)
	require.NoError(t, err)

	entries[0].Text = "changed"
	got, ok := set.At(0)
	require.True(t, ok)
	assert.Equal(t, "first", got.Text)

	out := set.Entries()
	out[0].Text = "changed again"
	got, _ = set.At(0)
	assert.Equal(t, "first", got.Text)

	_, ok = set.At(1)
	assert.False(t, ok)
	_, ok = set.At(-1)
	assert.False(t, ok)
}

func TestBuiltinIsAscending(t *testing.T) {
	set := Builtin()
	require.Equal(t, 15, set.Len())

	entries := set.Entries()
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Time, entries[i].Time)
	}
}
