package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreDisablesMouseAndAltScreen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Restore(&buf))

	out := buf.String()
	assert.Contains(t, out, "\033[?1049l")
	assert.Contains(t, out, "\033[?1006l")
	assert.Contains(t, out, "\033[?25h")
}
