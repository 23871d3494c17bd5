package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		want  Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{" ERROR ", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.value), "value %q", tt.value)
	}
}

func TestWriterForwardsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelDebug)

	w := NewWriter(logger, "gh")
	n, err := w.Write([]byte("first line\nsecond line\n\n"))
	assert.NoError(t, err)
	assert.Equal(t, 24, n)

	out := buf.String()
	assert.Contains(t, out, "first line")
	assert.Contains(t, out, "second line")
}

func TestWriterNilLogger(t *testing.T) {
	w := NewWriter(nil, "git")
	n, err := w.Write([]byte("ignored\n"))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
}
