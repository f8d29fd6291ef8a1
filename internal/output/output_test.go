package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output into a buffer for the duration of f
func capture(f func()) string {
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		print func(string)
		icon  string
	}{
		{"success", Success, "✨"},
		{"error", Error, "❌"},
		{"warn", Warn, "⚠️"},
		{"info", Info, "ℹ️"},
		{"step", Step, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capture(func() { tt.print("hello star") })
			assert.Contains(t, got, tt.icon)
			assert.Contains(t, got, "hello star")
		})
	}
}

func TestVerbose(t *testing.T) {
	got := capture(func() { Verbose("debug message") })
	assert.Empty(t, got, "verbose output should be empty when verbose mode is off")

	SetVerbose(true)
	defer SetVerbose(false)

	got = capture(func() { Verbose("debug message") })
	assert.Contains(t, got, "🔍")
	assert.Contains(t, got, "debug message")
}

func TestPlain(t *testing.T) {
	got := capture(func() { Plain("--- a\n+++ b\n") })
	assert.Equal(t, "--- a\n+++ b\n", got)
}

func TestSetWriter_NilRestoresStdout(t *testing.T) {
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)

	assert.Equal(t, &buf, SetWriter(nil))
}
