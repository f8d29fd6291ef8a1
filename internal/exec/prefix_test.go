package exec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "")

	n, err := w.Write([]byte("rm -f star\nrm -f "))
	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, "rm -f star\n", buf.String())

	_, err = w.Write([]byte("*.mod\n"))
	require.NoError(t, err)
	assert.Equal(t, "rm -f star\nrm -f *.mod\n", buf.String())
}

func TestPrefixWriter_Prefix(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "clean | ")

	_, err := w.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("clean | ")))
}

func TestPrefixWriter_Flush(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "")

	_, _ = w.Write([]byte("no newline"))
	assert.Empty(t, buf.String())

	require.NoError(t, w.Flush())
	assert.Equal(t, "no newline\n", buf.String())

	require.NoError(t, w.Flush())
	assert.Equal(t, "no newline\n", buf.String())
}
