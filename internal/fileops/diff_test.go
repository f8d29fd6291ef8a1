package fileops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiff_Identical(t *testing.T) {
	lines := []string{"&star_job\n", "/\n"}
	assert.Empty(t, LineDiff("inlist", lines, lines, nil))
}

func TestLineDiff_IgnoresLineEndingsWhenComparing(t *testing.T) {
	before := []string{"initial_mass = 1.00\r\n"}
	after := []string{"initial_mass = 1.00\n"}
	assert.Empty(t, LineDiff("inlist", before, after, nil))
}

func TestLineDiff_SingleChange(t *testing.T) {
	before := []string{"&controls\n", "  initial_mass = 1.00\n", "/\n"}
	after := []string{"&controls\n", "  initial_mass = 2.00\n", "/\n"}

	diff := LineDiff("inlist_project", before, after, &DiffOptions{Width: 120})

	assert.Contains(t, diff, "--- inlist_project")
	assert.Contains(t, diff, "+++ inlist_project")
	assert.Contains(t, diff, "@@ -1,3 +1,3 @@")
	assert.Contains(t, diff, "-  initial_mass = 1.00")
	assert.Contains(t, diff, "+  initial_mass = 2.00")
	assert.Contains(t, diff, " &controls")
}

func TestLineDiff_SeparateHunks(t *testing.T) {
	before := make([]string, 20)
	after := make([]string, 20)
	for i := range before {
		before[i] = "line\n"
		after[i] = "line\n"
	}
	after[1] = "changed one\n"
	after[18] = "changed two\n"

	diff := LineDiff("rn", before, after, &DiffOptions{ContextLines: 2, Width: 120})
	assert.Equal(t, 2, strings.Count(diff, "@@ -"))
	assert.Contains(t, diff, "@@ -1,4 +1,4 @@")
	assert.Contains(t, diff, "@@ -17,4 +17,4 @@")
}

func TestLineDiff_MergesCloseChanges(t *testing.T) {
	before := []string{"a\n", "b\n", "c\n", "d\n", "e\n"}
	after := []string{"A\n", "b\n", "c\n", "D\n", "e\n"}

	diff := LineDiff("rn", before, after, &DiffOptions{ContextLines: 3, Width: 120})
	assert.Equal(t, 1, strings.Count(diff, "@@ -"))
}

func TestLineDiff_UnequalLength(t *testing.T) {
	diff := LineDiff("rn", []string{"a\n"}, []string{"a\n", "b\n"}, &DiffOptions{Width: 120})
	assert.Contains(t, diff, "+b")
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "    x", expandTabs("\tx", 4))
	assert.Equal(t, "ab  x", expandTabs("ab\tx", 4))
	assert.Equal(t, "plain", expandTabs("plain", 4))
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", truncateLine("short", 10))
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
}
