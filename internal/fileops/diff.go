package fileops

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are rendered.
// All fields are optional with sensible defaults.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab character expands to.
	// Default: 4
	TabWidth int

	// Width caps rendered line width. Default: terminal width, or 80.
	Width int
}

// lineKind is the type of a rendered diff line
type lineKind int

const (
	kindUnchanged lineKind = iota
	kindAdded
	kindRemoved
)

type diffLine struct {
	oldNum  int // 0 if added
	newNum  int // 0 if removed
	content string
	kind    lineKind
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// LineDiff renders a unified diff between two versions of a file whose
// lines correspond one to one, which is what line substitution produces.
// Trailing lines present in only one version are shown as added or
// removed. Lines are compared without their terminators. An empty string
// means the contents are identical.
func LineDiff(path string, before, after []string, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		if opts.ContextLines > 0 {
			o.ContextLines = opts.ContextLines
		}
		if opts.TabWidth > 0 {
			o.TabWidth = opts.TabWidth
		}
		o.Width = opts.Width
	}
	if o.Width <= 0 {
		o.Width = terminalWidth()
	}

	script := alignLines(before, after)
	hunks := buildHunks(script, o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+path) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+path) + "\n")
	for _, h := range hunks {
		buf.WriteString(formatHunk(h, o))
	}
	return buf.String()
}

// alignLines pairs lines by index. A changed pair becomes a removal
// followed by an addition.
func alignLines(before, after []string) []diffLine {
	n := max(len(before), len(after))
	script := make([]diffLine, 0, n)

	for i := 0; i < n; i++ {
		switch {
		case i >= len(before):
			script = append(script, diffLine{newNum: i + 1, content: trimEOL(after[i]), kind: kindAdded})
		case i >= len(after):
			script = append(script, diffLine{oldNum: i + 1, content: trimEOL(before[i]), kind: kindRemoved})
		case trimEOL(before[i]) == trimEOL(after[i]):
			script = append(script, diffLine{oldNum: i + 1, newNum: i + 1, content: trimEOL(before[i]), kind: kindUnchanged})
		default:
			script = append(script,
				diffLine{oldNum: i + 1, content: trimEOL(before[i]), kind: kindRemoved},
				diffLine{newNum: i + 1, content: trimEOL(after[i]), kind: kindAdded},
			)
		}
	}
	return script
}

// buildHunks groups changes with up to contextLines of surrounding
// unchanged lines, merging changes whose context would overlap.
func buildHunks(lines []diffLine, contextLines int) []hunk {
	var hunks []hunk
	var current *hunk
	lastChange := -1

	for i, line := range lines {
		if line.kind == kindUnchanged {
			continue
		}

		if current != nil && i-lastChange-1 > contextLines*2 {
			current.lines = append(current.lines, lines[lastChange+1:lastChange+1+contextLines]...)
			hunks = append(hunks, finalize(*current))
			current = nil
		}

		if current == nil {
			start := max(0, i-contextLines)
			current = &hunk{lines: append([]diffLine(nil), lines[start:i]...)}
		} else {
			current.lines = append(current.lines, lines[lastChange+1:i]...)
		}
		current.lines = append(current.lines, line)
		lastChange = i
	}

	if current != nil {
		end := min(len(lines), lastChange+1+contextLines)
		current.lines = append(current.lines, lines[lastChange+1:end]...)
		hunks = append(hunks, finalize(*current))
	}
	return hunks
}

// finalize computes the header ranges of a hunk
func finalize(h hunk) hunk {
	for _, line := range h.lines {
		if line.oldNum > 0 && (h.oldStart == 0 || line.oldNum < h.oldStart) {
			h.oldStart = line.oldNum
		}
		if line.newNum > 0 && (h.newStart == 0 || line.newNum < h.newStart) {
			h.newStart = line.newNum
		}
		if line.kind != kindAdded {
			h.oldCount++
		}
		if line.kind != kindRemoved {
			h.newCount++
		}
	}
	return h
}

func formatHunk(h hunk, o DiffOptions) string {
	var buf strings.Builder
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, line := range h.lines {
		content := truncateLine(expandTabs(line.content, o.TabWidth), o.Width-2)
		switch line.kind {
		case kindAdded:
			buf.WriteString(addedStyle.Render("+"+content) + "\n")
		case kindRemoved:
			buf.WriteString(removedStyle.Render("-"+content) + "\n")
		default:
			buf.WriteString(" " + content + "\n")
		}
	}
	return buf.String()
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// expandTabs replaces tabs with spaces up to the next tab stop
func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

// truncateLine shortens s to maxWidth runes, marking the cut with "..."
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 3 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// terminalWidth returns the terminal width, defaulting to 80
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
