package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriter redirects all output to w and returns the previous writer.
// A nil w restores stdout.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	if w == nil {
		w = os.Stdout
	}
	out = w
	return prev
}

// Success prints a completed-operation message.
//
//	output.Success("Model ready: 1.00 Msun, Z=0.02d0")
func Success(msg string) {
	writeLine(successStyle.Render("✨ " + msg))
}

// Error prints a failure that needs the user's attention.
func Error(msg string) {
	writeLine(errorStyle.Render("❌ " + msg))
}

// Warn prints a non-fatal problem, such as a script exiting non-zero.
func Warn(msg string) {
	writeLine(warnStyle.Render("⚠️  " + msg))
}

// Info prints a status update.
func Info(msg string) {
	writeLine(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item.
//
//	output.Step("LOGS: 12 files")
func Step(msg string) {
	writeLine(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only in verbose mode.
func Verbose(msg string) {
	if IsVerbose() {
		writeLine(stepStyle.Render("🔍 " + msg))
	}
}

// Plain prints msg without styling, for pre-rendered blocks such as diffs.
func Plain(msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprint(out, msg)
}

func writeLine(line string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, line)
}
