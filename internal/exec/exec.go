package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// maxCaptured bounds how much output RunWithSpinner keeps for replay.
const maxCaptured = 64 * 1024

// Executor runs external commands
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	spinner bool

	// spinnerOut is where the spinner draws; its terminal check decides
	// whether RunWithSpinner shows one.
	spinnerOut io.Writer

	// For mocking in tests
	commandFunc  func(name string, args ...string) *exec.Cmd
	terminalFunc func(w io.Writer) bool
}

// Options configures command execution
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string // Additional environment variables
	Dir     string   // Working directory
	Spinner bool     // Allow spinners when SpinnerOut is a terminal

	// SpinnerOut is the stream the spinner renders to. It defaults to
	// Stderr; set it to the real terminal when Stderr is wrapped.
	SpinnerOut io.Writer
}

// NewExecutor creates an executor. Nil options write to the process's
// stdout and stderr with spinners enabled.
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{Spinner: true}
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	spinnerOut := opts.SpinnerOut
	if spinnerOut == nil {
		spinnerOut = stderr
	}

	return &Executor{
		stdout:       stdout,
		stderr:       stderr,
		env:          opts.Env,
		dir:          opts.Dir,
		spinner:      opts.Spinner,
		spinnerOut:   spinnerOut,
		commandFunc:  exec.Command,
		terminalFunc: isTerminal,
	}
}

// SpinnerOut returns the stream spinners render to.
func (e *Executor) SpinnerOut() io.Writer {
	return e.spinnerOut
}

// UsesSpinner reports whether RunWithSpinner would show a spinner.
func (e *Executor) UsesSpinner() bool {
	return e.spinner && e.terminalFunc(e.spinnerOut)
}

// Dir returns the working directory commands run in.
func (e *Executor) Dir() string {
	return e.dir
}

// command builds a Cmd with the executor's directory and environment.
func (e *Executor) command(name string, args ...string) *exec.Cmd {
	cmd := e.commandFunc(name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		if cmd.Env == nil {
			cmd.Env = os.Environ()
		}
		cmd.Env = append(cmd.Env, e.env...)
	}
	return cmd
}

// Run executes a command, streaming its output, and waits for it.
// Cancelling ctx kills the command.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	return e.run(ctx, e.stdout, e.stderr, name, args...)
}

func (e *Executor) run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s cancelled: %w", name, err)
	}

	cmd := e.command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s failed: %w", name, err)
		}
		return nil
	}
}

// RunWithSpinner runs a command behind a progress spinner. Output is
// captured and written to stderr only if the command fails. When spinners
// are disabled or SpinnerOut is not a terminal it behaves like Run.
func (e *Executor) RunWithSpinner(ctx context.Context, message string, name string, args ...string) error {
	if !e.UsesSpinner() {
		return e.Run(ctx, name, args...)
	}

	captured := &boundedBuffer{limit: maxCaptured}

	done := make(chan error, 1)
	go func() {
		done <- e.run(ctx, captured, captured, name, args...)
	}()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.spinnerOut), tea.WithInput(nil))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// Spinner failures only cost the animation.
		_, _ = p.Run()
	}()

	err := <-done
	p.Send(spinnerDoneMsg{err: err})

	select {
	case <-finished:
	case <-time.After(500 * time.Millisecond):
		p.Quit()
		<-finished
	}

	if err != nil {
		_, _ = e.stderr.Write(captured.Bytes())
	}
	return err
}

// Detach starts a command in a new session with stdout and stderr
// appended to logPath, then releases it. The command keeps running after
// starling exits. It returns the child's PID.
func (e *Executor) Detach(logPath string, name string, args ...string) (int, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", logPath, err)
	}
	// The child holds its own descriptor once started.
	defer logFile.Close()

	cmd := e.command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return 0, enhanceError(err, name)
		}
		return 0, fmt.Errorf("failed to start %s: %w", name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("releasing %s: %w", name, err)
	}
	return pid, nil
}

// ExitCode extracts the exit status from an error returned by Run.
// ok is false when err did not come from a process that exited.
func ExitCode(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

// boundedBuffer keeps the last limit bytes written to it.
type boundedBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf.Write(p)
	if over := b.buf.Len() - b.limit; over > 0 {
		b.buf.Next(over)
	}
	return len(p), nil
}

func (b *boundedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

// isTerminal reports whether w is a terminal file descriptor
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "command not found")
}

// enhanceError adds a hint for missing scripts
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w\n💡 '%s' not found. Is the model directory complete?", err, cmd)
}
