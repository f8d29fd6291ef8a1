package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/starling/internal/exec"
	"github.com/simonhull/firebird-suite/starling/internal/logger"
	"github.com/simonhull/firebird-suite/starling/internal/mesa"
	"github.com/simonhull/firebird-suite/starling/internal/output"
)

// DefaultShell runs the model scripts when none is configured.
const DefaultShell = "/bin/sh"

// Commander is the part of exec.Executor the runner needs.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
	RunWithSpinner(ctx context.Context, message string, name string, args ...string) error
	Detach(logPath string, name string, args ...string) (int, error)
}

// Mode says how a step is run.
type Mode int

const (
	Foreground Mode = iota // wait, stream output
	Spinner                // wait, spinner on a terminal
	Detached               // start and return
)

// Step is one model script.
type Step struct {
	Script  string // relative to the model directory, e.g. "./mk"
	Message string
	Mode    Mode
}

// Steps is the standard sequence.
var Steps = []Step{
	{Script: "./clean", Message: "Cleaning build", Mode: Foreground},
	{Script: "./mk", Message: "Building star", Mode: Spinner},
	{Script: "./" + mesa.RunControlFile, Message: "Starting run", Mode: Detached},
}

// Options configures a Runner.
type Options struct {
	Shell    string
	Executor Commander // defaults to an exec.Executor in the model directory
	Logger   logger.Logger
}

// Runner runs Steps in a model directory.
type Runner struct {
	modelDir string
	shell    string
	exec     Commander
	log      logger.Logger
	flush    []func() error
}

// New creates a Runner for modelDir.
func New(modelDir string, opts Options) *Runner {
	r := &Runner{
		modelDir: modelDir,
		shell:    opts.Shell,
		exec:     opts.Executor,
		log:      opts.Logger,
	}
	if r.shell == "" {
		r.shell = DefaultShell
	}
	if r.log == nil {
		r.log = logger.Default()
	}
	if r.exec == nil {
		stdout := exec.NewPrefixWriter(os.Stdout, "  │ ")
		stderr := exec.NewPrefixWriter(os.Stderr, "  │ ")
		r.flush = append(r.flush, stdout.Flush, stderr.Flush)
		r.exec = exec.NewExecutor(&exec.Options{
			Stdout:     stdout,
			Stderr:     stderr,
			Dir:        modelDir,
			Spinner:    true,
			SpinnerOut: os.Stderr,
		})
	}
	return r
}

// Result describes the detached run.
type Result struct {
	PID int
	Log string
}

// Run executes Steps in order. A foreground script that is missing or
// exits non-zero is logged as a warning and the sequence continues. A
// missing ./rn, or any script that cannot be started, ends it with an
// error. Cancelling ctx stops before the next step.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	defer r.flushOutput()

	result := &Result{Log: filepath.Join(r.modelDir, mesa.NohupFile)}
	for _, step := range Steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%s cancelled: %w", step.Script, err)
		}
		if err := r.checkScript(step.Script); err != nil {
			if step.Mode == Detached {
				return result, err
			}
			r.log.Warn("model script missing", logger.F("script", step.Script), logger.F("dir", r.modelDir))
			output.Warn(fmt.Sprintf("%s not found, skipping", step.Script))
			continue
		}

		output.Step(fmt.Sprintf("%s (%s)", step.Message, step.Script))
		r.log.Debug("running model script",
			logger.F("script", step.Script),
			logger.F("shell", r.shell),
			logger.F("dir", r.modelDir))

		if step.Mode == Detached {
			pid, err := r.exec.Detach(result.Log, r.shell, "-c", step.Script)
			if err != nil {
				return result, err
			}
			result.PID = pid
			r.log.Info("run started", logger.F("pid", pid), logger.F("log", result.Log))
			continue
		}

		var err error
		if step.Mode == Spinner {
			err = r.exec.RunWithSpinner(ctx, step.Message, r.shell, "-c", step.Script)
		} else {
			err = r.exec.Run(ctx, r.shell, "-c", step.Script)
		}
		if err != nil {
			if err = r.exitStatus(ctx, step, err); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

// exitStatus downgrades a non-zero exit to a warning and passes every
// other error through.
func (r *Runner) exitStatus(ctx context.Context, step Step, err error) error {
	if ctx.Err() != nil {
		return err
	}
	code, ok := exec.ExitCode(err)
	if !ok {
		return err
	}
	r.log.Warn("model script exited with non-zero status",
		logger.F("script", step.Script),
		logger.F("code", code))
	output.Warn(fmt.Sprintf("%s exited with status %d", step.Script, code))
	return nil
}

func (r *Runner) checkScript(script string) error {
	path := filepath.Join(r.modelDir, filepath.FromSlash(script))
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("script %s not found in %s: %w", script, r.modelDir, err)
	}
	if info.IsDir() {
		return fmt.Errorf("script %s in %s is a directory", script, r.modelDir)
	}
	return nil
}

func (r *Runner) flushOutput() {
	for _, flush := range r.flush {
		_ = flush()
	}
}
