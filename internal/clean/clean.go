package clean

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/simonhull/firebird-suite/starling/internal/fileops"
	"github.com/simonhull/firebird-suite/starling/internal/logger"
	"github.com/simonhull/firebird-suite/starling/internal/mesa"
)

// Categories used in reports.
const (
	CategoryNohup  = "nohup output"
	CategoryLogs   = "logs"
	CategoryCache  = "cache"
	CategoryBinary = "binary"
	CategoryModels = "models"
)

// Target is a glob of generated files under Root.
type Target struct {
	Category string
	Root     string
	Pattern  string // doublestar syntax, slash separated
}

// Targets lists what a rebuild clears, in sweep order.
func Targets(modelDir, mesaDir string) []Target {
	return []Target{
		{CategoryNohup, modelDir, mesa.NohupFile},
		{CategoryLogs, modelDir, "LOGS*/*"},
		{CategoryCache, mesaDir, "**/cache/*"},
		{CategoryCache, modelDir, ".mesa_temp_cache/*"},
		{CategoryBinary, modelDir, mesa.StarBinary},
		{CategoryModels, modelDir, "*.mod"},
	}
}

// Match returns the files and symlinks t currently matches. Directories
// are left out.
func (t Target) Match() ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(t.Root, filepath.FromSlash(t.Pattern)))
	if err != nil {
		return nil, fmt.Errorf("matching %s in %s: %w", t.Pattern, t.Root, err)
	}

	files := matches[:0]
	for _, path := range matches {
		info, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// Entry is one swept target and the files it matched.
type Entry struct {
	Target
	Files []string
}

// Report is what a sweep found, counted before anything was removed.
type Report struct {
	Entries []Entry
	Removed int
	Failed  int
}

// Count returns how many files matched in category.
func (r *Report) Count(category string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Category == category {
			n += len(e.Files)
		}
	}
	return n
}

// Total returns how many files matched overall.
func (r *Report) Total() int {
	n := 0
	for _, e := range r.Entries {
		n += len(e.Files)
	}
	return n
}

// Options configures a sweep.
type Options struct {
	DryRun bool
	Quiet  bool
	Writer io.Writer
	Logger logger.Logger
}

// Cleaner deletes generated files for one model.
type Cleaner struct {
	targets []Target
	opts    Options
}

// New creates a Cleaner for the standard targets of modelDir and mesaDir.
func New(modelDir, mesaDir string, opts Options) *Cleaner {
	return NewWithTargets(Targets(modelDir, mesaDir), opts)
}

// NewWithTargets creates a Cleaner for an explicit target list.
func NewWithTargets(targets []Target, opts Options) *Cleaner {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &Cleaner{targets: targets, opts: opts}
}

// Clean matches every target, then removes the matched files. A removal
// failure does not stop the sweep; all failures come back as one error
// alongside the report.
func (c *Cleaner) Clean(ctx context.Context) (*Report, error) {
	report := &Report{}
	var ops []fileops.Operation

	for _, t := range c.targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		files, err := t.Match()
		if err != nil {
			return report, err
		}
		c.opts.Logger.Debug("matched cleanup target",
			logger.F("category", t.Category),
			logger.F("pattern", t.Pattern),
			logger.F("files", len(files)))

		report.Entries = append(report.Entries, Entry{Target: t, Files: files})
		for _, path := range files {
			ops = append(ops, &fileops.RemoveFileOp{Path: path, MissingOK: true})
		}
	}

	result, err := fileops.Execute(ctx, ops, fileops.ExecuteOptions{
		DryRun:          c.opts.DryRun,
		Quiet:           c.opts.Quiet,
		Writer:          c.opts.Writer,
		ContinueOnError: true,
	})
	if !c.opts.DryRun {
		report.Removed = result.Applied
	}
	report.Failed = result.Failed
	return report, err
}
