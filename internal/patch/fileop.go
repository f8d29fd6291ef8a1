package patch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/starling/internal/fileops"
	"github.com/simonhull/firebird-suite/starling/internal/mesa"
)

// FileOp patches one file in place.
//
// Validate reads the file and computes the result of each pass in turn,
// so a missing or unreadable target fails the batch before anything is
// written. Execute overwrites the file, keeping its permission bits.
type FileOp struct {
	Path   string
	Passes [][]Rule

	before  []string
	after   []string
	changed int
	mode    fs.FileMode
}

var (
	_ fileops.Operation = (*FileOp)(nil)
	_ fileops.Previewer = (*FileOp)(nil)
	_ fileops.Skipper   = (*FileOp)(nil)
)

func (op *FileOp) Validate(ctx context.Context) error {
	info, err := os.Stat(op.Path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", op.Path)
	}

	data, err := os.ReadFile(op.Path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", op.Path, err)
	}

	op.mode = info.Mode().Perm()
	op.before = SplitLines(string(data))
	op.after = op.before
	for _, rules := range op.Passes {
		op.after = Apply(op.after, rules)
	}

	op.changed = 0
	for i := range op.before {
		if op.before[i] != op.after[i] {
			op.changed++
		}
	}
	return nil
}

func (op *FileOp) Execute(ctx context.Context) error {
	if err := os.WriteFile(op.Path, []byte(strings.Join(op.after, "")), op.mode); err != nil {
		return fmt.Errorf("writing %s: %w", op.Path, err)
	}
	return nil
}

func (op *FileOp) Description() string {
	noun := "lines"
	if op.changed == 1 {
		noun = "line"
	}
	return fmt.Sprintf("Patch %s (%d %s changed)", op.Path, op.changed, noun)
}

// Preview renders the pending change as a diff.
func (op *FileOp) Preview() string {
	return fileops.LineDiff(op.Path, op.before, op.after, nil)
}

// Skip reports whether the file is already up to date.
func (op *FileOp) Skip() bool {
	return op.changed == 0
}

// Changed is the number of lines Validate found to differ.
func (op *FileOp) Changed() int {
	return op.changed
}

// ModelOps builds one FileOp per patch target of the model in p.
// inlist_start gets the start rules as a second pass on the same
// operation so both passes land in a single write.
func ModelOps(p mesa.Params) ([]fileops.Operation, error) {
	targets, err := mesa.PatchTargets(p.ModelDir)
	if err != nil {
		return nil, err
	}

	model := ModelRules(p.MesaDir, p.InitialMass, p.InitialZ)
	ops := make([]fileops.Operation, 0, len(targets))
	for _, path := range targets {
		op := &FileOp{Path: path, Passes: [][]Rule{model}}
		if filepath.Base(path) == mesa.StartInlist {
			op.Passes = append(op.Passes, StartRules())
		}
		ops = append(ops, op)
	}
	return ops, nil
}
