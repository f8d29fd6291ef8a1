package fileops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Operation is a file system change that can be checked before it runs.
//
// Validate must not modify the file system. Execute performs the change
// and is only called after every operation in the batch validated.
// Description is a one-line summary for output.
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// Previewer is implemented by operations that can show their effect as
// a diff during dry runs.
type Previewer interface {
	Preview() string
}

// Skipper is implemented by operations that may turn out to be no-ops
// after validation, such as a patch that changes no lines.
type Skipper interface {
	Skip() bool
}

// RemoveFileOp deletes a single file.
//
// Validation fails if the path is a directory, or if it is missing and
// MissingOK is false. A file that disappears between validation and
// execution is tolerated only when MissingOK is set.
type RemoveFileOp struct {
	Path      string
	MissingOK bool

	missing bool
}

func (op *RemoveFileOp) Validate(ctx context.Context) error {
	info, err := os.Lstat(op.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if op.MissingOK {
			op.missing = true
			return nil
		}
		return fmt.Errorf("file not found: %s", op.Path)
	}
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory: %s", op.Path)
	}
	return nil
}

func (op *RemoveFileOp) Execute(ctx context.Context) error {
	err := os.Remove(op.Path)
	if err != nil && !(op.MissingOK && errors.Is(err, fs.ErrNotExist)) {
		return fmt.Errorf("removing %s: %w", op.Path, err)
	}
	return nil
}

func (op *RemoveFileOp) Description() string {
	return fmt.Sprintf("Remove %s", op.Path)
}

// Skip reports whether validation found nothing to remove.
func (op *RemoveFileOp) Skip() bool {
	return op.missing
}
