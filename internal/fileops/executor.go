package fileops

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
)

// ExecuteOptions configures execution behavior.
type ExecuteOptions struct {
	DryRun   bool
	ShowDiff bool      // Print previews for Previewer operations
	Quiet    bool      // Suppress per-operation lines
	Writer   io.Writer // Where to write output (defaults to os.Stdout)

	// ContinueOnError keeps executing after a failed operation and
	// returns every failure together. Validation still stops at the
	// first error.
	ContinueOnError bool
}

// Report counts what Execute did.
type Report struct {
	Applied int
	Skipped int
	Failed  int
}

// Execute validates every operation, then executes them in order.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) (Report, error) {
	var report Report
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	// Phase 1: validate everything before touching the disk
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := op.Validate(ctx); err != nil {
			return report, fmt.Errorf("validation failed: %w", err)
		}
	}

	// Phase 2: execute or report
	var merr *multierror.Error
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if s, ok := op.(Skipper); ok && s.Skip() {
			report.Skipped++
			continue
		}

		if opts.DryRun {
			opts.printf("✓ [DRY RUN] %s\n", op.Description())
			if p, ok := op.(Previewer); ok && opts.ShowDiff && !opts.Quiet {
				fmt.Fprint(opts.Writer, p.Preview())
			}
			report.Applied++
			continue
		}

		if p, ok := op.(Previewer); ok && opts.ShowDiff && !opts.Quiet {
			fmt.Fprint(opts.Writer, p.Preview())
		}
		if err := op.Execute(ctx); err != nil {
			report.Failed++
			if !opts.ContinueOnError {
				return report, fmt.Errorf("execution failed: %w", err)
			}
			merr = multierror.Append(merr, err)
			continue
		}
		opts.printf("✓ %s\n", op.Description())
		report.Applied++
	}

	return report, merr.ErrorOrNil()
}

func (o ExecuteOptions) printf(format string, args ...any) {
	if !o.Quiet {
		fmt.Fprintf(o.Writer, format, args...)
	}
}
