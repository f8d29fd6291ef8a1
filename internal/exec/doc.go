// Package exec runs the external scripts that ship with a MESA model.
//
// The package has three entry points on Executor:
//
//  1. Run - runs a command to completion, streaming its output
//  2. RunWithSpinner - runs a command behind a spinner, replaying the
//     captured output only if the command fails
//  3. Detach - starts a command in its own session with output appended
//     to a log file, and returns without waiting
//
// # Basic Usage
//
//	executor := exec.NewExecutor(&exec.Options{Dir: modelDir})
//	err := executor.Run(ctx, "/bin/sh", "-c", "./clean")
//
//	pid, err := executor.Detach(filepath.Join(modelDir, "nohup.out"), "./rn")
//
// Exit status is reported through the returned error; ExitCode extracts
// it for callers that only want to warn about a non-zero status.
//
// Commands are built through a replaceable constructor, so tests can
// substitute a helper process for the real scripts.
package exec
