// Package patch rewrites MESA text configuration files line by line.
//
// A Rule pairs a regular expression with a replacement template. Rules
// are tried in order against each line and the first one that matches
// is applied to every match in that line; later rules never see the
// line. Line terminators are kept as they were.
//
// FileOp wraps a single file as a fileops.Operation so that all targets
// are read and patched in memory before any of them is written:
//
//	ops, err := patch.ModelOps(params)
//	report, err := fileops.Execute(ctx, ops, fileops.ExecuteOptions{})
package patch
