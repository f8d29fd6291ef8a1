// Package fileops applies batches of file changes with a validate-first
// pipeline.
//
// Every change is an Operation. Execute validates the whole batch before
// executing any of it, so a missing or unreadable file aborts the run
// before anything on disk is touched:
//
//	ops := []fileops.Operation{
//	    &patch.FileOp{Path: "inlist_project", Passes: [][]patch.Rule{rules}},
//	    &fileops.RemoveFileOp{Path: "star", MissingOK: true},
//	}
//	report, err := fileops.Execute(ctx, ops, fileops.ExecuteOptions{DryRun: true})
//
// Dry runs print each operation's description instead of executing it.
// With ShowDiff set, operations that implement Previewer also print
// their diff, on dry runs and real runs alike.
//
// Execution is not transactional: if the process dies part-way through,
// some files are updated and others are not.
package fileops
