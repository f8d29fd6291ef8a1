// Package clean removes the artifacts a MESA run leaves behind: run
// output, LOGS directories, cached data and compiled models.
package clean
