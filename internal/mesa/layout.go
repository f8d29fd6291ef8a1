package mesa

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Well-known files inside a model work directory.
const (
	RunControlFile = "rn"
	StartInlist    = "inlist_start"
	NohupFile      = "nohup.out"
	StarBinary     = "star"
	InlistPrefix   = "inlist"
)

// VersionFile is the version marker inside a MESA installation.
func VersionFile(mesaDir string) string {
	return filepath.Join(mesaDir, "data", "version_number")
}

// Makefile is the model's makefile.
func Makefile(modelDir string) string {
	return filepath.Join(modelDir, "make", "makefile")
}

// PatchTargets lists the files the parameter rules are applied to: every
// inlist* file directly in modelDir (sorted), then rn, then make/makefile.
// inlist_start, rn and the makefile are always listed, so a model missing
// one of them fails when the targets are read.
func PatchTargets(modelDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(modelDir, InlistPrefix+"*"))
	if err != nil {
		return nil, fmt.Errorf("listing inlists: %w", err)
	}
	sort.Strings(matches)

	start := filepath.Join(modelDir, StartInlist)
	targets := make([]string, 0, len(matches)+3)
	hasStart := false
	for _, path := range matches {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		hasStart = hasStart || path == start
		targets = append(targets, path)
	}
	if !hasStart {
		targets = append(targets, start)
	}
	return append(targets, filepath.Join(modelDir, RunControlFile), Makefile(modelDir)), nil
}

// FormatMass renders a mass the way the inlists expect: at least two
// decimals, more only when needed ("1.00", "1.25", "0.875").
func FormatMass(mass float64) string {
	return decimal(mass)
}

// FormatMetallicity renders Z as a Fortran double literal ("0.02d0",
// "0.014d0").
func FormatMetallicity(z float64) string {
	return decimal(z) + "d0"
}

func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + ".00"
	}
	if decimals := len(s) - dot - 1; decimals < 2 {
		s += strings.Repeat("0", 2-decimals)
	}
	return s
}
