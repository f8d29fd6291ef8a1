package clean

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/starling/internal/logger"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// newTree builds a model directory and MESA installation holding one or
// more files for every cleanup target, plus files that must survive.
func newTree(t *testing.T) (modelDir, mesaDir string) {
	t.Helper()
	modelDir = t.TempDir()
	mesaDir = t.TempDir()

	touch(t, filepath.Join(modelDir, "nohup.out"))
	touch(t, filepath.Join(modelDir, "LOGS", "history.data"))
	touch(t, filepath.Join(modelDir, "LOGS", "profile1.data"))
	touch(t, filepath.Join(modelDir, "LOGS_start", "history.data"))
	touch(t, filepath.Join(mesaDir, "data", "eosDT_data", "cache", "a.bin"))
	touch(t, filepath.Join(mesaDir, "data", "kap_data", "cache", "b.bin"))
	touch(t, filepath.Join(modelDir, ".mesa_temp_cache", "c.bin"))
	touch(t, filepath.Join(modelDir, "star"))
	touch(t, filepath.Join(modelDir, "zams.mod"))
	touch(t, filepath.Join(modelDir, "end_core_h_burn.mod"))

	touch(t, filepath.Join(modelDir, "inlist"))
	touch(t, filepath.Join(modelDir, "rn"))
	touch(t, filepath.Join(mesaDir, "data", "version_number"))
	return modelDir, mesaDir
}

func newCleaner(modelDir, mesaDir string, opts Options) *Cleaner {
	if opts.Writer == nil {
		opts.Writer = &bytes.Buffer{}
	}
	opts.Logger = logger.NewSilentLogger()
	return New(modelDir, mesaDir, opts)
}

func TestClean(t *testing.T) {
	modelDir, mesaDir := newTree(t)

	report, err := newCleaner(modelDir, mesaDir, Options{}).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(CategoryNohup))
	assert.Equal(t, 3, report.Count(CategoryLogs))
	assert.Equal(t, 3, report.Count(CategoryCache))
	assert.Equal(t, 1, report.Count(CategoryBinary))
	assert.Equal(t, 2, report.Count(CategoryModels))
	assert.Equal(t, 10, report.Total())
	assert.Equal(t, 10, report.Removed)
	assert.Equal(t, 0, report.Failed)

	assert.False(t, exists(filepath.Join(modelDir, "nohup.out")))
	assert.False(t, exists(filepath.Join(modelDir, "LOGS", "history.data")))
	assert.False(t, exists(filepath.Join(mesaDir, "data", "kap_data", "cache", "b.bin")))
	assert.False(t, exists(filepath.Join(modelDir, "star")))
	assert.False(t, exists(filepath.Join(modelDir, "zams.mod")))

	// Directories stay, only their contents go
	assert.True(t, exists(filepath.Join(modelDir, "LOGS")))
	assert.True(t, exists(filepath.Join(mesaDir, "data", "kap_data", "cache")))

	assert.True(t, exists(filepath.Join(modelDir, "inlist")))
	assert.True(t, exists(filepath.Join(modelDir, "rn")))
	assert.True(t, exists(filepath.Join(mesaDir, "data", "version_number")))
}

func TestClean_NothingToDo(t *testing.T) {
	report, err := newCleaner(t.TempDir(), t.TempDir(), Options{}).Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total())
	assert.Len(t, report.Entries, 6)
}

func TestClean_DryRun(t *testing.T) {
	modelDir, mesaDir := newTree(t)
	var buf bytes.Buffer

	report, err := newCleaner(modelDir, mesaDir, Options{DryRun: true, Writer: &buf}).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, report.Total())
	assert.Equal(t, 0, report.Removed)
	assert.Contains(t, buf.String(), "[DRY RUN] Remove "+filepath.Join(modelDir, "zams.mod"))
	assert.True(t, exists(filepath.Join(modelDir, "zams.mod")))
	assert.True(t, exists(filepath.Join(modelDir, "nohup.out")))
}

func TestClean_SkipsDirectories(t *testing.T) {
	modelDir, mesaDir := t.TempDir(), t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(modelDir, "LOGS", "nested"), 0755))
	touch(t, filepath.Join(modelDir, "LOGS", "nested", "keep.data"))
	require.NoError(t, os.MkdirAll(filepath.Join(modelDir, "star"), 0755))

	report, err := newCleaner(modelDir, mesaDir, Options{}).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total())
	assert.True(t, exists(filepath.Join(modelDir, "LOGS", "nested", "keep.data")))
	assert.True(t, exists(filepath.Join(modelDir, "star")))
}

func TestClean_RemovesSymlinkNotTarget(t *testing.T) {
	modelDir, mesaDir := t.TempDir(), t.TempDir()
	target := filepath.Join(t.TempDir(), "shared.mod")
	touch(t, target)
	if err := os.Symlink(target, filepath.Join(modelDir, "zams.mod")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	report, err := newCleaner(modelDir, mesaDir, Options{}).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(CategoryModels))
	assert.False(t, exists(filepath.Join(modelDir, "zams.mod")))
	assert.True(t, exists(target))
}

func TestClean_Cancelled(t *testing.T) {
	modelDir, mesaDir := newTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCleaner(modelDir, mesaDir, Options{}).Clean(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, exists(filepath.Join(modelDir, "zams.mod")))
}

func TestTarget_Match(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "cache", "x"))
	touch(t, filepath.Join(root, "a", "b", "cache", "y"))
	touch(t, filepath.Join(root, "cache", "z"))

	files, err := Target{Root: root, Pattern: "**/cache/*"}.Match()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a", "cache", "x"),
		filepath.Join(root, "a", "b", "cache", "y"),
		filepath.Join(root, "cache", "z"),
	}, files)
}
