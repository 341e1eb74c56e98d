package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepdigest/pkg/fsutil"
)

// listDir returns the names in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		content  string
	}{
		{name: "new file", content: "PEPTIDEK\n"},
		{name: "overwrites existing", existing: "old\n", content: "PEPTIDEK\nAAR\n"},
		{name: "empty content", existing: "old\n", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "peptides.txt")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o600))
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte(tt.content), 0))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got))
			assert.Equal(t, []string{"peptides.txt"}, listDir(t, dir), "temp file left behind")
		})
	}
}

func TestWriteAtomic_Mode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}

	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomic_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	err := fsutil.WriteAtomic(ctx, filepath.Join(dir, "out.txt"), []byte("x"), 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, listDir(t, dir))
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	assert.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
}

func TestAtomicFile_AbortKeepsTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	f, err := fsutil.CreateAtomic(path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	_, err = f.Write([]byte("partial"))
	require.NoError(t, err)
	f.Abort()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))
	assert.Equal(t, []string{"report.json"}, listDir(t, dir))
}

func TestAtomicFile_ClosedAfterCommit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")

	f, err := fsutil.CreateAtomic(path, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	_, err = f.Write([]byte("more"))
	require.ErrorIs(t, err, fsutil.ErrClosed)
	require.ErrorIs(t, f.Commit(), fsutil.ErrClosed)

	// Abort after Commit must not remove the committed file.
	f.Abort()
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
