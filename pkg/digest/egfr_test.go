package digest_test

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepdigest/pkg/digest"
)

// loadVector reads a sequence followed by its expected peptides, one per line.
func loadVector(t testing.TB, name string) (string, map[string]struct{}) {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var seq string
	want := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seq == "" {
			seq = line
			continue
		}
		want[line] = struct{}{}
	}
	require.NoError(t, scanner.Err())
	require.NotEmpty(t, seq)

	return seq, want
}

func TestFull_EGFRTryptic(t *testing.T) {
	t.Parallel()

	seq, want := loadVector(t, "egfr_tryptic.txt")

	got := digest.Set(digest.Full(seq, 6, 30, digest.Trypsin(), 2, false))
	assert.Equal(t, want, got)
}

func TestPeptides_EGFRTryptic(t *testing.T) {
	t.Parallel()

	seq, want := loadVector(t, "egfr_tryptic.txt")

	opts := digest.DefaultOptions()
	opts.MaxLen = 30
	opts.Miscleavages = 2
	opts.MethionineCleavage = false

	peps, err := digest.Peptides(seq, opts)
	require.NoError(t, err)
	assert.Equal(t, want, digest.Set(peps))
}
