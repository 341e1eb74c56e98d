package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepdigest/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// stop the upward search here
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".pepdigest.yml"), `
enzyme: lys-c
miscleavages: 2
methionine_cleavage: false
jobs: 2
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, "lys-c", result.Config.Enzyme)
	assert.Equal(t, 2, result.Config.MiscleavagesValue())
	assert.False(t, result.Config.MethionineCleavageValue())
	assert.Equal(t, 2, result.Config.Jobs)
	// untouched fields keep their defaults
	assert.Equal(t, 6, result.Config.MinLength)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".pepdigest.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, "pepdigest.yaml"), "digestion: semi\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolatedOptions(nested))
	require.NoError(t, err)
	assert.Equal(t, config.DigestionSemi, result.Config.Digestion)
	assert.Equal(t, filepath.Join(root, "pepdigest.yaml"), result.Paths.Project)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".pepdigest.yml"), "enzyme: arg-c\nmax_length: 20\n")
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "enzyme: asp-n\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "asp-n", result.Config.Enzyme)
	// the project file is skipped when --config is given
	assert.Equal(t, 50, result.Config.MaxLength)
	assert.Equal(t, []string{customPath}, result.LoadedFrom)
	assert.Equal(t, customPath, result.Paths.Explicit)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".pepdigest.yml"), `
enzyme: lys-c
miscleavages: 2
jobs: 2
`)

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Miscleavages: config.Ptr(0),
		Jobs:         8,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "lys-c", result.Config.Enzyme)
	assert.Equal(t, 0, result.Config.MiscleavagesValue())
	assert.Equal(t, 8, result.Config.Jobs)
}

func TestLoad_EnvBetweenFilesAndCLI(t *testing.T) {
	t.Setenv("PEPDIGEST_ENZYME", "glu-c")
	t.Setenv("PEPDIGEST_MAX_LENGTH", "25")

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".pepdigest.yml"), "enzyme: lys-c\nmax_length: 40\n")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{MaxLength: 30}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "glu-c", result.Config.Enzyme)
	assert.Equal(t, 30, result.Config.MaxLength)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown enzyme", content: "enzyme: papain\n", wantErr: "unknown enzyme"},
		{name: "bad digestion", content: "digestion: partial\n", wantErr: "invalid digestion"},
		{name: "unknown key", content: "enzym: trypsin\n", wantErr: "parse yaml"},
		{name: "max below min", content: "min_length: 10\nmax_length: 8\n", wantErr: "below min_length"},
		{name: "multi-character residue", content: "rules:\n  pre: [KR]\n", wantErr: "rules.pre[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".pepdigest.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MergedValidation(t *testing.T) {
	t.Parallel()

	// each file is valid alone; the merged bounds are not
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".pepdigest.yml"), "min_length: 20\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{MaxLength: 10}

	_, err := Load(context.Background(), opts)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "max_length", validationErr.Field)
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".pepdigest.yml"), "rules:\n  not_post: [P]\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no pre or post residues")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".pepdigest.yml")

	require.NoError(t, WriteConfig(context.Background(), path, []byte("enzyme: trypsin\n"), false))
	err := WriteConfig(context.Background(), path, []byte("enzyme: lys-c\n"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteConfig(context.Background(), path, []byte("enzyme: lys-c\n"), true))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "enzyme: lys-c\n", string(content))
}
