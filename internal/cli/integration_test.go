package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepdigest/internal/cli"
)

// testConfig writes a config file that pins the enzyme so the tests do not
// pick up a project config from the working tree.
func testConfig(t *testing.T, content string) string {
	t.Helper()

	if content == "" {
		content = "enzyme: trypsin\n"
	}
	path := filepath.Join(t.TempDir(), ".pepdigest.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_DigestSeqText(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, stderr, err := execute(t, "",
		"digest", "--config", cfg, "--color", "never",
		"--min-length", "1",
		"--seq", "PEPTIDEKAAGGR",
	)
	require.NoError(t, err)

	assert.Equal(t, "PEPTIDEK\nAAGGR\n", stdout)
	assert.Contains(t, stderr, "2 peptides (2 unique) from 1 sequence")
}

func TestIntegration_DigestPositionsAndNoSummary(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, stderr, err := execute(t, "",
		"digest", "--config", cfg, "--color", "never",
		"--min-length", "1", "--positions", "--no-summary",
		"--seq", "PEPTIDEKAAGGR",
	)
	require.NoError(t, err)

	assert.Equal(t, "1-8\tPEPTIDEK\n9-13\tAAGGR\n", stdout)
	assert.Empty(t, stderr)
}

func TestIntegration_DigestFileTSV(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")
	input := filepath.Join(t.TempDir(), "proteins.seq")
	require.NoError(t, os.WriteFile(input, []byte("# two proteins\np1\tPEPTIDEKAAR\np2\tGGK\n"), 0o644))

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg,
		"--min-length", "1", "--miscleavages", "1",
		"--format", "tsv",
		input,
	)
	require.NoError(t, err)

	want := "id\tstart\tend\tlength\tmiscleavages\tsequence\n" +
		"p1\t1\t8\t8\t0\tPEPTIDEK\n" +
		"p1\t1\t11\t11\t1\tPEPTIDEKAAR\n" +
		"p1\t9\t11\t3\t0\tAAR\n" +
		"p2\t1\t3\t3\t0\tGGK\n"
	assert.Equal(t, want, stdout)
}

func TestIntegration_DigestStdin(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, _, err := execute(t, "PEPTIDEKAAGGR\n\nGGKAAR\n",
		"digest", "--config", cfg,
		"--min-length", "1", "--format", "tsv", "--no-header",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "stdin:1\t"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "\tAAGGR"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "stdin:3\t"), lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "\tAAR"), lines[3])
}

func TestIntegration_DigestJSONWithEnzyme(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg,
		"--enzyme", "asp-n", "--min-length", "1",
		"--format", "json",
		"--seq", "AAADBBBDCC",
	)
	require.NoError(t, err)

	var out struct {
		Options struct {
			Mode  string `json:"mode"`
			Rules struct {
				Post []string `json:"post"`
			} `json:"rules"`
		} `json:"options"`
		Records []struct {
			ID       string `json:"id"`
			Peptides []struct {
				Sequence string `json:"sequence"`
				Start    int    `json:"start"`
				End      int    `json:"end"`
			} `json:"peptides"`
		} `json:"records"`
		Summary struct {
			Peptides int `json:"peptides"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "full", out.Options.Mode)
	assert.Equal(t, []string{"D"}, out.Options.Rules.Post)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "seq:1", out.Records[0].ID)

	var seqs []string
	for _, p := range out.Records[0].Peptides {
		seqs = append(seqs, p.Sequence)
	}
	assert.Equal(t, []string{"AAA", "DBBB", "DCC"}, seqs)
	assert.Equal(t, 4, out.Records[0].Peptides[1].Start)
	assert.Equal(t, 7, out.Records[0].Peptides[1].End)
	assert.Equal(t, 3, out.Summary.Peptides)
}

func TestIntegration_DigestCustomRules(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg, "--no-summary",
		"--pre", "W", "--min-length", "1",
		"--seq", "AAWKRBB",
	)
	require.NoError(t, err)

	// Custom rules replace trypsin entirely, so K and R no longer cut.
	assert.Equal(t, "AAW\nKRBB\n", stdout)
}

func TestIntegration_DigestOutputFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")
	dir := t.TempDir()
	output := filepath.Join(dir, "peptides.tsv")
	require.NoError(t, os.WriteFile(output, []byte("stale\n"), 0o644))

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg,
		"--min-length", "1", "--format", "tsv", "--no-header",
		"--output", output,
		"--seq", "GGKAAR",
	)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "seq:1\t1\t3\t3\t0\tGGK\nseq:1\t4\t6\t3\t0\tAAR\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestIntegration_DigestOutputKeptOnFailure(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")
	output := filepath.Join(t.TempDir(), "peptides.txt")
	require.NoError(t, os.WriteFile(output, []byte("previous\n"), 0o644))

	_, _, err := execute(t, "PEPT IDEK\n",
		"digest", "--config", cfg, "--output", output,
	)
	require.Error(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(content))
}

func TestIntegration_ConfigFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "enzyme: lys-c\nmin_length: 6\n")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg, "--no-summary",
		"--seq", "AAAAKBBBBBBRCCK",
	)
	require.NoError(t, err)

	assert.Equal(t, "BBBBBBRCCK\n", stdout)
}

func TestIntegration_ConfigFileOverriddenByFlags(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "enzyme: lys-c\nmin_length: 6\n")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg, "--no-summary",
		"--enzyme", "trypsin", "--min-length", "3",
		"--seq", "AAAAKBBBBBBRCCK",
	)
	require.NoError(t, err)

	assert.Equal(t, "AAAAK\nBBBBBBR\nCCK\n", stdout)
}

//nolint:paralleltest // t.Setenv cannot be used with t.Parallel.
func TestIntegration_EnvironmentOverrides(t *testing.T) {
	cfg := testConfig(t, "")
	t.Setenv("PEPDIGEST_MISCLEAVAGES", "1")
	t.Setenv("PEPDIGEST_MIN_LENGTH", "1")
	t.Setenv("PEPDIGEST_ENZYME", "lys-c")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg, "--no-summary",
		"--enzyme", "trypsin",
		"--seq", "PEPTIDEKAAR",
	)
	require.NoError(t, err)

	// Flags beat the environment; the environment beats the config file.
	assert.Equal(t, "PEPTIDEK\nPEPTIDEKAAR\nAAR\n", stdout)
}

func TestIntegration_DigestUnique(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg, "--no-summary",
		"--min-length", "1", "--unique",
		"--seq", "AAKAAKAAK",
	)
	require.NoError(t, err)

	assert.Equal(t, "AAK\n", stdout)
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")

	stdout, _, err := execute(t, "",
		"digest", "--config", cfg, "--color", "never",
		"--min-length", "1", "--format", "summary",
		"--seq", "PEPTIDEKAAGGR", "--seq", "GGK",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Sequences")
	assert.Contains(t, stdout, "Peptide Lengths")
	assert.Contains(t, stdout, "Summary")
	assert.Contains(t, stdout, "Digestion complete")
}

func TestIntegration_DigestErrors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.seq")

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
	}{
		{
			name:     "unknown enzyme",
			args:     []string{"--enzyme", "no-such-enzyme", "--seq", "PEPTIDEK"},
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "zero min length",
			args:     []string{"--min-length", "0", "--seq", "PEPTIDEK"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "negative jobs",
			args:     []string{"--jobs", "-1", "--seq", "PEPTIDEK"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "invalid color mode",
			args:     []string{"--color", "purple", "--seq", "PEPTIDEK"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"--bogus"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "invalid digestion mode",
			args:     []string{"--digestion", "partial", "--seq", "PEPTIDEK"},
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "malformed stdin record",
			stdin:    "PEPT IDEK\n",
			args:     []string{},
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "stdin record with empty sequence",
			stdin:    "P01\t\n",
			args:     []string{},
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "missing input file",
			args:     []string{missing},
			wantCode: cli.ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t, "")
			args := append([]string{"digest", "--config", cfg}, tt.args...)

			stdout, _, err := execute(t, tt.stdin, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCodeFromError(err), err.Error())
			assert.Empty(t, stdout)
		})
	}
}

func TestIntegration_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "enzyme: trypsin\nunknown_key: 1\n")

	_, _, err := execute(t, "", "digest", "--config", cfg, "--seq", "PEPTIDEK")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_EnzymesJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "enzymes", "--format", "json")
	require.NoError(t, err)

	var enzymes []struct {
		Name    string   `json:"name"`
		Pre     []string `json:"pre"`
		NotPost []string `json:"notPost"`
		Post    []string `json:"post"`
		Aliases []string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &enzymes))
	require.NotEmpty(t, enzymes)

	byName := make(map[string]int, len(enzymes))
	for i, e := range enzymes {
		byName[e.Name] = i
	}

	require.Contains(t, byName, "trypsin")
	trypsin := enzymes[byName["trypsin"]]
	assert.Equal(t, []string{"K", "R"}, trypsin.Pre)
	assert.Equal(t, []string{"P"}, trypsin.NotPost)
	assert.Empty(t, trypsin.Post)

	require.Contains(t, byName, "asp-n")
	assert.Equal(t, []string{"D"}, enzymes[byName["asp-n"]].Post)
}

func TestIntegration_EnzymesText(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "enzymes")
	require.NoError(t, err)

	assert.Contains(t, stdout, "available enzymes")
	assert.Contains(t, stdout, "trypsin")
	assert.Contains(t, stdout, "chymotrypsin")
}

func TestIntegration_EnzymesInvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "enzymes", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_InitWritesUsableConfig(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".pepdigest.yml")

	_, _, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)
	require.FileExists(t, output)

	// The generated file is a valid config for digest.
	stdout, _, err := execute(t, "",
		"digest", "--config", output, "--no-summary",
		"--seq", "PEPTIDEKAAGGR",
	)
	require.NoError(t, err)
	assert.Equal(t, "PEPTIDEK\n", stdout)

	// A second init refuses to overwrite without --force.
	_, _, err = execute(t, "", "init", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "init", "--output", output, "--force", "--full")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "chymotrypsin")
}

func TestIntegration_InitInvalidFormat(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "config.toml")

	_, _, err := execute(t, "", "init", "--format", "toml", "--output", output)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
	assert.NoFileExists(t, output)
}

func TestIntegration_DigestHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "digest", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "pepdigest digest [files...]")
	assert.Contains(t, stdout, "-e, --enzyme string")
	assert.Contains(t, stdout, `(default "trypsin")`)
	assert.Contains(t, stdout, "Global Flags:")
	assert.Contains(t, stdout, "--config string")
	assert.Contains(t, stdout, "Environment:")
	assert.Contains(t, stdout, "PEPDIGEST_ENZYME")
	assert.Contains(t, stdout, "PEPDIGEST_MISCLEAVAGES")

	stdout, _, err = execute(t, "", "enzymes", "--help")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Environment:")
}

func TestIntegration_RootHelpListsCommands(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Available Commands:")
	for _, name := range []string{"digest", "enzymes", "config", "init", "version"} {
		assert.Contains(t, stdout, name)
	}
	assert.Contains(t, stdout, "pepdigest [command] --help")
	assert.NotContains(t, stdout, "Environment:")
}

func TestIntegration_ConfigShowsMergedSettings(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "enzyme: lys-c\nmiscleavages: 1\n")

	stdout, _, err := execute(t, "", "config", "--config", cfg, "--no-env")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Effective pepdigest configuration, merged from:\n")
	assert.Contains(t, stdout, "#   "+cfg+"\n")
	assert.Contains(t, stdout, "enzyme: lys-c\n")
	assert.Contains(t, stdout, "miscleavages: 1\n")
	assert.Contains(t, stdout, "min_length: 6\n")
}

func TestIntegration_ConfigRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "digestion: partial\n")

	_, _, err := execute(t, "", "config", "--config", cfg, "--no-env")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_VersionShort(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test\n", stdout)
}
