package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runOutput struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, args ...string) runOutput {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return runOutput{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

// baseArgs points the run at dir with no config file and no colour.
func baseArgs(t *testing.T, dir string) []string {
	return []string{
		"--config-path", filepath.Join(t.TempDir(), "absent"),
		"--directory", dir,
		"--color", "off",
		"--ui", "off",
	}
}

func TestCompletePairExitsZero(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@claim{X}\n@proof{X}\n"})

	res := execute(t, baseArgs(t, dir)...)
	require.NoError(t, res.err)
	assert.Equal(t, "== 1 files scanned, 1 tag ids found.\n== Looks Good To Me :)\n", res.stdout)
	assert.NotContains(t, res.stdout, "ERROR")
	assert.NotContains(t, res.stdout, "WARN")
}

func TestProofWithoutClaimFails(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@proof{Y}"})

	res := execute(t, baseArgs(t, dir)...)
	require.True(t, errors.Is(res.err, errIncomplete), "err = %v", res.err)
	assert.Contains(t, res.stdout, "ERROR: a proof without a claim;\n\tTag id: Y\n")
	assert.Contains(t, res.stdout, "== Incomplete claims found :(")
}

func TestDuplicateClaimWarnsOnly(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@claim{Z}\n@claim{Z}\n@proof{Z}\n"})

	res := execute(t, baseArgs(t, dir)...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, " WARN: multiple claims with same id;")
	assert.NotContains(t, res.stdout, "ERROR")

	strict := execute(t, append(baseArgs(t, dir), "--warnings-as-errors")...)
	assert.ErrorIs(t, strict.err, errIncomplete)
}

func TestExcludedFileWithUnderscoreFlags(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.md":        "@claim{A}\n@proof{A}\n",
		"excluded.md": "@claim{B}\n",
	})

	res := execute(t,
		"--config_path", filepath.Join(t.TempDir(), "absent"),
		"--directory", dir,
		"--include_pattern", "*.md",
		"--exclude_pattern", "**/excluded.md",
		"--color", "off",
	)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "== 1 files scanned, 1 tag ids found.")
}

func TestOutputReport(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt": "@claim{ok} @claim{lonely} @claim{dup} @claim{dup}",
		"b.txt": "@proof{ok} @proof{dup} @proof{orphan}",
	})
	reportPath := filepath.Join(t.TempDir(), "out", "report.json")

	res := execute(t, append(baseArgs(t, dir), "--output-report", reportPath)...)
	require.ErrorIs(t, res.err, errIncomplete)
	assert.Contains(t, res.stdout, "== Writing output report @ "+reportPath)

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.EqualValues(t, 4, doc["number_tags"])
	assert.Equal(t, []any{"lonely", "orphan"}, doc["error_tags"])
	assert.Equal(t, []any{"dup"}, doc["warn_tags"])
	dup, ok := doc["dup"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, dup["claims"], 2)
	assert.Len(t, dup["proofs"], 1)
}

func TestQuietHidesReportMessage(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@claim{X}@proof{X}"})
	reportPath := filepath.Join(t.TempDir(), "r.yaml")

	res := execute(t, append(baseArgs(t, dir), "--output-report", reportPath, "--quiet")...)
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "Writing output report")
	assert.FileExists(t, reportPath)
}

func TestConfigFileAndCLIPrecedence(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.md":  "@claim{A}\n@proof{A}\n",
		"b.txt": "@claim{B}\n",
	})
	cfgPath := filepath.Join(t.TempDir(), ".provable_claims")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"include_pattern": ["*.md"], "directory": "/nonexistent"}`), 0o644))

	res := execute(t, "--config-path", cfgPath, "--directory", dir, "--color", "off")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "== 1 files scanned, 1 tag ids found.")
}

func TestMalformedConfigIsFatal(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{`), 0o644))

	res := execute(t, "--config-path", cfgPath, "--directory", t.TempDir())
	require.Error(t, res.err)
	assert.False(t, errors.Is(res.err, errIncomplete))
	assert.Contains(t, res.err.Error(), "config_invalid")
}

func TestUnknownKeyAndMissingFileWarn(t *testing.T) {
	dir := t.TempDir()
	res := execute(t, baseArgs(t, dir)...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "does not exist")

	cfgPath := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"bogus": 1}`), 0o644))
	res = execute(t, "--config-path", cfgPath, "--directory", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "bogus")
	assert.Contains(t, res.stderr, "level=WARN")
}

func TestJSONFormat(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@claim{X}"})

	res := execute(t, append(baseArgs(t, dir), "--format", "json")...)
	require.ErrorIs(t, res.err, errIncomplete)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, []any{"X"}, doc["error_tags"])
	assert.Contains(t, res.stderr, "== Incomplete claims found :(")
}

func TestTimings(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@claim{X}@proof{X}"})
	res := execute(t, append(baseArgs(t, dir), "--timings")...)
	require.NoError(t, res.err)
	for _, phase := range []string{"config", "walk", "scan", "aggregate", "total"} {
		assert.Contains(t, res.stderr, phase)
	}
}

func TestVerboseLogsConfig(t *testing.T) {
	dir := t.TempDir()
	res := execute(t, append(baseArgs(t, dir), "--verbose")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "effective configuration")
}

func TestBadFlagValues(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"--color", "sometimes"},
		{"--ui", "maybe"},
		{"--format", "xml"},
		{"--log-level", "loud"},
		{"--jobs", "-1"},
	} {
		res := execute(t, append(baseArgs(t, dir), args...)...)
		assert.Error(t, res.err, strings.Join(args, " "))
		assert.False(t, errors.Is(res.err, errIncomplete))
	}
}

func TestConfigCommand(t *testing.T) {
	res := execute(t, "config", "--config-path", filepath.Join(t.TempDir(), "absent"), "--jobs", "3", "--exclude-pattern", "a,b")
	require.NoError(t, res.err)

	var dump map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &dump))
	assert.EqualValues(t, 3, dump["jobs"])
	assert.Equal(t, []any{"a", "b"}, dump["exclude_pattern"])
	assert.Nil(t, dump["output_report"])
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, res.err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &payload))
	assert.Equal(t, "provable", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.NotEmpty(t, payload.GitCommit)

	res = execute(t, "version", "--color", "off")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "provable "), res.stdout)

	res = execute(t, "version", "--format", "yaml")
	assert.Error(t, res.err)
}

func TestEmptyIDTOMLReportFailsBeforeWriting(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "@claim{}@proof{}"})
	reportPath := filepath.Join(t.TempDir(), "r.toml")

	res := execute(t, append(baseArgs(t, dir), "--output-report", reportPath)...)
	require.Error(t, res.err)
	assert.False(t, errors.Is(res.err, errIncomplete))
	assert.Contains(t, res.err.Error(), "empty tag id")
	assert.NotContains(t, res.stdout, "Writing output report")
	assert.NoFileExists(t, reportPath)
}

func TestInvalidUIMode(t *testing.T) {
	dir := t.TempDir()
	args := append(baseArgs(t, dir), "--ui", "sometimes")

	res := execute(t, args...)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid --ui value")
	assert.Contains(t, res.err.Error(), "auto, on or off")
}
