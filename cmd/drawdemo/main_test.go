package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/drawdemo/internal/document"
	"github.com/jask/drawdemo/internal/editor"
)

// runCLI executes the root command with args against an isolated config and
// data directory.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("DRAWDEMO_CONFIG", filepath.Join(dir, "config.toml"))
	configPath, openName, openFile = "", "", ""
	snapshotWidth, snapshotHeight = defaultWidth, defaultHeight
	generateShapes, generateSeed, resetConfirmed = 12, 0, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSnapshotPrintsFrame(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "snapshot", "--width", "90", "--height", "24")
	require.NoError(t, err)
	require.Contains(t, out, "Designer")
	require.Contains(t, out, "box1")
	require.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 24)

	_, err = runCLI(t, dir, "snapshot", "--width", "0")
	require.Error(t, err)
}

func TestImportListExportRemove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	m, err := editor.Seed().DeleteShape("box2")
	require.NoError(t, err)
	require.NoError(t, document.WriteFile(src, m))

	out, err := runCLI(t, dir, "import", src, "sketch")
	require.NoError(t, err)
	require.Contains(t, out, `as "sketch" (1 shapes)`)

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, "sketch")

	dst := filepath.Join(dir, "out.json")
	_, err = runCLI(t, dir, "export", "sketch", dst)
	require.NoError(t, err)
	got, err := document.ReadFile(dst)
	require.NoError(t, err)
	require.True(t, got.Equal(m))

	out, err = runCLI(t, dir, "snapshot", "--open", "sketch")
	require.NoError(t, err)
	require.Contains(t, out, "1 shapes")

	_, err = runCLI(t, dir, "rm", "sketch")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "rm", "sketch")
	require.Error(t, err)

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, "no drawings")
}

func TestGenerateAndReset(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "generate", "noise", "--shapes", "7", "--seed", "42")
	require.NoError(t, err)
	require.Contains(t, out, `generated "noise" (7 shapes, seed 42)`)

	_, err = runCLI(t, dir, "generate", "more")
	require.NoError(t, err)

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, "noise")
	require.Contains(t, out, "more")

	_, err = runCLI(t, dir, "reset")
	require.ErrorContains(t, err, "--yes")

	out, err = runCLI(t, dir, "reset", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "removed 2 drawings")

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	require.Contains(t, out, "no drawings")
}
