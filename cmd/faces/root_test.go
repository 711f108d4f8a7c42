package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

const testTheme = `name: test
styles:
  default:
    foreground: black
    background: white
  link:
    foreground: blue
    underline: true
  warning:
    inherit: link
    weight: bold
aliases:
  hyperlink: link
surfaces:
  - name: term
    depth: 256
    capabilities: [all]
  - name: mono
    depth: none
`

func writeTestTheme(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

// execute runs the root command and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-16"

	output, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, output, "1.2.3")
	require.Contains(t, output, "abcdef1")
	require.Contains(t, output, "2026-10-16")
	require.Contains(t, output, "20 basic faces, merge depth 200")
}

func TestVersionCommandJSON(t *testing.T) {
	originalVersion, originalCommit := version, commit
	t.Cleanup(func() {
		version, commit = originalVersion, originalCommit
	})
	version = "1.2.3"
	commit = "abcdef1"

	output, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info buildInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "abcdef1", info.Commit)
	require.Equal(t, runtime.Version(), info.Go)
	require.Equal(t, 20, info.BasicFaces)
}

func TestUnknownSurface(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)
	_, err := execute(t, "--theme", theme, "--surface", "nowhere", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nowhere")
	require.Contains(t, err.Error(), "term")
}

func TestBrokenTheme(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, "styles:\n  link:\n    colour: red\n")
	_, err := execute(t, "--theme", theme, "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to load theme")
}
