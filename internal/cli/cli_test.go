package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/pulsesim/internal/app"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-presses", "10", "-log-format", "JSON", "modules.txt"}, out)
	require.NoError(t, err)
	require.False(t, exit)
	want := app.DefaultConfig()
	want.Input = "modules.txt"
	want.Presses = 10
	want.LogFormat = "json"
	require.Equal(t, &want, cfg)
	require.Empty(t, out.String())
}

func TestParse_configFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.hcl")
	src := `
input    = "from_file.txt"
terminal = "output"
presses  = 7
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	cfg, _, err := Parse([]string{"-config", path, "-presses", "3"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "from_file.txt", cfg.Input)
	require.Equal(t, "output", cfg.Terminal)
	require.Equal(t, 3, cfg.Presses)

	cfg, _, err = Parse([]string{"-config", path, "other.txt"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "other.txt", cfg.Input)
	require.Equal(t, 7, cfg.Presses)

	_, _, err = Parse([]string{"-config", filepath.Join(dir, "missing.hcl")}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_exit(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"-h"}, {}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err)
		require.True(t, exit)
		require.Nil(t, cfg)
		require.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_errors(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"unknown flag": {"-workers", "3", "in.txt"},
		"bad presses":  {"-presses", "many", "in.txt"},
		"bad level":    {"-log-level", "verbose", "in.txt"},
		"bad format":   {"-log-format", "xml", "in.txt"},
		"bad budget":   {"-max-presses", "0", "in.txt"},
	}
	for name, args := range tests {
		_, exit, err := Parse(args, &bytes.Buffer{})
		require.False(t, exit, name)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, name)
		require.Equal(t, 2, exitErr.Code, name)
	}
}
