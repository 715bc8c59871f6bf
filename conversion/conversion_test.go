package conversion

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes an executable shell script standing in for odgi.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "odgi")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestGFAToODGI(t *testing.T) {
	// The fake copies its -g input to its -o output.
	exe := fakeTool(t, `
if [ "$1" != "build" ]; then echo "bad subcommand $1" >&2; exit 2; fi
cp "$3" "$5"
`)

	dir := t.TempDir()
	gfaPath := filepath.Join(dir, "in.gfa")
	odgiPath := filepath.Join(dir, "out.og")
	require.NoError(t, os.WriteFile(gfaPath, []byte("S\t1\tACGT\n"), 0o644))

	r := &Runner{Exe: exe}
	require.NoError(t, r.GFAToODGI(context.Background(), gfaPath, odgiPath))

	data, err := os.ReadFile(odgiPath)
	require.NoError(t, err)
	assert.Equal(t, "S\t1\tACGT\n", string(data))
}

func TestODGIToGFA(t *testing.T) {
	// The fake emits GFA on stdout, as `odgi view -g` does.
	exe := fakeTool(t, `
if [ "$1" != "view" ]; then echo "bad subcommand $1" >&2; exit 2; fi
printf 'S\t1\tGATTACA\n'
`)

	gfaPath := filepath.Join(t.TempDir(), "out.gfa")
	r := &Runner{Exe: exe}
	require.NoError(t, r.ODGIToGFA(context.Background(), "ignored.og", gfaPath))

	data, err := os.ReadFile(gfaPath)
	require.NoError(t, err)
	assert.Equal(t, "S\t1\tGATTACA\n", string(data))
}

func TestFailureCarriesStderr(t *testing.T) {
	exe := fakeTool(t, `echo "malformed GFA at line 3" >&2; exit 1`)

	r := &Runner{Exe: exe}
	err := r.GFAToODGI(context.Background(), "in.gfa", "out.og")
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "odgi build", cerr.Op)
	assert.Contains(t, cerr.Stderr, "malformed GFA at line 3")
	assert.Contains(t, err.Error(), "malformed GFA at line 3")
}

func TestMissingExecutable(t *testing.T) {
	r := &Runner{Exe: filepath.Join(t.TempDir(), "no-such-tool")}
	err := r.GFAToODGI(context.Background(), "in.gfa", "out.og")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "odgi build", cerr.Op)
}

func TestCanceledContext(t *testing.T) {
	exe := fakeTool(t, `sleep 10`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Exe: exe}
	err := r.GFAToODGI(ctx, "in.gfa", "out.og")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExeResolution(t *testing.T) {
	r := &Runner{Exe: "/opt/odgi/bin/odgi"}
	assert.Equal(t, "/opt/odgi/bin/odgi", r.exe())

	r = &Runner{}
	t.Setenv(EnvExe, "/env/odgi")
	assert.Equal(t, "/env/odgi", r.exe())

	t.Setenv(EnvExe, "")
	assert.Equal(t, DefaultExe, r.exe())
}
