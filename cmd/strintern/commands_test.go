package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/strintern"
	"github.com/hupe1980/strintern/codec"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildAndQuery(t *testing.T) {
	store := "file://" + t.TempDir()

	out, err := run(t, "Elephant\nTiger\n\nElephant\n  Horse  \n", "build", "--store", store, "--name", "v1.sint")
	require.NoError(t, err)
	assert.Contains(t, out, "saved v1.sint: 3 strings")
	assert.Contains(t, out, "DISTINCT")

	out, err = run(t, "", "lookup", "--store", store, "Tiger", "Zebra")
	require.NoError(t, err)
	assert.Equal(t, "Tiger\t1\nZebra\tnot found\n", out)

	out, err = run(t, "", "resolve", "--store", store, "0", "2")
	require.NoError(t, err)
	assert.Equal(t, "0\tElephant\n2\tHorse\n", out)

	out, err = run(t, "", "resolve", "--store", store, "7")
	require.Error(t, err)
	assert.Equal(t, "7\tnot found\n", out)

	out, err = run(t, "", "dump", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "0\tElephant\n1\tTiger\n2\tHorse\n", out)

	out, err = run(t, "", "stats", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "v1.sint")
	assert.Contains(t, out, "binary")
	assert.Contains(t, out, "Compression")
	assert.Contains(t, out, "Strings")
}

func TestBuild_FilesAndAppend(t *testing.T) {
	dir := t.TempDir()
	store := "file://" + filepath.Join(dir, "snapshots")

	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("x\ny\nx\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("y\nz\n"), 0o600))

	out, err := run(t, "", "build", "--store", store, "--name", "v1.sint", "--codec", "binary", "--compression", "lz4", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "saved v1.sint: 3 strings")

	out, err = run(t, "", "build", "-q", "--append", "--store", store, "--name", "v2.sint", "--hasher", "xxhash", b)
	require.NoError(t, err)
	assert.Equal(t, 0, strings.Count(out, "SOURCE"))
	assert.Contains(t, out, "saved v2.sint: 3 strings")

	out, err = run(t, "w\n", "build", "-q", "--append", "--store", store, "--name", "v3.sint")
	require.NoError(t, err)
	assert.Contains(t, out, "saved v3.sint: 4 strings")

	out, err = run(t, "", "dump", "--store", store, "--name", "v1.sint")
	require.NoError(t, err)
	assert.Equal(t, "0\tx\n1\ty\n2\tz\n", out)
}

func TestBuild_InvalidUTF8(t *testing.T) {
	store := "file://" + t.TempDir()

	_, err := run(t, "\xff\nok\n", "build", "-q", "--store", store, "--name", "v1.sint")
	require.NoError(t, err)

	out, err := run(t, "", "dump", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "0\t\xff\n1\tok\n", out)

	_, err = run(t, "\xff\n", "build", "-q", "--store", store, "--name", "v2.sint", "--codec", "go-json")
	assert.ErrorIs(t, err, codec.ErrInvalidUTF8)
}

func TestQuery_NoSnapshot(t *testing.T) {
	store := "file://" + t.TempDir()

	_, err := run(t, "", "dump", "--store", store)
	require.ErrorIs(t, err, strintern.ErrSnapshotNotFound)

	_, err = run(t, "", "stats", "--store", store)
	require.ErrorIs(t, err, strintern.ErrSnapshotNotFound)
}

func TestInvalidFlags(t *testing.T) {
	store := "file://" + t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"compression", []string{"dump", "--store", store, "--compression", "brotli"}},
		{"codec", []string{"dump", "--store", store, "--codec", "xml"}},
		{"hasher", []string{"dump", "--store", store, "--hasher", "md5"}},
		{"log format", []string{"dump", "--store", store, "--log-format", "yaml"}},
		{"memory limit", []string{"dump", "--store", store, "--memory-limit", "lots"}},
		{"scheme", []string{"dump", "--store", "ftp://host/dir"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}
