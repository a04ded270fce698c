package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, Default.MkdirAll(dir, 0o755))

	f, err := Default.CreateTemp(dir, "blob-*")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	target := filepath.Join(dir, "blob")
	require.NoError(t, Default.Rename(f.Name(), target))

	info, err := Default.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	require.NoError(t, Default.Remove(target))
	_, err = Default.Stat(target)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFaultyFS_FailAfterBytes(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("snap", Fault{FailAfterBytes: 3})

	f, err := ffs.CreateTemp(t.TempDir(), "snap-*")
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.Write([]byte("cdef"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 1, n)

	info, err := ffs.Stat(f.Name())
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())
}

func TestFaultyFS_SyncCloseRename(t *testing.T) {
	boom := errors.New("boom")
	dir := t.TempDir()

	ffs := NewFaultyFS(nil)
	ffs.AddRule("sync", Fault{FailOnSync: true, Err: boom})
	ffs.AddRule("close", Fault{FailOnClose: true})
	ffs.AddRule("target", Fault{FailOnRename: true})

	f, err := ffs.CreateTemp(dir, "sync-*")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), boom)
	require.NoError(t, f.Close())

	f, err = ffs.CreateTemp(dir, "close-*")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ErrInjected)

	assert.ErrorIs(t, ffs.Rename(f.Name(), filepath.Join(dir, "target")), ErrInjected)
	require.NoError(t, ffs.Rename(f.Name(), filepath.Join(dir, "other")))

	assert.Equal(t, 2, ffs.Calls("create"))
	assert.Equal(t, 2, ffs.Calls("rename"))
}

func TestFaultyFS_NoRule(t *testing.T) {
	ffs := NewFaultyFS(nil)

	f, err := ffs.CreateTemp(t.TempDir(), "plain-*")
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 1<<16))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())
}
