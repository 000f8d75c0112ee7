package filelock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "response_file.rsp")

	require.NoError(t, AtomicWrite(path, []byte("first")))
	require.NoError(t, AtomicWrite(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestAtomicWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.rsp")
	err := AtomicWrite(path, []byte("x"))
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestLockAndWrite_KeepsLockFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.rsp")

	require.NoError(t, LockAndWrite(path, []byte("bundle --language all")))
	require.NoError(t, LockAndWrite(path, []byte("bundle --language python")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bundle --language python", string(data))
	assert.FileExists(t, path+LockSuffix)
}

func TestLockAndWrite_WaitsForHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.rsp")

	holder := New(path + LockSuffix)
	require.NoError(t, holder.Lock())

	done := make(chan error, 1)
	go func() {
		done <- LockAndWrite(path, []byte("bundle"))
	}()

	select {
	case err := <-done:
		t.Fatalf("write finished while the lock was held: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	assert.NoFileExists(t, path)

	require.NoError(t, holder.Unlock())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("write did not finish after the lock was released")
	}
	assert.FileExists(t, path)
}
