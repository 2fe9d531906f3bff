package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLock_AcquireRelease(t *testing.T) {
	dir := t.TempDir()
	l := ForWorkspace(dir)

	require.NoError(t, l.Acquire())

	pid, running := l.Holder()
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, l.Release())
	_, err := os.Stat(l.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestWorkspaceLock_Path(t *testing.T) {
	l := ForWorkspace("/tmp/ws")
	assert.Equal(t, filepath.Join("/tmp/ws", FileName), l.Path)
}

func TestWorkspaceLock_Acquire_Reentrant(t *testing.T) {
	dir := t.TempDir()
	l := ForWorkspace(dir)

	require.NoError(t, l.Acquire())
	// Same process may re-acquire its own lock.
	assert.NoError(t, l.Acquire())
}

func TestWorkspaceLock_Acquire_StaleLock(t *testing.T) {
	dir := t.TempDir()
	l := ForWorkspace(dir)

	// Use a very high PID that almost certainly doesn't exist.
	require.NoError(t, os.WriteFile(l.Path, []byte("999999\n"), 0o644))

	err := l.Acquire()
	require.NoError(t, err)

	pid, running := l.Holder()
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)
}

func TestWorkspaceLock_Acquire_HeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	l := ForWorkspace(dir)

	// PID 1 is always alive on unix; skip if we can't see it.
	other := &WorkspaceLock{Path: l.Path}
	require.NoError(t, os.WriteFile(l.Path, []byte("1\n"), 0o644))
	if _, running := other.Holder(); !running {
		t.Skip("cannot observe PID 1 on this platform")
	}

	err := l.Acquire()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "workspace locked")
}

func TestWorkspaceLock_Holder_InvalidContent(t *testing.T) {
	dir := t.TempDir()
	l := ForWorkspace(dir)
	require.NoError(t, os.WriteFile(l.Path, []byte("not-a-number\n"), 0o644))

	pid, running := l.Holder()
	assert.Equal(t, 0, pid)
	assert.False(t, running)
}

func TestWorkspaceLock_Holder_NoFile(t *testing.T) {
	l := ForWorkspace(t.TempDir())

	pid, running := l.Holder()
	assert.Equal(t, 0, pid)
	assert.False(t, running)
}

func TestWorkspaceLock_RecordsOwnPID(t *testing.T) {
	dir := t.TempDir()
	l := ForWorkspace(dir)
	require.NoError(t, l.Acquire())

	data, err := os.ReadFile(l.Path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
}
