// Package lock guards a working directory against concurrent agent runs.
// Two agents editing the same tree at once will trample each other's files,
// so the run command takes a workspace lock before the loop starts.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the lock file created inside the workspace.
const FileName = ".crew.lock"

// WorkspaceLock is a PID-file lock: the lock holds only while the recorded
// process is alive, so a crashed run never wedges the workspace.
type WorkspaceLock struct {
	Path string
}

// ForWorkspace returns the lock for the given working directory.
func ForWorkspace(workdir string) *WorkspaceLock {
	return &WorkspaceLock{Path: filepath.Join(workdir, FileName)}
}

// Acquire takes the lock, replacing a stale lock left by a dead process.
// It fails if another live process holds the workspace.
func (l *WorkspaceLock) Acquire() error {
	if pid, running := l.Holder(); running && pid != os.Getpid() {
		return fmt.Errorf("workspace locked by running process %d (remove %s if stale)", pid, l.Path)
	}
	return os.WriteFile(l.Path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}

// Release removes the lock file.
func (l *WorkspaceLock) Release() error {
	return os.Remove(l.Path)
}

// readPID reads the holder PID from the lock file.
func (l *WorkspaceLock) readPID() (int, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid lock file content: %w", err)
	}
	return pid, nil
}
