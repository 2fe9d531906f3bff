//go:build windows

package lock

import (
	"os"
	"syscall"
)

// Holder reports the PID recorded in the lock file and whether that process
// is still alive. On Windows, uses os.FindProcess + a zero signal equivalent.
func (l *WorkspaceLock) Holder() (int, bool) {
	pid, err := l.readPID()
	if err != nil {
		return 0, false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return pid, false
	}
	// On Windows, FindProcess always succeeds; test with Signal(0) equivalent.
	err = proc.Signal(syscall.Signal(0))
	return pid, err == nil
}
