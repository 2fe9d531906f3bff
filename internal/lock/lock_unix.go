//go:build !windows

package lock

import "syscall"

// Holder reports the PID recorded in the lock file and whether that process
// is still alive.
func (l *WorkspaceLock) Holder() (int, bool) {
	pid, err := l.readPID()
	if err != nil {
		return 0, false
	}
	// Signal 0 tests if the process exists without sending a signal.
	err = syscall.Kill(pid, 0)
	return pid, err == nil
}
