// Package single enforces one watcher instance per machine via a
// pidfile.
package single

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning reports that a live instance holds the pidfile.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Acquire claims the pidfile at path. If the file names a live process
// the caller must exit; a stale pidfile left by a dead instance is
// replaced. The returned release func removes the pidfile.
func Acquire(path string) (release func(), err error) {
	if data, rerr := os.ReadFile(path); rerr == nil {
		pid, perr := strconv.Atoi(strings.TrimSpace(string(data)))
		if perr == nil && pid > 0 && alive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create pidfile directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("write pidfile: %w", err)
	}
	return func() { os.Remove(path) }, nil
}

// alive probes pid with signal 0. EPERM means the process exists but
// belongs to another user; that still counts as running.
func alive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
