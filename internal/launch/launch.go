// Package launch starts the companion display process.
package launch

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// Launcher starts the companion exactly once per watcher lifetime. The
// spawned process is detached: nothing joins it and no state is shared
// with the event loop, which learns about companion death only through
// signal delivery failures.
type Launcher struct {
	// Interpreter runs the companion script, e.g. "python3".
	Interpreter string

	// Script is the companion script path, relative to the work
	// directory.
	Script string

	// LogPath receives the companion's combined stdout and stderr.
	LogPath string

	once sync.Once
}

// StartOnce launches the companion from workDir. A failed launch is
// logged, never escalated: the watcher keeps running and simply finds
// no companion to signal until one appears by other means. Subsequent
// calls are no-ops.
func (l *Launcher) StartOnce(workDir string) {
	l.once.Do(func() {
		if err := l.start(workDir); err != nil {
			log.Printf("launch: %v", err)
		}
	})
}

func (l *Launcher) start(workDir string) error {
	logf, err := os.OpenFile(l.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open companion log %s: %w", l.LogPath, err)
	}

	cmd := exec.Command(l.Interpreter, l.Script)
	cmd.Dir = workDir
	cmd.Stdout = logf
	cmd.Stderr = logf

	if err := cmd.Start(); err != nil {
		logf.Close()
		return fmt.Errorf("start %s %s: %w", l.Interpreter, l.Script, err)
	}
	// The child holds its own copy of the log descriptor.
	logf.Close()

	log.Printf("launch: started %s %s (pid %d)", l.Interpreter, l.Script, cmd.Process.Pid)

	go func() {
		// Reap the child so it never lingers as a zombie. Its exit
		// status is not a control input.
		_ = cmd.Wait()
	}()
	return nil
}

// WorkDir derives the companion's working directory from the location
// of the running binary.
func WorkDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve own executable: %w", err)
	}
	return filepath.Dir(exe), nil
}
