// Package proc locates the companion display process in the live
// process table.
package proc

import (
	"fmt"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/process"
)

// MaxPids caps how many matching pids one scan returns. Matches beyond
// the cap are silently dropped rather than growing the result.
const MaxPids = 128

// Locator scans the process table for a target executable name.
type Locator struct {
	pids func() ([]int32, error)
	exe  func(pid int32) (string, error)
}

// NewLocator returns a Locator backed by the live process table.
func NewLocator() *Locator {
	return &Locator{
		pids: process.Pids,
		exe: func(pid int32) (string, error) {
			p, err := process.NewProcess(pid)
			if err != nil {
				return "", err
			}
			return p.Exe()
		},
	}
}

// Find returns the pids whose executable base name matches target,
// capped at MaxPids. Entries whose executable cannot be resolved — the
// process exited mid-scan, a kernel task with no image, insufficient
// privilege — are skipped; that is an expected race, not an error.
// Failing to enumerate the table at all is returned to the caller.
func (l *Locator) Find(target string) ([]int, error) {
	pids, err := l.pids()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	var found []int
	for _, pid := range pids {
		path, err := l.exe(pid)
		if err != nil || path == "" {
			continue
		}
		if !Matches(filepath.Base(path), target) {
			continue
		}
		found = append(found, int(pid))
		if len(found) == MaxPids {
			break
		}
	}
	return found, nil
}

// Matches reports whether a candidate executable name is the target
// program. The target must be a prefix of the candidate, and the
// character after the prefix must be absent or a non-identifier
// character: a target of "python3" matches "python3" and "python3.7"
// but not "python3x", which is a different program whose name merely
// starts the same way.
func Matches(name, target string) bool {
	if len(name) < len(target) || name[:len(target)] != target {
		return false
	}
	if len(name) == len(target) {
		return true
	}
	return !isIdentChar(name[len(target)])
}

func isIdentChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '_':
		return true
	}
	return false
}
