package notify

import (
	"log"
	"syscall"

	"golang.org/x/sys/unix"
)

// Finder resolves the companion process pids by executable name.
type Finder interface {
	Find(target string) ([]int, error)
}

// Signaler delivers one signal to one pid.
type Signaler interface {
	Signal(pid int, sig syscall.Signal) error
}

// KillSignaler delivers signals with kill(2).
type KillSignaler struct{}

// Signal sends sig to pid.
func (KillSignaler) Signal(pid int, sig syscall.Signal) error {
	return unix.Kill(pid, sig)
}

// Dispatcher owns the cached companion pid set and delivers
// notifications to it. The cache is lazily built on the first
// notification and rebuilt after any delivery failure, which is how a
// restarted companion (new pid) is picked up. Owned by the event loop
// goroutine; not safe for concurrent use.
type Dispatcher struct {
	target   string
	finder   Finder
	signaler Signaler
	pids     []int
}

// NewDispatcher creates a Dispatcher for the given companion executable
// name.
func NewDispatcher(target string, finder Finder, signaler Signaler) *Dispatcher {
	return &Dispatcher{target: target, finder: finder, signaler: signaler}
}

// Notify delivers kind's signal to every cached companion pid,
// resolving the set first if the cache is empty. Any delivery failure
// discards the whole cache so the next notification re-resolves;
// remaining pids in the batch are still attempted. Never blocks on the
// companion.
func (d *Dispatcher) Notify(kind Kind) {
	if len(d.pids) == 0 {
		pids, err := d.finder.Find(d.target)
		if err != nil {
			log.Printf("notify: resolve %q: %v", d.target, err)
			return
		}
		if len(pids) == 0 {
			log.Printf("notify: no %q process found", d.target)
			return
		}
		for _, pid := range pids {
			log.Printf("notify: found %q pid %d", d.target, pid)
		}
		d.pids = pids
	}

	stale := false
	for _, pid := range d.pids {
		if err := d.signaler.Signal(pid, kind.Signal()); err != nil {
			log.Printf("notify: %v to pid %d: %v", kind, pid, err)
			stale = true
		}
	}
	if stale {
		d.pids = nil
	}
}

// Cached returns the currently cached pids. Empty means the next
// notification will re-resolve.
func (d *Dispatcher) Cached() []int { return d.pids }
