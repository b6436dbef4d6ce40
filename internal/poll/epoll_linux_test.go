//go:build linux

package poll

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestEpollTimeoutReturnsEmpty(t *testing.T) {
	p, err := NewEpoll()
	if err != nil {
		t.Fatalf("NewEpoll: %v", err)
	}
	defer p.Close()

	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	if err := p.Add(fds[0]); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Only EPOLLPRI is requested and a pipe never raises it, so the
	// bounded wait must come back empty rather than hang or error.
	start := time.Now()
	ready, err := p.Wait(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(ready) != 0 {
		t.Errorf("expected no ready fds, got %v", ready)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait did not honor timeout: took %v", elapsed)
	}
}

func TestEpollAddBadFd(t *testing.T) {
	p, err := NewEpoll()
	if err != nil {
		t.Fatalf("NewEpoll: %v", err)
	}
	defer p.Close()

	if err := p.Add(-1); err == nil {
		t.Error("expected error adding invalid descriptor")
	}
}
