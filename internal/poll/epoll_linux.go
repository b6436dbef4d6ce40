//go:build linux

package poll

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// maxEvents bounds one epoll_wait batch. Three lines are registered, so
// this never truncates.
const maxEvents = 8

// Epoll is the epoll(7) poller used on real hardware.
type Epoll struct {
	fd int
}

// NewEpoll creates the epoll instance.
func NewEpoll() (*Epoll, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}
	return &Epoll{fd: fd}, nil
}

// Add registers fd for edge-triggered readiness. Sysfs GPIO value files
// signal an edge as an exceptional condition, so EPOLLPRI is requested
// alongside EPOLLET.
func (e *Epoll) Add(fd int) error {
	ev := unix.EpollEvent{
		Events: unix.EPOLLPRI | unix.EPOLLET,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll_ctl add fd %d: %w", fd, err)
	}
	return nil
}

// Wait blocks for at most timeout and returns the descriptors that
// fired. A timeout with no events returns an empty result, not an
// error. EINTR restarts the wait.
func (e *Epoll) Wait(timeout time.Duration) ([]int, error) {
	msec := int(timeout / time.Millisecond)
	var events [maxEvents]unix.EpollEvent
	for {
		n, err := unix.EpollWait(e.fd, events[:], msec)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("epoll_wait: %w", err)
		}
		if n == 0 {
			return nil, nil
		}
		fds := make([]int, n)
		for i := 0; i < n; i++ {
			fds[i] = int(events[i].Fd)
		}
		return fds, nil
	}
}

// Close releases the epoll descriptor.
func (e *Epoll) Close() error {
	return unix.Close(e.fd)
}
