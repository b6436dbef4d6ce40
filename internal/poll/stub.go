//go:build !linux

package poll

import (
	"errors"
	"time"
)

// Epoll is not available on non-Linux platforms.
type Epoll struct{}

// NewEpoll returns an error on non-Linux platforms.
func NewEpoll() (*Epoll, error) {
	return nil, errors.New("poll: epoll requires Linux")
}

// Add is not implemented on non-Linux platforms.
func (e *Epoll) Add(fd int) error { return errors.New("poll: not supported") }

// Wait is not implemented on non-Linux platforms.
func (e *Epoll) Wait(timeout time.Duration) ([]int, error) {
	return nil, errors.New("poll: not supported")
}

// Close is not implemented on non-Linux platforms.
func (e *Epoll) Close() error { return nil }
