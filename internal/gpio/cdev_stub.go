//go:build !linux

package gpio

import "errors"

// CdevWatcher is not available on non-Linux platforms.
type CdevWatcher struct{}

// NewCdevWatcher returns an error on non-Linux platforms.
func NewCdevWatcher(chipName string, lines []int, edge Edge) (*CdevWatcher, error) {
	return nil, errors.New("gpio: character device backend requires Linux")
}

// Presses is not implemented on non-Linux platforms.
func (w *CdevWatcher) Presses() <-chan int { return nil }

// Close is not implemented on non-Linux platforms.
func (w *CdevWatcher) Close() error { return nil }
