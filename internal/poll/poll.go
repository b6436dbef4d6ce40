// Package poll multiplexes edge-triggered readiness across the GPIO
// value descriptors. The real implementation uses epoll(7); the fake
// drives the event loop in tests.
package poll

import "time"

// Poller waits for edge notifications on a set of descriptors.
type Poller interface {
	// Add registers a descriptor for edge-triggered readiness.
	Add(fd int) error

	// Wait blocks for at most timeout and returns every descriptor
	// that became ready, in no particular order.
	Wait(timeout time.Duration) ([]int, error)

	// Close releases the poller.
	Close() error
}
