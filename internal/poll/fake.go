package poll

import (
	"errors"
	"time"
)

// ErrExhausted is returned by FakePoller.Wait once the script runs out.
// The event loop treats a failed wait as unrecoverable, so this lets
// tests run a bounded number of cycles and then observe a clean exit.
var ErrExhausted = errors.New("poll: fake script exhausted")

// FakePoller returns scripted readiness results for test assertions.
type FakePoller struct {
	// Script contains successive Wait results.
	Script [][]int

	// Added records every registered descriptor.
	Added []int

	// AddError, if set, is returned by Add.
	AddError error

	// Waits counts Wait calls.
	Waits int

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakePoller creates a FakePoller with the given scripted results.
func NewFakePoller(script ...[]int) *FakePoller {
	return &FakePoller{Script: script}
}

// Add records the descriptor.
func (f *FakePoller) Add(fd int) error {
	if f.AddError != nil {
		return f.AddError
	}
	f.Added = append(f.Added, fd)
	return nil
}

// Wait returns the next scripted result, or ErrExhausted.
func (f *FakePoller) Wait(timeout time.Duration) ([]int, error) {
	f.Waits++
	if f.index >= len(f.Script) {
		return nil, ErrExhausted
	}
	fds := f.Script[f.index]
	f.index++
	return fds, nil
}

// Close marks the poller as closed.
func (f *FakePoller) Close() error {
	f.Closed = true
	return nil
}
