package notify

import "syscall"

// Delivery records one signal sent through a FakeSignaler.
type Delivery struct {
	Pid    int
	Signal syscall.Signal
}

// FakeSignaler records deliveries and can fail selected pids.
type FakeSignaler struct {
	// Deliveries contains every attempted delivery in order.
	Deliveries []Delivery

	// Fail maps pids whose delivery should error.
	Fail map[int]error
}

// NewFakeSignaler creates an empty FakeSignaler.
func NewFakeSignaler() *FakeSignaler {
	return &FakeSignaler{Fail: make(map[int]error)}
}

// Signal records the delivery, failing if the pid is marked.
func (f *FakeSignaler) Signal(pid int, sig syscall.Signal) error {
	f.Deliveries = append(f.Deliveries, Delivery{Pid: pid, Signal: sig})
	if err, ok := f.Fail[pid]; ok {
		return err
	}
	return nil
}

// FakeFinder returns scripted resolution results.
type FakeFinder struct {
	// Results contains successive Find results.
	Results [][]int

	// Err, if set, is returned by every Find call.
	Err error

	// Calls counts Find invocations.
	Calls int

	index int
}

// Find returns the next scripted result. Once exhausted, the last
// result repeats.
func (f *FakeFinder) Find(target string) ([]int, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Results) == 0 {
		return nil, nil
	}
	r := f.Results[f.index]
	if f.index < len(f.Results)-1 {
		f.index++
	}
	return r, nil
}
