package notify

import (
	"errors"
	"syscall"
	"testing"
)

func TestNotifyResolvesLazily(t *testing.T) {
	finder := &FakeFinder{Results: [][]int{{41, 42}}}
	signaler := NewFakeSignaler()
	d := NewDispatcher("python3", finder, signaler)

	if len(d.Cached()) != 0 {
		t.Fatal("cache should start empty")
	}

	d.Notify(KindShift)

	if finder.Calls != 1 {
		t.Errorf("Find called %d times, want 1", finder.Calls)
	}
	want := []Delivery{
		{Pid: 41, Signal: syscall.SIGUSR1},
		{Pid: 42, Signal: syscall.SIGUSR1},
	}
	if len(signaler.Deliveries) != len(want) {
		t.Fatalf("deliveries = %v, want %v", signaler.Deliveries, want)
	}
	for i, w := range want {
		if signaler.Deliveries[i] != w {
			t.Errorf("delivery %d = %v, want %v", i, signaler.Deliveries[i], w)
		}
	}
}

func TestNotifyCacheHit(t *testing.T) {
	finder := &FakeFinder{Results: [][]int{{41}}}
	signaler := NewFakeSignaler()
	d := NewDispatcher("python3", finder, signaler)

	d.Notify(KindSelect)
	d.Notify(KindSelect)

	if finder.Calls != 1 {
		t.Errorf("Find called %d times, want 1 (cache hit expected)", finder.Calls)
	}
	if len(signaler.Deliveries) != 2 {
		t.Errorf("got %d deliveries, want 2", len(signaler.Deliveries))
	}
}

func TestNotifyFailureInvalidatesCache(t *testing.T) {
	finder := &FakeFinder{Results: [][]int{{41, 42}, {51}}}
	signaler := NewFakeSignaler()
	signaler.Fail[41] = errors.New("no such process")
	d := NewDispatcher("python3", finder, signaler)

	d.Notify(KindStatus)

	if len(d.Cached()) != 0 {
		t.Fatalf("cache = %v, want empty after delivery failure", d.Cached())
	}
	// Partial delivery: the still-valid pid was attempted too.
	if len(signaler.Deliveries) != 2 {
		t.Errorf("got %d deliveries, want 2 (partial batch)", len(signaler.Deliveries))
	}

	// The very next notification re-resolves before delivering.
	d.Notify(KindStatus)
	if finder.Calls != 2 {
		t.Errorf("Find called %d times, want 2 (re-resolve expected)", finder.Calls)
	}
	last := signaler.Deliveries[len(signaler.Deliveries)-1]
	if last.Pid != 51 || last.Signal != syscall.SIGALRM {
		t.Errorf("last delivery = %v, want pid 51 SIGALRM", last)
	}
}

func TestNotifyNoCompanion(t *testing.T) {
	finder := &FakeFinder{} // resolves to nothing
	signaler := NewFakeSignaler()
	d := NewDispatcher("python3", finder, signaler)

	d.Notify(KindShift)

	if len(signaler.Deliveries) != 0 {
		t.Errorf("expected no deliveries, got %v", signaler.Deliveries)
	}
	// Unresolved stays unresolved: each notification scans again.
	d.Notify(KindShift)
	if finder.Calls != 2 {
		t.Errorf("Find called %d times, want 2", finder.Calls)
	}
}

func TestNotifyResolveError(t *testing.T) {
	finder := &FakeFinder{Err: errors.New("proc unavailable")}
	signaler := NewFakeSignaler()
	d := NewDispatcher("python3", finder, signaler)

	d.Notify(KindShift)

	if len(signaler.Deliveries) != 0 {
		t.Errorf("expected no deliveries, got %v", signaler.Deliveries)
	}
	if len(d.Cached()) != 0 {
		t.Error("cache must stay empty after a failed resolve")
	}
}
