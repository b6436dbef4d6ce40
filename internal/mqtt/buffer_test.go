package mqtt

import (
	"fmt"
	"testing"
)

func msg(i int) queuedMsg {
	return queuedMsg{topic: Topic, payload: []byte(fmt.Sprintf("m%d", i))}
}

func TestReplayQueueFIFO(t *testing.T) {
	q := newReplayQueue(4)

	for i := 0; i < 3; i++ {
		q.push(msg(i))
	}
	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}

	out := q.drain()
	if len(out) != 3 {
		t.Fatalf("drained %d messages, want 3", len(out))
	}
	for i, m := range out {
		if string(m.payload) != fmt.Sprintf("m%d", i) {
			t.Errorf("message %d = %q, want m%d", i, m.payload, i)
		}
	}
	if q.len() != 0 {
		t.Errorf("len after drain = %d, want 0", q.len())
	}
}

func TestReplayQueueOverflowDropsOldest(t *testing.T) {
	q := newReplayQueue(3)

	for i := 0; i < 5; i++ {
		q.push(msg(i))
	}

	out := q.drain()
	if len(out) != 3 {
		t.Fatalf("drained %d messages, want 3", len(out))
	}
	// Oldest two (m0, m1) were dropped.
	for i, m := range out {
		want := fmt.Sprintf("m%d", i+2)
		if string(m.payload) != want {
			t.Errorf("message %d = %q, want %q", i, m.payload, want)
		}
	}
}

func TestReplayQueueDrainEmpty(t *testing.T) {
	q := newReplayQueue(2)
	if out := q.drain(); out != nil {
		t.Errorf("drain of empty queue = %v, want nil", out)
	}
}

func TestReplayQueueReuseAfterDrain(t *testing.T) {
	q := newReplayQueue(2)
	q.push(msg(0))
	q.drain()

	q.push(msg(1))
	out := q.drain()
	if len(out) != 1 || string(out[0].payload) != "m1" {
		t.Errorf("after reuse: %v", out)
	}
}
