package mqtt

import "log"

// queuedMsg holds a serialized message awaiting replay after the broker
// connection comes back.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// replayQueue is a fixed-capacity FIFO for messages produced while
// disconnected. The oldest message is dropped on overflow. Not safe for
// concurrent use — the publisher's mutex covers it.
type replayQueue struct {
	buf     []queuedMsg
	head    int // next write position
	count   int
	dropped int // messages lost to overflow since the last drain
}

func newReplayQueue(capacity int) *replayQueue {
	return &replayQueue{buf: make([]queuedMsg, capacity)}
}

func (q *replayQueue) push(msg queuedMsg) {
	if q.count == len(q.buf) {
		if q.dropped == 0 {
			log.Printf("mqtt: replay queue full (%d messages), dropping oldest", len(q.buf))
		}
		q.dropped++
		q.buf[q.head] = msg
		q.head = (q.head + 1) % len(q.buf)
		return
	}
	q.buf[q.head] = msg
	q.head = (q.head + 1) % len(q.buf)
	q.count++
}

// drain returns the queued messages oldest-first and empties the queue.
func (q *replayQueue) drain() []queuedMsg {
	if q.count == 0 {
		return nil
	}

	out := make([]queuedMsg, q.count)
	start := (q.head - q.count + len(q.buf)) % len(q.buf)
	for i := range out {
		out[i] = q.buf[(start+i)%len(q.buf)]
	}

	q.count = 0
	q.head = 0
	q.dropped = 0
	return out
}

func (q *replayQueue) len() int {
	return q.count
}
