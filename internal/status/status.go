// Package status tracks watcher state for telemetry payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/button-relay/internal/notify"
)

// Config contains watcher configuration echoed in telemetry.
type Config struct {
	Lines         [3]int
	Edge          string
	Backend       string
	PollTimeoutMs int64
	Target        string
	Broker        string
}

// PressCounts tracks deliveries per button since startup.
type PressCounts struct {
	Shift  int
	Select int
	Status int
}

// Total returns the number of presses across all buttons.
func (c PressCounts) Total() int {
	return c.Shift + c.Select + c.Status
}

// Snapshot is a point-in-time view of watcher state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Counts        PressCounts
	CompanionPids int
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the watcher started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable watcher state behind a mutex. The event loop
// writes; the MQTT client's connect handler may read concurrently.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// CountPress records one delivered notification.
func (t *Tracker) CountPress(kind notify.Kind) {
	t.mu.Lock()
	switch kind {
	case notify.KindShift:
		t.snap.Counts.Shift++
	case notify.KindSelect:
		t.snap.Counts.Select++
	case notify.KindStatus:
		t.snap.Counts.Status++
	}
	t.mu.Unlock()
}

// SetCompanionPids records how many companion pids are currently cached.
func (t *Tracker) SetCompanionPids(n int) {
	t.mu.Lock()
	t.snap.CompanionPids = n
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the watcher state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
