// Package mqtt publishes button telemetry with abstraction for testing.
// Telemetry is optional and strictly observational: the watcher never
// takes a control decision from broker state.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for button press events.
const Topic = "home/oled/buttons/events"

// TopicSystem is the MQTT topic for watcher lifecycle events.
const TopicSystem = "home/oled/buttons/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a press event to the broker.
	// Returns error if publishing fails (must not crash the process).
	Publish(event PressEvent) error

	// PublishSystem sends a watcher lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// PressEvent is one button press relayed to the companion.
type PressEvent struct {
	Timestamp time.Time
	Line      int    // GPIO line number
	Kind      string // notification kind name
	Signal    string // delivered signal, e.g. "SIGUSR1"
	Targets   int    // companion pids the signal went to
}

// SystemEvent represents a watcher lifecycle event.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g. "SIGTERM" (shutdown only)
	RawPayload []byte // pre-formatted JSON; if set, used verbatim
	Retained   bool   // whether the broker should retain the message
}

// Payload is the press event message structure.
type Payload struct {
	Button ButtonPayload `json:"button"`
}

// ButtonPayload contains the press details.
type ButtonPayload struct {
	Timestamp string `json:"timestamp"`
	Line      int    `json:"line"`
	Kind      string `json:"kind"`
	Signal    string `json:"signal"`
	Targets   int    `json:"targets"`
}

// FormatPayload creates the JSON payload for a press event.
func FormatPayload(event PressEvent) ([]byte, error) {
	payload := Payload{
		Button: ButtonPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Line:      event.Line,
			Kind:      event.Kind,
			Signal:    event.Signal,
			Targets:   event.Targets,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the lifecycle message structure for simple events
// that carry no status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
// If event.RawPayload is set it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
