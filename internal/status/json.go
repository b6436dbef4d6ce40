package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status payloads.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	CompanionPids int        `json:"companion_pids"`
	MQTT          MQTTStatus `json:"mqtt"`
	Presses       CountsJSON `json:"press_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of press counts.
type CountsJSON struct {
	Shift  int `json:"shift"`
	Select int `json:"select"`
	Status int `json:"status"`
	Total  int `json:"total"`
}

// ConfigJSON is the JSON representation of watcher config.
type ConfigJSON struct {
	Lines         [3]int `json:"lines"`
	Edge          string `json:"edge"`
	Backend       string `json:"backend"`
	PollTimeoutMs int64  `json:"poll_timeout_ms"`
	Target        string `json:"target"`
	Broker        string `json:"broker,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		CompanionPids: snap.CompanionPids,
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Presses: CountsJSON{
			Shift:  snap.Counts.Shift,
			Select: snap.Counts.Select,
			Status: snap.Counts.Status,
			Total:  snap.Counts.Total(),
		},
		Config: ConfigJSON{
			Lines:         snap.Config.Lines,
			Edge:          snap.Config.Edge,
			Backend:       snap.Config.Backend,
			PollTimeoutMs: snap.Config.PollTimeoutMs,
			Target:        snap.Config.Target,
			Broker:        snap.Config.Broker,
		},
	}
}

// FormatStatusEvent returns the JSON status payload for an MQTT system
// event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
