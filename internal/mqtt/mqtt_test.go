package mqtt

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormatPayload(t *testing.T) {
	event := PressEvent{
		Timestamp: time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		Line:      2,
		Kind:      "select",
		Signal:    "SIGUSR2",
		Targets:   1,
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var decoded Payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	b := decoded.Button
	if b.Timestamp != "2024-06-01T12:30:00Z" {
		t.Errorf("timestamp = %q, want 2024-06-01T12:30:00Z", b.Timestamp)
	}
	if b.Line != 2 || b.Kind != "select" || b.Signal != "SIGUSR2" || b.Targets != 1 {
		t.Errorf("button payload = %+v", b)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var decoded SystemPayload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.System.Event != "SHUTDOWN" || decoded.System.Reason != "SIGTERM" {
		t.Errorf("system payload = %+v", decoded.System)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	event := SystemEvent{Event: "STARTUP", RawPayload: raw}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := PressEvent{Timestamp: time.Now(), Line: 0, Kind: "shift", Signal: "SIGUSR1", Targets: 1}
	if err := f.Publish(event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(f.Events) != 1 || f.Events[0].Kind != "shift" {
		t.Errorf("events = %+v", f.Events)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("payloads = %d, want 1", len(f.Payloads))
	}
}
