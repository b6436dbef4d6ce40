package mqtt

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// Events contains all press events that were published.
	Events []PressEvent

	// Payloads contains the JSON payloads for press events.
	Payloads [][]byte

	// SystemEvents contains all lifecycle events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for lifecycle events.
	SystemPayloads [][]byte

	// PublishError, if set, is returned by Publish.
	PublishError error

	// PublishSystemError, if set, is returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the press event.
func (f *FakePublisher) Publish(event PressEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Events = append(f.Events, event)

	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishSystem records the lifecycle event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}
