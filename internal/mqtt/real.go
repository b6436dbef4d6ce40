package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// replayCapacity bounds how many messages queue up while the broker is
// unreachable. Button presses are sparse; this covers hours of outage.
const replayCapacity = 64

// RealPublisher publishes to an actual MQTT broker. Connection loss is
// absorbed: messages queue locally and replay when the client
// reconnects, so a flaky broker never stalls the event loop.
type RealPublisher struct {
	client paho.Client

	mu    sync.Mutex
	queue *replayQueue
}

// NewRealPublisher creates a publisher for the given broker. The
// connection is established in the background with retry; presses that
// happen before it comes up are queued.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{queue: newReplayQueue(replayCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("button-relay").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) { p.replay() })

	p.client = paho.NewClient(opts)

	token := p.client.Connect()
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			log.Printf("mqtt: connect to %s: %v", broker, err)
		}
	}()

	return p
}

// Publish sends a press event to the broker, queueing it if the
// connection is down.
func (p *RealPublisher) Publish(event PressEvent) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0: a lost press report is not worth a redelivery dance.
	return p.send(Topic, 0, false, payload)
}

// PublishSystem sends a lifecycle event to the broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 so startup/shutdown markers survive a shaky link.
	return p.send(TopicSystem, 1, event.Retained, payload)
}

func (p *RealPublisher) send(topic string, qos byte, retained bool, payload []byte) error {
	p.mu.Lock()
	if !p.client.IsConnected() {
		p.queue.push(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		n := p.queue.len()
		p.mu.Unlock()
		log.Printf("mqtt: disconnected, queued message (%d pending)", n)
		return nil
	}
	p.mu.Unlock()

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// replay flushes the queue after a (re)connect. Runs on the paho
// client's handler goroutine.
func (p *RealPublisher) replay() {
	p.mu.Lock()
	msgs := p.queue.drain()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: connected, replaying %d queued messages", len(msgs))
	for _, m := range msgs {
		token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			log.Printf("mqtt: replay: %v", token.Error())
		}
	}
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker, allowing in-flight messages a
// moment to flush.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
