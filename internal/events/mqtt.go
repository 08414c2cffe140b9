package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/ui"
)

const publishTimeout = 5 * time.Second

// Client is the subset of the paho client used for publishing
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// MqttPublisher forwards events to an MQTT broker.
// Publish only enqueues, the broker is talked to by Run, so a slow broker never stalls the caller.
// When the queue is full the oldest event is dropped.
type MqttPublisher struct {
	client Client
	topic  string
	queue  chan Event

	dropMu  sync.Mutex
	dropped int
}

// NewMqttPublisher connects to the configured broker. Connecting is retried in the
// background, so an unreachable broker does not prevent startup.
func NewMqttPublisher(config configuration.EventsConfig) *MqttPublisher {
	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetUsername(config.Username).
		SetPassword(config.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c paho.Client) {
			ui.Info("Connected to MQTT broker %s", config.Broker)
		}).
		SetConnectionLostHandler(func(c paho.Client, err error) {
			ui.Warning("Lost connection to MQTT broker %s: %v", config.Broker, err)
		})

	client := paho.NewClient(opts)
	client.Connect()

	return NewMqttPublisherWithClient(client, config.Topic, config.QueueSize)
}

func NewMqttPublisherWithClient(client Client, topic string, queueSize int) *MqttPublisher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &MqttPublisher{
		client: client,
		topic:  topic,
		queue:  make(chan Event, queueSize),
	}
}

func (p *MqttPublisher) Publish(event Event) {
	for {
		select {
		case p.queue <- event:
			return
		default:
		}
		// queue is full, drop the oldest event
		select {
		case old := <-p.queue:
			p.dropMu.Lock()
			p.dropped++
			p.dropMu.Unlock()
			ui.Warning("Event queue full, dropping %s event from %s", old.Type, old.Timestamp.Format(time.RFC3339))
		default:
		}
	}
}

// Dropped returns the number of events dropped because the queue was full
func (p *MqttPublisher) Dropped() int {
	p.dropMu.Lock()
	defer p.dropMu.Unlock()
	return p.dropped
}

// Run sends queued events until the context is cancelled, then disconnects
func (p *MqttPublisher) Run(ctx context.Context) error {
	defer p.client.Disconnect(1000)
	for {
		select {
		case <-ctx.Done():
			p.flush()
			return nil
		case event := <-p.queue:
			if err := p.send(event); err != nil {
				ui.Warning("Failed to publish %s event: %v", event.Type, err)
			}
		}
	}
}

// flush tries to deliver events still queued at shutdown
func (p *MqttPublisher) flush() {
	for {
		select {
		case event := <-p.queue:
			if err := p.send(event); err != nil {
				ui.Warning("Failed to publish %s event: %v", event.Type, err)
				return
			}
		default:
			return
		}
	}
}

func (p *MqttPublisher) send(event Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 1 (at-least-once), not retained
	token := p.client.Publish(p.topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
