package uplink

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/itohio/godust/pkg/config"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// MQTT publishes raw payloads to a broker topic.
type MQTT struct {
	client mqtt.Client
	topic  string
}

// NewMQTT creates a client for the configured broker. Connect must be called
// before Send.
func NewMQTT(cfg config.UplinkConfig) *MQTT {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(30 * time.Second)

	return &MQTT{
		client: mqtt.NewClient(opts),
		topic:  cfg.Topic,
	}
}

// Connect establishes the broker connection.
func (u *MQTT) Connect() error {
	token := u.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

// Send publishes the payload bytes at QoS 1.
func (u *MQTT) Send(payload []byte) error {
	if !u.client.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	token := u.client.Publish(u.topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout for topic %s", u.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (u *MQTT) Close() error {
	u.client.Disconnect(250)
	return nil
}
