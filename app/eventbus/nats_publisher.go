package eventbus

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

const uuidHeader = "Watermill-UUID"

// natsConn is the subset of *nats.Conn the publisher needs.
type natsConn interface {
	PublishMsg(m *nc.Msg) error
	Drain() error
}

// NatsPublisher implements the Watermill Publisher interface over core NATS.
type NatsPublisher struct {
	conn   natsConn
	logger watermill.LoggerAdapter
}

// NewNatsPublisher connects to natsURL and returns a publisher that forwards events as
// NATS messages, one subject per topic.
func NewNatsPublisher(natsURL string, logger watermill.LoggerAdapter, opts ...nc.Option) (*NatsPublisher, error) {
	logger.Info("Connecting to NATS for publisher", watermill.LogFields{"url": natsURL})

	reconnectOpts := []nc.Option{
		nc.Name("retro-arcade"),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
	}
	reconnectOpts = append(reconnectOpts, opts...)

	conn, err := nc.Connect(natsURL, reconnectOpts...)
	if err != nil {
		logger.Error("Failed to connect to NATS", err, nil)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Connected to NATS for publisher", nil)

	return newNatsPublisher(conn, logger), nil
}

func newNatsPublisher(conn natsConn, logger watermill.LoggerAdapter) *NatsPublisher {
	return &NatsPublisher{conn: conn, logger: logger}
}

// Publish implements the message.Publisher interface.
func (p *NatsPublisher) Publish(topic string, messages ...*message.Message) error {
	p.logger.Debug("Forwarding messages to NATS", watermill.LogFields{"topic": topic, "count": len(messages)})
	for _, msg := range messages {
		m := nc.NewMsg(topic)
		m.Data = msg.Payload
		m.Header.Set(uuidHeader, msg.UUID)
		for k, v := range msg.Metadata {
			m.Header.Set(k, v)
		}
		if err := p.conn.PublishMsg(m); err != nil {
			return fmt.Errorf("failed to publish message to NATS: %w", err)
		}
	}
	return nil
}

// Close drains the connection so buffered messages are flushed.
func (p *NatsPublisher) Close() error {
	p.logger.Info("Closing NATS publisher connection", nil)
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}
