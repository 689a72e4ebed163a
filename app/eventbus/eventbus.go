package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus publishes events in-process and hands them to watermill subscribers.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Bus is an in-process EventBus backed by a watermill gochannel. When a forward
// publisher is configured every event is also sent there after local delivery.
type Bus struct {
	local   *gochannel.GoChannel
	forward message.Publisher
	logger  *slog.Logger
}

// NewEventBus creates a Bus. forward may be nil.
func NewEventBus(logger *slog.Logger, forward message.Publisher) *Bus {
	return &Bus{
		local: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		),
		forward: forward,
		logger:  logger,
	}
}

// Publish delivers messages to local subscribers. Forwarding failures are logged and
// never fail the publish: external fan-out is best effort.
func (b *Bus) Publish(topic string, messages ...*message.Message) error {
	if err := b.local.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	if b.forward != nil {
		if err := b.forward.Publish(topic, messages...); err != nil {
			b.logger.Warn("Failed to forward event",
				attr.String("topic", topic),
				attr.Error(err),
			)
		}
	}
	return nil
}

// Subscribe returns a channel of messages published to topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.local.Subscribe(ctx, topic)
}

// Close closes the local pub/sub and the forward publisher.
func (b *Bus) Close() error {
	var errs []error
	if err := b.local.Close(); err != nil {
		errs = append(errs, fmt.Errorf("local pubsub: %w", err))
	}
	if b.forward != nil {
		if err := b.forward.Close(); err != nil {
			errs = append(errs, fmt.Errorf("forward publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}

var marshaler = cqrs.JSONMarshaler{}

// NewMessage encodes payload as a JSON watermill message. correlationID, when set,
// is carried in the message metadata.
func NewMessage(payload any, correlationID string) (*message.Message, error) {
	msg, err := marshaler.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}
	return msg, nil
}

// Decode unmarshals a message produced by NewMessage into v.
func Decode(msg *message.Message, v any) error {
	if err := marshaler.Unmarshal(msg, v); err != nil {
		return fmt.Errorf("failed to unmarshal event %s: %w", msg.UUID, err)
	}
	return nil
}

// NewRouter creates the watermill router that runs module event handlers.
func NewRouter(logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)
	return router, nil
}
