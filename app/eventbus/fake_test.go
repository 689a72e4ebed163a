package eventbus

import (
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// ------------------------
// Fake NATS connection
// ------------------------

type FakeNatsConn struct {
	trace []string
	sent  []*nc.Msg

	PublishMsgFunc func(m *nc.Msg) error
	DrainFunc      func() error
}

func (f *FakeNatsConn) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeNatsConn) PublishMsg(m *nc.Msg) error {
	f.record("PublishMsg")
	f.sent = append(f.sent, m)
	if f.PublishMsgFunc != nil {
		return f.PublishMsgFunc(m)
	}
	return nil
}

func (f *FakeNatsConn) Drain() error {
	f.record("Drain")
	if f.DrainFunc != nil {
		return f.DrainFunc()
	}
	return nil
}

func (f *FakeNatsConn) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ natsConn = (*FakeNatsConn)(nil)

// ------------------------
// Fake forward publisher
// ------------------------

type FakePublisher struct {
	topics []string

	PublishFunc func(topic string, messages ...*message.Message) error
	CloseFunc   func() error
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.topics = append(f.topics, topic)
	if f.PublishFunc != nil {
		return f.PublishFunc(topic, messages...)
	}
	return nil
}

func (f *FakePublisher) Close() error {
	if f.CloseFunc != nil {
		return f.CloseFunc()
	}
	return nil
}

var _ message.Publisher = (*FakePublisher)(nil)

var errBoom = errors.New("boom")
