package catalogservice

import (
	"context"
	"sync"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	trace    []string
	messages []*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{trace: []string{}}
}

func (f *FakePublisher) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Publish:" + topic)
	f.messages = append(f.messages, messages...)
	if f.PublishFunc != nil {
		return f.PublishFunc(topic, messages...)
	}
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	mu    sync.Mutex
	trace []string
}

func (f *FakeMetrics) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeMetrics) RecordOperationAttempt(_ context.Context, operation, _ string) {
	f.record("attempt:" + operation)
}

func (f *FakeMetrics) RecordOperationSuccess(_ context.Context, operation, _ string) {
	f.record("success:" + operation)
}

func (f *FakeMetrics) RecordOperationFailure(_ context.Context, operation, _ string) {
	f.record("failure:" + operation)
}

func (f *FakeMetrics) RecordOperationDuration(_ context.Context, operation, _ string, _ time.Duration) {
	f.record("duration:" + operation)
}

func (f *FakeMetrics) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ metrics.ServiceMetrics = (*FakeMetrics)(nil)
