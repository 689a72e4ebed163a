package leaderboardservice

import (
	"sync"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
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

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, "Publish:"+topic)
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
// Fake Game Lookup
// ------------------------

type FakeGameLookup struct {
	FindFunc func(id catalogdomain.GameID) (catalogdomain.Game, bool)
}

func (f *FakeGameLookup) Find(id catalogdomain.GameID) (catalogdomain.Game, bool) {
	if f.FindFunc != nil {
		return f.FindFunc(id)
	}
	return catalogdomain.Game{}, false
}

var _ GameLookup = (*FakeGameLookup)(nil)
var _ GameLookup = (*catalogdomain.Catalog)(nil)
