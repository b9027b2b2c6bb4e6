// Package eventbus is the in-process publish/subscribe hub that carries
// entity change events from the status transition handlers to live
// subscribers and background consumers.
package eventbus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/domain"
)

const DefaultBufferSize = 64

var (
	ErrClosed       = errors.New("event bus is closed")
	ErrUnknownTopic = errors.New("unknown event topic")
)

// Event is one published message. Origin is the id of the bus instance that
// first published it; relayed events keep the remote origin.
type Event struct {
	Topic       domain.EventTopic `json:"topic"`
	Payload     any               `json:"payload"`
	Origin      string            `json:"origin"`
	PublishedAt time.Time         `json:"published_at"`
}

// Publisher is the side of the bus the services depend on.
type Publisher interface {
	Publish(ctx context.Context, topic domain.EventTopic, payload any) error
}

// Subscriber is the side of the bus the subscription streams depend on.
type Subscriber interface {
	Subscribe(ctx context.Context, topic domain.EventTopic) (<-chan Event, error)
}

type Option func(*Bus)

// WithBufferSize sets the per-subscriber buffer. Non-positive values keep the default.
func WithBufferSize(size int) Option {
	return func(b *Bus) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

type subscription struct {
	ch chan Event
}

// Bus fans out each published event to every live subscriber of its topic.
// Per topic and per subscriber, events are delivered in publish order. A
// subscriber whose buffer is full misses the event.
type Bus struct {
	id         string
	bufferSize int

	mu     sync.RWMutex
	subs   map[domain.EventTopic]map[*subscription]struct{}
	closed bool
	done   chan struct{}

	hooks []func(Event)
}

func New(opts ...Option) *Bus {
	b := &Bus{
		id:         uuid.NewString(),
		bufferSize: DefaultBufferSize,
		subs:       make(map[domain.EventTopic]map[*subscription]struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID identifies this bus instance across relayed deployments.
func (b *Bus) ID() string {
	return b.id
}

func (b *Bus) Publish(ctx context.Context, topic domain.EventTopic, payload any) error {
	return b.deliver(ctx, Event{
		Topic:       topic,
		Payload:     payload,
		Origin:      b.id,
		PublishedAt: time.Now().UTC(),
	})
}

// deliver is shared by local publishes and relayed events.
func (b *Bus) deliver(ctx context.Context, event Event) error {
	if !event.Topic.IsValid() {
		return ErrUnknownTopic
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	for sub := range b.subs[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			log.Warn().
				Str("topic", string(event.Topic)).
				Int("buffer", cap(sub.ch)).
				Msg("subscriber buffer full, event dropped")
		}
	}

	for _, hook := range b.hooks {
		hook(event)
	}
	return nil
}

// Subscribe registers a subscriber for topic. The returned channel is closed
// once ctx is done or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic domain.EventTopic) (<-chan Event, error) {
	if !topic.IsValid() {
		return nil, ErrUnknownTopic
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	sub := &subscription{ch: make(chan Event, b.bufferSize)}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*subscription]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(topic, sub)
		case <-b.done:
		}
	}()

	return sub.ch, nil
}

func (b *Bus) unsubscribe(topic domain.EventTopic, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[topic][sub]; !ok {
		return
	}
	delete(b.subs[topic], sub)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
	close(sub.ch)
}

// SubscriberCount reports the live subscribers of topic.
func (b *Bus) SubscriberCount(topic domain.EventTopic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// onPublish registers fn to observe every locally delivered event. It must be
// called before the bus is shared and fn must not block.
func (b *Bus) onPublish(fn func(Event)) {
	b.mu.Lock()
	b.hooks = append(b.hooks, fn)
	b.mu.Unlock()
}

// Close releases every subscription. Further publishes and subscribes fail with ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)

	for topic, subs := range b.subs {
		for sub := range subs {
			close(sub.ch)
		}
		delete(b.subs, topic)
	}
}
