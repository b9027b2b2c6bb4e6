package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/domain"
)

const relayQueueSize = 256

type envelope struct {
	Origin  string            `json:"origin"`
	Topic   domain.EventTopic `json:"topic"`
	Payload json.RawMessage   `json:"payload"`
}

// Relay bridges a local Bus to other instances through a Redis pub/sub
// channel. Events published locally are forwarded; events received from the
// channel are delivered locally unless they originated here.
type Relay struct {
	bus     *Bus
	rdb     *redis.Client
	channel string
	queue   chan Event
	wg      sync.WaitGroup
	running atomic.Bool
}

func NewRelay(bus *Bus, rdb *redis.Client, channel string) *Relay {
	r := &Relay{
		bus:     bus,
		rdb:     rdb,
		channel: channel,
		queue:   make(chan Event, relayQueueSize),
	}
	bus.onPublish(r.enqueue)
	return r
}

func (r *Relay) enqueue(event Event) {
	if !r.running.Load() || event.Origin != r.bus.ID() {
		return
	}
	select {
	case r.queue <- event:
	default:
		log.Warn().Str("topic", string(event.Topic)).Msg("event relay queue full, event not forwarded")
	}
}

// Run forwards and receives events until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to relay channel: %w", err)
	}

	r.running.Store(true)
	r.wg.Add(2)
	go func() {
		defer r.wg.Done()
		r.forward(ctx)
	}()
	go func() {
		defer r.wg.Done()
		defer pubsub.Close()
		r.receive(ctx, pubsub.Channel())
	}()

	log.Info().Str("channel", r.channel).Str("origin", r.bus.ID()).Msg("event relay started")
	return nil
}

// Wait blocks until the relay goroutines have stopped.
func (r *Relay) Wait() {
	r.wg.Wait()
}

func (r *Relay) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-r.queue:
			data, err := encodeEnvelope(event)
			if err != nil {
				log.Error().Err(err).Str("topic", string(event.Topic)).Msg("failed to encode relayed event")
				continue
			}
			if err := r.rdb.Publish(ctx, r.channel, data).Err(); err != nil {
				log.Error().Err(err).Str("topic", string(event.Topic)).Msg("failed to relay event")
			}
		}
	}
}

func (r *Relay) receive(ctx context.Context, msgs <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			event, err := decodeEnvelope([]byte(msg.Payload))
			if err != nil {
				log.Warn().Err(err).Msg("discarding malformed relayed event")
				continue
			}
			if event.Origin == r.bus.ID() {
				continue
			}
			event.PublishedAt = time.Now().UTC()
			if err := r.bus.deliver(ctx, event); err != nil {
				log.Warn().Err(err).Str("topic", string(event.Topic)).Msg("failed to deliver relayed event")
			}
		}
	}
}

func encodeEnvelope(event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Origin: event.Origin, Topic: event.Topic, Payload: payload})
}

// decodeEnvelope restores the concrete payload type of each topic so local
// subscribers see the same types as for locally published events.
func decodeEnvelope(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, err
	}

	var (
		payload any
		err     error
	)
	switch env.Topic {
	case domain.TopicApplicationCreated, domain.TopicApplicationStatusChanged:
		var app domain.Application
		err = json.Unmarshal(env.Payload, &app)
		payload = app
	case domain.TopicInterviewScheduled:
		var interview domain.Interview
		err = json.Unmarshal(env.Payload, &interview)
		payload = interview
	case domain.TopicNotificationReceived:
		var notif domain.Notification
		err = json.Unmarshal(env.Payload, &notif)
		payload = notif
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownTopic, env.Topic)
	}
	if err != nil {
		return Event{}, err
	}

	return Event{Topic: env.Topic, Payload: payload, Origin: env.Origin}, nil
}
