package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisChannelPrefix = "skinsight:session:"

// RedisBroker fans session events out through Redis pub/sub so every app
// instance sees sign-ins and sign-outs made on any other instance.
type RedisBroker struct {
	client *redis.Client
	logger *slog.Logger

	mu            sync.Mutex
	closed        bool
	subscriptions map[*redis.PubSub]struct{}
}

func NewRedisBroker(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisBroker, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisBroker{
		client:        client,
		logger:        logger,
		subscriptions: make(map[*redis.PubSub]struct{}),
	}, nil
}

func redisChannel(userID string) string {
	return redisChannelPrefix + userID
}

func (broker *RedisBroker) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode session event: %w", err)
	}
	if err := broker.client.Publish(ctx, redisChannel(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish session event: %w", err)
	}
	return nil
}

func (broker *RedisBroker) Subscribe(ctx context.Context, userID string) (<-chan Event, func(), error) {
	broker.mu.Lock()
	if broker.closed {
		broker.mu.Unlock()
		return nil, nil, ErrBrokerClosed
	}
	broker.mu.Unlock()

	pubsub := broker.client.Subscribe(ctx, redisChannel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe session events: %w", err)
	}

	broker.mu.Lock()
	if broker.closed {
		broker.mu.Unlock()
		_ = pubsub.Close()
		return nil, nil, ErrBrokerClosed
	}
	broker.subscriptions[pubsub] = struct{}{}
	broker.mu.Unlock()

	events := make(chan Event, subscriberBuffer)
	go func() {
		defer close(events)
		for message := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
				broker.logger.Warn("drop malformed session event", "channel", message.Channel, "error", err)
				continue
			}
			select {
			case events <- event:
			default:
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			broker.mu.Lock()
			delete(broker.subscriptions, pubsub)
			broker.mu.Unlock()
			_ = pubsub.Close()
		})
	}
	return events, unsubscribe, nil
}

func (broker *RedisBroker) Ping(ctx context.Context) error {
	return broker.client.Ping(ctx).Err()
}

// Close ends every open subscription before closing the client, which
// closes the channels handed out by Subscribe.
func (broker *RedisBroker) Close() error {
	broker.mu.Lock()
	if broker.closed {
		broker.mu.Unlock()
		return nil
	}
	broker.closed = true
	subscriptions := broker.subscriptions
	broker.subscriptions = make(map[*redis.PubSub]struct{})
	broker.mu.Unlock()

	for pubsub := range subscriptions {
		_ = pubsub.Close()
	}
	return broker.client.Close()
}
