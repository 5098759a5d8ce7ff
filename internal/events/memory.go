package events

import (
	"context"
	"sync"
)

// MemoryBroker delivers events within a single process.
type MemoryBroker struct {
	mu          sync.Mutex
	subscribers map[string]map[*memorySubscription]struct{}
	closed      bool
}

type memorySubscription struct {
	events chan Event
	once   sync.Once
}

func (subscription *memorySubscription) close() {
	subscription.once.Do(func() {
		close(subscription.events)
	})
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subscribers: make(map[string]map[*memorySubscription]struct{}),
	}
}

func (broker *MemoryBroker) Publish(_ context.Context, event Event) error {
	broker.mu.Lock()
	defer broker.mu.Unlock()

	if broker.closed {
		return ErrBrokerClosed
	}

	for subscription := range broker.subscribers[event.UserID] {
		select {
		case subscription.events <- event:
		default:
		}
	}
	return nil
}

func (broker *MemoryBroker) Subscribe(_ context.Context, userID string) (<-chan Event, func(), error) {
	broker.mu.Lock()
	defer broker.mu.Unlock()

	if broker.closed {
		return nil, nil, ErrBrokerClosed
	}

	subscription := &memorySubscription{events: make(chan Event, subscriberBuffer)}
	if broker.subscribers[userID] == nil {
		broker.subscribers[userID] = make(map[*memorySubscription]struct{})
	}
	broker.subscribers[userID][subscription] = struct{}{}

	unsubscribe := func() {
		broker.mu.Lock()
		if userSubscriptions := broker.subscribers[userID]; userSubscriptions != nil {
			delete(userSubscriptions, subscription)
			if len(userSubscriptions) == 0 {
				delete(broker.subscribers, userID)
			}
		}
		broker.mu.Unlock()
		subscription.close()
	}
	return subscription.events, unsubscribe, nil
}

func (broker *MemoryBroker) Ping(context.Context) error {
	broker.mu.Lock()
	defer broker.mu.Unlock()

	if broker.closed {
		return ErrBrokerClosed
	}
	return nil
}

func (broker *MemoryBroker) Close() error {
	broker.mu.Lock()
	defer broker.mu.Unlock()

	if broker.closed {
		return nil
	}
	broker.closed = true
	for userID, userSubscriptions := range broker.subscribers {
		for subscription := range userSubscriptions {
			subscription.close()
		}
		delete(broker.subscribers, userID)
	}
	return nil
}
