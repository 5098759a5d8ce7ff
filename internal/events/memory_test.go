package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryBrokerDeliversOnlyToSubscribedUser(t *testing.T) {
	t.Parallel()

	broker := NewMemoryBroker()
	defer broker.Close()
	ctx := context.Background()

	ownEvents, unsubscribeOwn, err := broker.Subscribe(ctx, "user-1")
	if err != nil {
		t.Fatalf("subscribe user-1: %v", err)
	}
	defer unsubscribeOwn()

	otherEvents, unsubscribeOther, err := broker.Subscribe(ctx, "user-2")
	if err != nil {
		t.Fatalf("subscribe user-2: %v", err)
	}
	defer unsubscribeOther()

	published := Event{Type: SignedOut, UserID: "user-1", At: time.Now().UTC()}
	if err := broker.Publish(ctx, published); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case received := <-ownEvents:
		if received.Type != SignedOut || received.UserID != "user-1" {
			t.Fatalf("unexpected event %#v", received)
		}
	case <-time.After(time.Second):
		t.Fatal("expected event for subscribed user")
	}

	select {
	case received := <-otherEvents:
		t.Fatalf("expected no event for other user, got %#v", received)
	default:
	}
}

func TestMemoryBrokerUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	broker := NewMemoryBroker()
	defer broker.Close()

	events, unsubscribe, err := broker.Subscribe(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	unsubscribe()
	unsubscribe()

	if _, ok := <-events; ok {
		t.Fatal("expected channel to be closed after unsubscribe")
	}
	if err := broker.Publish(context.Background(), Event{Type: SignedIn, UserID: "user-1"}); err != nil {
		t.Fatalf("publish after unsubscribe: %v", err)
	}
}

func TestMemoryBrokerDropsEventsForSlowSubscriber(t *testing.T) {
	t.Parallel()

	broker := NewMemoryBroker()
	defer broker.Close()

	events, unsubscribe, err := broker.Subscribe(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsubscribe()

	for index := 0; index < subscriberBuffer*2; index++ {
		if err := broker.Publish(context.Background(), Event{Type: TokenRefreshed, UserID: "user-1"}); err != nil {
			t.Fatalf("publish %d: %v", index, err)
		}
	}
	if len(events) != subscriberBuffer {
		t.Fatalf("expected buffered events to cap at %d, got %d", subscriberBuffer, len(events))
	}
}

func TestMemoryBrokerCloseEndsSubscriptions(t *testing.T) {
	t.Parallel()

	broker := NewMemoryBroker()
	events, unsubscribe, err := broker.Subscribe(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := broker.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := <-events; ok {
		t.Fatal("expected channel to be closed when broker closes")
	}
	unsubscribe()

	if err := broker.Publish(context.Background(), Event{UserID: "user-1"}); !errors.Is(err, ErrBrokerClosed) {
		t.Fatalf("expected ErrBrokerClosed from publish, got %v", err)
	}
	if _, _, err := broker.Subscribe(context.Background(), "user-1"); !errors.Is(err, ErrBrokerClosed) {
		t.Fatalf("expected ErrBrokerClosed from subscribe, got %v", err)
	}
	if err := broker.Ping(context.Background()); !errors.Is(err, ErrBrokerClosed) {
		t.Fatalf("expected ErrBrokerClosed from ping, got %v", err)
	}
}
