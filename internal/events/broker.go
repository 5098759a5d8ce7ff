package events

import (
	"context"
	"errors"
	"time"
)

type Type string

const (
	SignedIn       Type = "signed_in"
	SignedOut      Type = "signed_out"
	TokenRefreshed Type = "token_refreshed"
)

// Event is a session state change for one user. Subscribers receive events
// published for their own user id only.
type Event struct {
	Type   Type      `json:"type"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

var ErrBrokerClosed = errors.New("session broker closed")

type Broker interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe returns a channel of events for userID and a function that
	// ends the subscription. The channel is closed when the subscription
	// ends or the broker is closed.
	Subscribe(ctx context.Context, userID string) (<-chan Event, func(), error)
	Ping(ctx context.Context) error
	Close() error
}

// subscriberBuffer bounds how far a slow subscriber may lag before events
// are dropped for it.
const subscriberBuffer = 16
