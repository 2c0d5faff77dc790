package messaging

import (
	"context"

	"github.com/artzone/artzone-indexer/internal/domain"
)

// EventHandler is called for each minter event received from the broker. A
// non-nil error leaves the event unacknowledged for redelivery.
type EventHandler func(event *domain.Event) error

// Subscriber defines the interface for consuming minter events from the
// message broker. Delivery is strictly one event at a time, in stream order.
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// Start consumes events until the context is cancelled or Close is called
	Start(ctx context.Context, handler EventHandler) error

	// Close closes the connection and cleans up resources
	Close()
}
