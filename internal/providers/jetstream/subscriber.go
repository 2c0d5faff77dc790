package jetstream

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/messaging"
)

type subscriber struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	cfg  Config
	json adapter.JSON
	done chan struct{}
}

// NewSubscriber creates a NATS JetStream subscriber for minter events
func NewSubscriber(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Subscriber, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &subscriber{
		nc:   nc,
		js:   js,
		cfg:  cfg,
		json: jsonAdapter,
		done: make(chan struct{}),
	}, nil
}

// Start consumes events until the context is cancelled or Close is called.
// MaxAckPending of 1 forces the broker to deliver one event at a time, so
// handlers observe events in stream order.
func (s *subscriber) Start(ctx context.Context, handler messaging.EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.cfg.StreamName, jetstream.ConsumerConfig{
		Durable:       s.cfg.ConsumerName,
		FilterSubject: s.cfg.SubjectPrefix + ".>",
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		MaxAckPending: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", s.cfg.ConsumerName, err)
	}

	cc, err := consumer.Consume(func(msg adapter.Message) {
		s.handleMessage(msg, handler)
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-s.done:
	}

	cc.Drain()
	<-cc.Closed()

	return nil
}

// handleMessage decodes and dispatches one broker message. A message that
// cannot decode is terminated: redelivery would fail identically. A handler
// error leaves the message for redelivery.
func (s *subscriber) handleMessage(msg adapter.Message, handler messaging.EventHandler) {
	var event domain.Event
	if err := s.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(fmt.Errorf("failed to decode event: %w", err))
		if err := msg.Term(); err != nil {
			logger.Error(fmt.Errorf("failed to terminate message: %w", err))
		}
		return
	}

	if err := handler(&event); err != nil {
		logger.Error(err, zap.String("event_id", event.MessageID()))
		if err := msg.Nak(); err != nil {
			logger.Error(fmt.Errorf("failed to nak message: %w", err))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(fmt.Errorf("failed to ack message: %w", err))
	}
}

// Close stops consumption and closes the NATS connection
func (s *subscriber) Close() {
	close(s.done)

	if s.nc != nil {
		s.nc.Close()
	}
}
