package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Dispatcher hands a notification off for delivery without waiting for it.
type Dispatcher interface {
	Start(ctx context.Context) error
	Dispatch(ctx context.Context, n Notification) error
	Close(ctx context.Context) error
}

// Topic carries submitted applications to the delivery consumer.
const Topic = "recruitment.application.submitted"

// ErrNotStarted is returned by Dispatch before the consumer is subscribed.
// The channel is not persistent, so the message would be lost.
var ErrNotStarted = errors.New("notification dispatcher not started")

// PubSubDispatcher publishes on an in-process Watermill channel. A single
// consumer delivers each message once and always acks it, so nothing is
// redelivered.
type PubSubDispatcher struct {
	pubsub    *gochannel.GoChannel
	deliverer *Deliverer
	logger    *slog.Logger

	startOnce sync.Once
	started   atomic.Bool
	done      chan struct{}
}

func NewPubSubDispatcher(deliverer *Deliverer, logger *slog.Logger) *PubSubDispatcher {
	return &PubSubDispatcher{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		),
		deliverer: deliverer,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start subscribes the consumer. It runs until ctx ends or Close is called.
func (d *PubSubDispatcher) Start(ctx context.Context) error {
	var err error
	d.startOnce.Do(func() {
		var messages <-chan *message.Message
		messages, err = d.pubsub.Subscribe(ctx, Topic)
		if err != nil {
			close(d.done)
			return
		}
		d.started.Store(true)
		go d.consume(messages)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Topic, err)
	}
	return nil
}

func (d *PubSubDispatcher) consume(messages <-chan *message.Message) {
	defer close(d.done)
	for msg := range messages {
		var n Notification
		if err := json.Unmarshal(msg.Payload, &n); err != nil {
			d.logger.Error("Dropping malformed notification",
				slog.String("message_uuid", msg.UUID),
				slog.String("error", err.Error()),
			)
			msg.Ack()
			continue
		}
		_ = d.deliverer.Deliver(msg.Context(), n)
		msg.Ack()
	}
}

func (d *PubSubDispatcher) Dispatch(_ context.Context, n Notification) error {
	if !d.started.Load() {
		return ErrNotStarted
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := d.pubsub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close stops the channel and waits for the consumer to drain.
func (d *PubSubDispatcher) Close(ctx context.Context) error {
	err := d.pubsub.Close()
	d.startOnce.Do(func() { close(d.done) })
	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
