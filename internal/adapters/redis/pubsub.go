// Package redis carries notifications over Redis pub/sub.
package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	backend "github.com/redis/go-redis/v9"

	"github.com/gogpu/edgelight/notify"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "edgelight:notifications"

// Dispatcher handles decoded notifications. *notify.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notify.Notification) (notify.Result, error)
}

type Option func(*options)

type options struct {
	channel string
	logger  *slog.Logger
}

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) Option {
	return func(o *options) {
		if channel != "" {
			o.channel = channel
		}
	}
}

// WithLogger sets the logger used for dropped messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{channel: DefaultChannel, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient creates a Redis client for address.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// Subscriber feeds notifications published on a channel to a Dispatcher.
type Subscriber struct {
	client     *backend.Client
	dispatcher Dispatcher
	opts       options
}

// NewSubscriber creates a subscriber from an existing client.
func NewSubscriber(client *backend.Client, d Dispatcher, opts ...Option) *Subscriber {
	return &Subscriber{client: client, dispatcher: d, opts: newOptions(opts)}
}

// Channel returns the subscribed channel name.
func (s *Subscriber) Channel() string {
	return s.opts.channel
}

// Run subscribes and dispatches messages until ctx is done. Malformed
// messages are logged and skipped. It returns nil on cancellation.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.opts.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reading messages.
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to subscribe to %s: %w", s.opts.channel, err)
	}
	s.opts.logger.Info("redis: subscribed", "channel", s.opts.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handle(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, payload string) {
	n, err := notify.Decode(strings.NewReader(payload))
	if err != nil {
		s.opts.logger.Warn("redis: dropped message", "channel", s.opts.channel, "error", err)
		return
	}
	if _, err := s.dispatcher.Dispatch(ctx, n); err != nil && !errors.Is(err, context.Canceled) {
		s.opts.logger.Error("redis: dispatch failed", "package", n.Package, "error", err)
	}
}

// Publisher publishes notifications to a channel.
type Publisher struct {
	client *backend.Client
	opts   options
}

// NewPublisher creates a publisher from an existing client.
func NewPublisher(client *backend.Client, opts ...Option) *Publisher {
	return &Publisher{client: client, opts: newOptions(opts)}
}

// Publish encodes n and publishes it. It returns the number of
// subscribers that received the message.
func (p *Publisher) Publish(ctx context.Context, n notify.Notification) (int64, error) {
	payload, err := notify.NewPayload(n)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := payload.Encode(&buf); err != nil {
		return 0, fmt.Errorf("failed to marshal notification: %w", err)
	}
	receivers, err := p.client.Publish(ctx, p.opts.channel, buf.String()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish to %s: %w", p.opts.channel, err)
	}
	return receivers, nil
}
