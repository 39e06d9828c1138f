package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/edgelight"
	"github.com/gogpu/edgelight/internal/adapters/redis"
	"github.com/gogpu/edgelight/internal/logging"
	"github.com/gogpu/edgelight/notify"
)

// collector records dispatched notifications.
type collector struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (c *collector) Dispatch(_ context.Context, n notify.Notification) (notify.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, n)
	return notify.Result{Outcome: notify.OutcomeShown}, nil
}

func (c *collector) packages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.seen))
	for i, n := range c.seen {
		out[i] = n.Package
	}
	return out
}

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// startSubscriber runs sub in the background and waits until it is subscribed.
func startSubscriber(t *testing.T, mr *miniredis.Miniredis, sub *redis.Subscriber) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(sub.Channel())[sub.Channel()] == 1
	}, 2*time.Second, 10*time.Millisecond)
	return cancel, done
}

func TestSubscriber_DispatchesPublished(t *testing.T) {
	mr, client := setup(t)
	c := &collector{}
	sub := redis.NewSubscriber(client, c, redis.WithLogger(logging.NewNop()))
	assert.Equal(t, redis.DefaultChannel, sub.Channel())

	cancel, done := startSubscriber(t, mr, sub)

	pub := redis.NewPublisher(client)
	ctx := context.Background()
	n, err := pub.Publish(ctx, notify.Notification{Package: "com.whatsapp", Color: edgelight.Red})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = pub.Publish(ctx, notify.Notification{Package: "org.telegram", Importance: notify.PriorityHigh})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(c.packages()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"com.whatsapp", "org.telegram"}, c.packages())

	c.mu.Lock()
	assert.Equal(t, edgelight.Red, c.seen[0].Color)
	assert.Equal(t, notify.PriorityHigh, c.seen[1].Importance)
	c.mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSubscriber_SkipsMalformed(t *testing.T) {
	mr, client := setup(t)
	c := &collector{}
	sub := redis.NewSubscriber(client, c,
		redis.WithChannel("custom"),
		redis.WithLogger(logging.NewNop()),
	)
	cancel, _ := startSubscriber(t, mr, sub)
	defer cancel()

	mr.Publish("custom", `not json`)
	mr.Publish("custom", `{"title":"no package"}`)
	mr.Publish("custom", `{"package":"ok"}`)

	assert.Eventually(t, func() bool { return len(c.packages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ok"}, c.packages())
}

func TestSubscriber_WithDispatcher(t *testing.T) {
	mr, client := setup(t)
	anim := edgelight.NewAnimator()
	d := notify.NewDispatcher(edgelight.NewResolver(), anim, notify.WithLogger(logging.NewNop()))
	sub := redis.NewSubscriber(client, d, redis.WithLogger(logging.NewNop()))
	cancel, _ := startSubscriber(t, mr, sub)
	defer cancel()

	_, err := redis.NewPublisher(client).Publish(context.Background(), notify.Notification{Package: "com.spotify.music"})
	require.NoError(t, err)

	assert.Eventually(t, anim.Running, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, edgelight.ARGB(0xFF1DB954), anim.State().Color)
}

func TestPublisher_NoSubscribers(t *testing.T) {
	_, client := setup(t)
	n, err := redis.NewPublisher(client, redis.WithChannel("empty")).Publish(context.Background(), notify.Notification{Package: "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestPublisher_ServerDown(t *testing.T) {
	client := backend.NewClient(&backend.Options{
		Addr:       "127.0.0.1:1",
		MaxRetries: -1,
	})
	defer client.Close()
	_, err := redis.NewPublisher(client).Publish(context.Background(), notify.Notification{Package: "a"})
	assert.Error(t, err)
}

func TestSubscriber_CancelledBeforeSubscribe(t *testing.T) {
	_, client := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := redis.NewSubscriber(client, &collector{}).Run(ctx)
	assert.NoError(t, err)
}
