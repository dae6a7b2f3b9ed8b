package redis

import (
	"context"
	"sync"
	"zeebeapi/internal/ipc"

	"github.com/redis/go-redis/v9"
)

// Bus carries ipc messages over Redis pub/sub, so the proxy and the gateway can live in
// different processes.
type Bus struct {
	cli *redis.Client
}

func NewBus(cli *redis.Client) *Bus {
	return &Bus{cli: cli}
}

func (b *Bus) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.cli.Publish(ctx, channel, payload).Err()
}

// NumSubscribers counts the clients subscribed to channel across every process sharing the server.
func (b *Bus) NumSubscribers(ctx context.Context, channel string) (int64, error) {
	counts, err := b.cli.PubSubNumSub(ctx, channel).Result()
	if err != nil {
		return 0, err
	}
	return counts[channel], nil
}

// Subscribe waits for Redis to confirm the subscription before returning.
func (b *Bus) Subscribe(ctx context.Context, channel string) (ipc.Subscription, error) {
	ps := b.cli.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	s := &subscription{ps: ps, ch: make(chan []byte), done: make(chan struct{})}
	go s.pump()
	return s, nil
}

type subscription struct {
	ps   *redis.PubSub
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func (s *subscription) pump() {
	defer close(s.ch)
	for msg := range s.ps.Channel() {
		select {
		case s.ch <- []byte(msg.Payload):
		case <-s.done:
			return
		}
	}
}

func (s *subscription) Messages() <-chan []byte { return s.ch }

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}

var (
	_ ipc.Bus               = (*Bus)(nil)
	_ ipc.SubscriberCounter = (*Bus)(nil)
)
