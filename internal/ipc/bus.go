package ipc

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Bus carries raw messages across the process boundary.
type Bus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	// Subscribe returns once the subscription is active, so messages published afterwards are delivered.
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

type Subscription interface {
	// Messages is closed once the subscription is closed.
	Messages() <-chan []byte
	Close() error
}

const memBufferSize = 64

// SubscriberCounter is implemented by buses that can tell how many subscribers a channel has.
type SubscriberCounter interface {
	NumSubscribers(ctx context.Context, channel string) (int64, error)
}

// MemBus is an in-process Bus. Slow subscribers lose messages once their buffer is full.
type MemBus struct {
	mu   sync.RWMutex
	subs map[string]map[*memSub]struct{}
}

func NewMemBus() *MemBus {
	return &MemBus{subs: make(map[string]map[*memSub]struct{})}
}

type memSub struct {
	bus     *MemBus
	channel string
	ch      chan []byte
	once    sync.Once
}

func (b *MemBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs[channel] {
		msg := append([]byte(nil), payload...)
		select {
		case s.ch <- msg:
		default:
			log.WithField("channel", channel).Warn("subscriber buffer full, message dropped")
		}
	}
	return nil
}

func (b *MemBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &memSub{bus: b, channel: channel, ch: make(chan []byte, memBufferSize)}
	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*memSub]struct{})
	}
	b.subs[channel][s] = struct{}{}
	b.mu.Unlock()
	return s, nil
}

func (b *MemBus) NumSubscribers(_ context.Context, channel string) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int64(len(b.subs[channel])), nil
}

func (s *memSub) Messages() <-chan []byte { return s.ch }

func (s *memSub) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs[s.channel], s)
		if len(s.bus.subs[s.channel]) == 0 {
			delete(s.bus.subs, s.channel)
		}
		close(s.ch)
		s.bus.mu.Unlock()
	})
	return nil
}
