package cache

import (
	"sync"
	"time"
)

// TTL is a minimal in-process TTL cache to trim backend reads on hot paths.
// Caller chooses sensible TTL per entry. Lazy expiration on Get.
type TTL[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
}

type entry[V any] struct {
	val V
	exp time.Time
}

func NewTTL[K comparable, V any]() *TTL[K, V] {
	return &TTL[K, V]{data: make(map[K]entry[V])}
}

// Get returns the value and true if found and not expired; otherwise zero value and false.
func (t *TTL[K, V]) Get(k K) (V, bool) {
	t.mu.RLock()
	e, ok := t.data[k]
	t.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		var zero V
		return zero, false
	}
	return e.val, true
}

func (t *TTL[K, V]) Set(k K, v V, ttl time.Duration) {
	t.mu.Lock()
	t.data[k] = entry[V]{val: v, exp: time.Now().Add(ttl)}
	t.mu.Unlock()
}

func (t *TTL[K, V]) Delete(k K) {
	t.mu.Lock()
	delete(t.data, k)
	t.mu.Unlock()
}

// Purge drops expired entries.
func (t *TTL[K, V]) Purge() {
	now := time.Now()
	t.mu.Lock()
	for k, e := range t.data {
		if now.After(e.exp) {
			delete(t.data, k)
		}
	}
	t.mu.Unlock()
}

func (t *TTL[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.data)
}
