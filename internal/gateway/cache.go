package gateway

import (
	"context"
	"sync"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	log "github.com/sirupsen/logrus"
)

// clientCache holds at most one engine client, keyed by the endpoint it was built for.
// A client replaced while operations are still using it is closed when the last of them releases it.
type clientCache struct {
	factory ports.ClientFactory

	mu  sync.Mutex
	cur *slot
}

type slot struct {
	endpoint types.Endpoint
	client   ports.EngineClient
	refs     int
	retired  bool
	closed   bool
}

func newClientCache(factory ports.ClientFactory) *clientCache {
	return &clientCache{factory: factory}
}

// acquire returns the client for endpoint, building it when the cached one was built for a
// different endpoint. The caller MUST call release once done with the client.
func (c *clientCache) acquire(ctx context.Context, endpoint types.Endpoint) (ports.EngineClient, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur != nil && types.SameEndpoint(c.cur.endpoint, endpoint) {
		c.cur.refs++
		return c.cur.client, c.releaser(c.cur), nil
	}

	opts, err := types.ConnectOptionsFor(endpoint)
	if err != nil {
		return nil, nil, err
	}

	if c.cur != nil {
		c.retire(c.cur)
		c.cur = nil
	}

	cli, err := c.factory.NewClient(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	s := &slot{endpoint: endpoint, client: cli, refs: 1}
	c.cur = s
	return cli, c.releaser(s), nil
}

func (c *clientCache) releaser(s *slot) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			s.refs--
			if s.retired && s.refs == 0 {
				c.shutdown(s)
			}
		})
	}
}

// retire marks s as replaced. Must hold c.mu.
func (c *clientCache) retire(s *slot) {
	s.retired = true
	if s.refs == 0 {
		c.shutdown(s)
	}
}

// shutdown closes the client of s once. Must hold c.mu.
func (c *clientCache) shutdown(s *slot) {
	if s.closed {
		return
	}
	s.closed = true
	if err := s.client.Close(); err != nil {
		log.WithError(err).WithField("endpoint", types.Redact(s.endpoint)).Warn("close zeebe client")
	}
}

// close retires the cached client, if any.
func (c *clientCache) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur != nil {
		c.retire(c.cur)
		c.cur = nil
	}
}
