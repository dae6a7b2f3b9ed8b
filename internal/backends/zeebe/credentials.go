package zeebe

import (
	"context"
	"time"
	"zeebeapi/internal/cache"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"golang.org/x/oauth2"
)

// noCredentials is used for unauthenticated gateways. Passing it explicitly keeps zbc from
// picking up ZEEBE_CLIENT_* variables from the environment.
type noCredentials struct{}

func (noCredentials) ApplyCredentials(context.Context, map[string]string) error { return nil }

func (noCredentials) ShouldRetryRequest(context.Context, error) bool { return false }

// noRetry never asks zbc to resend a failed command.
type noRetry struct {
	zbc.CredentialsProvider
}

func (noRetry) ShouldRetryRequest(context.Context, error) bool { return false }

// noExpiryTTL bounds tokens the authorization server returned without an expiry.
const noExpiryTTL = time.Hour

// MemoryCache keeps OAuth tokens per audience in process memory only.
type MemoryCache struct {
	tokens *cache.TTL[string, *oauth2.Token]
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{tokens: cache.NewTTL[string, *oauth2.Token]()}
}

// Refresh drops expired tokens; there is no backing file to reload.
func (c *MemoryCache) Refresh() error {
	c.tokens.Purge()
	return nil
}

func (c *MemoryCache) Get(audience string) *oauth2.Token {
	t, ok := c.tokens.Get(audience)
	if !ok {
		return nil
	}
	return t
}

func (c *MemoryCache) Update(audience string, token *oauth2.Token) error {
	if token == nil {
		c.tokens.Delete(audience)
		return nil
	}
	ttl := noExpiryTTL
	if !token.Expiry.IsZero() {
		ttl = time.Until(token.Expiry)
	}
	c.tokens.Set(audience, token, ttl)
	return nil
}

var _ zbc.OAuthCredentialsCache = (*MemoryCache)(nil)
