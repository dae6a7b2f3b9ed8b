package zeebe

import (
	"context"
	"time"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// Factory builds zbc backed engine clients.
type Factory struct {
	// KeepAlive is the gRPC keep-alive interval. Zero keeps the zbc default.
	KeepAlive time.Duration
	// Tokens is shared by every client the factory builds. Tokens never touch the disk.
	Tokens *MemoryCache
}

func NewFactory(keepAlive time.Duration) *Factory {
	return &Factory{KeepAlive: keepAlive, Tokens: NewMemoryCache()}
}

func (f *Factory) NewClient(_ context.Context, opts types.ConnectOptions) (ports.EngineClient, error) {
	cfg, err := f.clientConfig(opts)
	if err != nil {
		return nil, err
	}
	zc, err := zbc.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"address": opts.Address,
		"tls":     opts.TLS,
		"oauth":   opts.OAuth != nil,
	}).Debug("zeebe client created")
	return &engineClient{zc: zc}, nil
}

func (f *Factory) clientConfig(opts types.ConnectOptions) (*zbc.ClientConfig, error) {
	provider, err := credentialsProvider(opts, f.tokens())
	if err != nil {
		return nil, err
	}
	var dialOpts []grpc.DialOption
	if !opts.Retry {
		dialOpts = append(dialOpts, grpc.WithDisableRetry())
	}
	cfg := &zbc.ClientConfig{
		GatewayAddress:         opts.Address,
		UsePlaintextConnection: !opts.TLS,
		CredentialsProvider:    provider,
		DialOpts:               dialOpts,
	}
	if f.KeepAlive > 0 {
		cfg.KeepAlive = f.KeepAlive
	}
	return cfg, nil
}

func (f *Factory) tokens() *MemoryCache {
	if f.Tokens == nil {
		f.Tokens = NewMemoryCache()
	}
	return f.Tokens
}

func credentialsProvider(opts types.ConnectOptions, cache *MemoryCache) (zbc.CredentialsProvider, error) {
	var provider zbc.CredentialsProvider = noCredentials{}
	if o := opts.OAuth; o != nil {
		p, err := zbc.NewOAuthCredentialsProvider(&zbc.OAuthProviderConfig{
			ClientID:               o.ClientID,
			ClientSecret:           o.ClientSecret,
			Audience:               o.Audience,
			AuthorizationServerURL: o.URL,
			Cache:                  cache,
		})
		if err != nil {
			return nil, err
		}
		provider = p
	}
	if !opts.Retry {
		provider = noRetry{provider}
	}
	return provider, nil
}
