package api

import (
	"context"
	"time"
	"zeebeapi/internal/cache"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"
)

const profileTTL = 300 * time.Second

// profileResolver loads the endpoint of a named profile, caching it for profileTTL.
type profileResolver struct {
	store ports.ProfileStore
	cache *cache.TTL[string, types.Endpoint]
}

func newProfileResolver(store ports.ProfileStore) *profileResolver {
	return &profileResolver{store: store, cache: cache.NewTTL[string, types.Endpoint]()}
}

func (r *profileResolver) Endpoint(ctx context.Context, name string) (types.Endpoint, error) {
	if r.store == nil {
		return nil, types.Err(types.ErrInvalidBackend, nil, "no profile backend configured")
	}
	if ep, ok := r.cache.Get(name); ok {
		return ep, nil
	}
	p, err := r.store.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	ep, err := p.Endpoint.Endpoint()
	if err != nil {
		return nil, err
	}
	r.cache.Set(name, ep, profileTTL)
	return ep, nil
}
