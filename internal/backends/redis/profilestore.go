package redis

import (
	"context"
	"errors"
	"fmt"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyNameTemplate = "_zeebeapi_profile_%s"
)

type ProfileStore struct {
	cli *redis.Client
}

func NewProfileStore(cli *redis.Client) *ProfileStore {
	return &ProfileStore{cli: cli}
}

func (s *ProfileStore) GetProfile(ctx context.Context, name string) (types.Profile, error) {
	out := s.cli.Get(ctx, getProfileKey(name))
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return types.Profile{}, types.Err(types.ErrNotFound, nil, "profile %q", name)
		}
		return types.Profile{}, out.Err()
	}
	var p types.Profile
	if err := json.Unmarshal([]byte(out.Val()), &p); err != nil {
		return types.Profile{}, err
	}
	return p, nil
}

func (s *ProfileStore) ListProfiles(ctx context.Context) ([]string, error) {
	out := s.cli.Keys(ctx, getProfileKey("*"))
	if out.Err() != nil {
		return nil, out.Err()
	}
	keys := out.Val()
	names := make([]string, 0, len(keys))
	prefixLen := len(getProfileKey(""))
	for _, k := range keys {
		if len(k) > prefixLen {
			names = append(names, k[prefixLen:])
		}
	}
	return names, nil
}

func (s *ProfileStore) PutProfile(ctx context.Context, profile types.Profile) error {
	if err := profile.Validate(); err != nil {
		return types.Err(types.ErrInvalidProfile, err, "")
	}

	out, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	outS := s.cli.Set(
		ctx,
		getProfileKey(profile.Name),
		string(out),
		0,
	)
	return outS.Err()
}

func (s *ProfileStore) DeleteProfile(ctx context.Context, name string) error {
	out := s.cli.Del(ctx, getProfileKey(name))
	return out.Err()
}

func (s *ProfileStore) ClearAll(ctx context.Context) error {
	out := s.cli.Keys(ctx, getProfileKey("*"))
	if out.Err() != nil {
		return out.Err()
	}
	keys := out.Val()
	if len(keys) == 0 {
		return nil
	}
	outN := s.cli.Del(ctx, keys...)
	return outN.Err()
}

func getProfileKey(name string) string {
	return fmt.Sprintf(profileKeyNameTemplate, name)
}
