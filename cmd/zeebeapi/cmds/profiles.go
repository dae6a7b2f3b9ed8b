package cmds

import (
	"context"
	"fmt"
	"os"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	"github.com/goccy/go-yaml"
)

// LoadProfile reads and validates a profile YAML file.
func LoadProfile(path string) (types.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, err
	}
	var p types.Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return types.Profile{}, types.Err(types.ErrInvalidProfile, err, "parse %s", path)
	}
	if err := p.Validate(); err != nil {
		return types.Profile{}, types.Err(types.ErrInvalidProfile, err, "%s", path)
	}
	return p, nil
}

// PutProfile loads the profile at path and stores it.
func PutProfile(ctx context.Context, store ports.ProfileStore, path string) (types.Profile, error) {
	p, err := LoadProfile(path)
	if err != nil {
		return types.Profile{}, err
	}
	if err := store.PutProfile(ctx, p); err != nil {
		return types.Profile{}, fmt.Errorf("put profile %s: %w", p.Name, err)
	}
	return p, nil
}

// GetProfile returns the stored profile with its client secret masked.
func GetProfile(ctx context.Context, store ports.ProfileStore, name string) (types.Profile, error) {
	p, err := store.GetProfile(ctx, name)
	if err != nil {
		return types.Profile{}, err
	}
	if p.Endpoint.ClientSecret != "" {
		p.Endpoint.ClientSecret = "****"
	}
	return p, nil
}

func ListProfiles(ctx context.Context, store ports.ProfileStore) ([]string, error) {
	return store.ListProfiles(ctx)
}

func DeleteProfile(ctx context.Context, store ports.ProfileStore, name string) error {
	return store.DeleteProfile(ctx, name)
}
