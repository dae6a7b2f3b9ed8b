package ports

import (
	"context"
	"zeebeapi/internal/types"
)

// ProfileStore represents a storage for saved endpoint profiles.
type ProfileStore interface {
	// GetProfile returns the profile stored under name.
	// MUST return types.ErrNotFound if the profile does not exist.
	GetProfile(ctx context.Context, name string) (types.Profile, error)

	ListProfiles(ctx context.Context) ([]string, error)

	// PutProfile validates and stores the profile under its name.
	PutProfile(ctx context.Context, profile types.Profile) error

	DeleteProfile(ctx context.Context, name string) error

	// ClearAll purges all profiles. Used in tests only.
	ClearAll(ctx context.Context) error
}
