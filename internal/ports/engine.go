package ports

import (
	"context"
	"zeebeapi/internal/types"
)

// EngineClient is a live, stateful connection to a Zeebe gateway.
// It MUST be closed once it is no longer used.
type EngineClient interface {
	// Topology issues the lightweight health RPC.
	Topology(ctx context.Context) (*types.Topology, error)

	// Deploy deploys one resource with the given name.
	Deploy(ctx context.Context, name string, definition []byte) (*types.Deployment, error)

	// CreateInstance starts the latest version of processID. variables MAY be nil.
	CreateInstance(ctx context.Context, processID string, variables map[string]any) (*types.ProcessInstance, error)

	Close() error
}

// ClientFactory builds engine clients. Construction errors are returned as-is.
type ClientFactory interface {
	NewClient(ctx context.Context, opts types.ConnectOptions) (EngineClient, error)
}

// FileReader reads process definitions as raw bytes.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}
