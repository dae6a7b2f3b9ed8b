package api

import (
	"context"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
)

// NewIPCServer registers the gateway operations on bus. Results are sent as payloads; only
// malformed requests and handler faults travel as response errors.
func NewIPCServer(bus ipc.Bus, gw Gateway) *ipc.Server {
	srv := ipc.NewServer(bus)
	srv.Handle(types.EventCheckConnectivity, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req types.CheckRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, err
		}
		return ipc.WireResult(gw.CheckConnectivity(ctx, req.Endpoint)), nil
	})
	srv.Handle(types.EventDeploy, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req types.DeployRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, err
		}
		return ipc.WireResult(gw.Deploy(ctx, req)), nil
	})
	srv.Handle(types.EventRun, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req types.RunRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, err
		}
		return ipc.WireResult(gw.Run(ctx, req)), nil
	})
	return srv
}
