package proxy

import (
	"context"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/types"

	log "github.com/sirupsen/logrus"
)

// ZeebeAPI is the UI side of the gateway. It normalizes form parameters and forwards each call
// across the bus. An error is returned only when the call itself could not be completed; failed
// operations come back as a Result.
type ZeebeAPI struct {
	client *ipc.Client
}

type DeployParams struct {
	Endpoint Params `json:"endpoint"`
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
}

type RunParams struct {
	Endpoint  Params         `json:"endpoint"`
	ProcessID string         `json:"processId"`
	Variables map[string]any `json:"variables,omitempty"`
}

func New(bus ipc.Bus) *ZeebeAPI {
	return &ZeebeAPI{client: ipc.NewClient(bus)}
}

func (z *ZeebeAPI) CheckConnectivity(ctx context.Context, p Params) (types.Result, error) {
	return z.call(ctx, types.EventCheckConnectivity, types.CheckRequest{
		Endpoint: normalize(p),
	})
}

func (z *ZeebeAPI) Deploy(ctx context.Context, p DeployParams) (types.Result, error) {
	return z.call(ctx, types.EventDeploy, types.DeployRequest{
		Endpoint: normalize(p.Endpoint),
		Name:     p.Name,
		FilePath: p.FilePath,
	})
}

func (z *ZeebeAPI) Run(ctx context.Context, p RunParams) (types.Result, error) {
	return z.call(ctx, types.EventRun, types.RunRequest{
		Endpoint:  normalize(p.Endpoint),
		ProcessID: p.ProcessID,
		Variables: p.Variables,
	})
}

func (z *ZeebeAPI) call(ctx context.Context, event string, payload any) (types.Result, error) {
	var res types.Result
	if err := z.client.Call(ctx, event, payload, &res); err != nil {
		return types.Result{}, err
	}
	return res, nil
}

func normalize(p Params) types.Endpoint {
	ep := Normalize(p)
	if ep == nil {
		log.WithFields(log.Fields{
			"targetType": p.TargetType,
			"authType":   p.AuthType,
		}).Warn("no endpoint for target/auth combination")
	}
	return ep
}
