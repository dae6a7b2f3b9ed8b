package zeebe

import (
	"context"
	"zeebeapi/internal/types"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// engineClient adapts a zbc.Client to ports.EngineClient.
type engineClient struct {
	zc zbc.Client
}

func (c *engineClient) Topology(ctx context.Context) (*types.Topology, error) {
	resp, err := c.zc.NewTopologyCommand().Send(ctx)
	if err != nil {
		return nil, err
	}
	return &types.Topology{
		GatewayVersion:    resp.GetGatewayVersion(),
		ClusterSize:       resp.GetClusterSize(),
		PartitionsCount:   resp.GetPartitionsCount(),
		ReplicationFactor: resp.GetReplicationFactor(),
		Brokers:           len(resp.GetBrokers()),
	}, nil
}

func (c *engineClient) Deploy(ctx context.Context, name string, definition []byte) (*types.Deployment, error) {
	resp, err := c.zc.NewDeployResourceCommand().AddResource(definition, name).Send(ctx)
	if err != nil {
		return nil, err
	}
	out := &types.Deployment{Key: resp.GetKey()}
	for _, d := range resp.GetDeployments() {
		p := d.GetProcess()
		if p == nil {
			continue
		}
		out.Processes = append(out.Processes, types.ProcessMetadata{
			BpmnProcessID:        p.GetBpmnProcessId(),
			Version:              p.GetVersion(),
			ProcessDefinitionKey: p.GetProcessDefinitionKey(),
			ResourceName:         p.GetResourceName(),
		})
	}
	return out, nil
}

func (c *engineClient) CreateInstance(ctx context.Context, processID string, variables map[string]any) (*types.ProcessInstance, error) {
	cmd := c.zc.NewCreateInstanceCommand().BPMNProcessId(processID).LatestVersion()
	if variables != nil {
		var err error
		cmd, err = cmd.VariablesFromMap(variables)
		if err != nil {
			return nil, err
		}
	}
	resp, err := cmd.Send(ctx)
	if err != nil {
		return nil, err
	}
	return &types.ProcessInstance{
		ProcessDefinitionKey: resp.GetProcessDefinitionKey(),
		BpmnProcessID:        resp.GetBpmnProcessId(),
		Version:              resp.GetVersion(),
		ProcessInstanceKey:   resp.GetProcessInstanceKey(),
	}, nil
}

func (c *engineClient) Close() error {
	return c.zc.Close()
}
