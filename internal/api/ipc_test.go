package api

import (
	"context"
	"errors"
	"time"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/types"
)

func (s *UnitTestSuite) serveIPC() (*ipc.Client, func()) {
	bus := ipc.NewMemBus()
	srv := NewIPCServer(bus, s.gw)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cli := ipc.NewClient(bus)
	// Wait for the server to subscribe.
	s.Eventually(func() bool {
		callCtx, callCancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer callCancel()
		return cli.Call(callCtx, types.EventCheckConnectivity, types.CheckRequest{}, nil) == nil
	}, time.Second, 10*time.Millisecond)

	return cli, func() {
		cancel()
		s.NoError(<-done)
	}
}

func (s *UnitTestSuite) TestIPCDeployFailure() {
	cli, stop := s.serveIPC()
	defer stop()
	s.gw.result = types.Result{Success: false, Response: errors.New("boom")}

	var out types.Result
	err := cli.Call(context.Background(), types.EventDeploy, types.DeployRequest{
		Endpoint: types.SelfHosted{URL: "localhost:26500"},
		FilePath: "/tmp/a.bpmn",
	}, &out)

	s.Require().NoError(err)
	s.False(out.Success)
	s.Equal(map[string]any{"message": "boom"}, out.Response)
	s.Equal(types.SelfHosted{URL: "localhost:26500"}, s.gw.deploys[0].Endpoint)
}

func (s *UnitTestSuite) TestIPCRun() {
	cli, stop := s.serveIPC()
	defer stop()
	s.gw.result = types.Result{Success: true}

	var out types.Result
	err := cli.Call(context.Background(), types.EventRun, types.RunRequest{
		Endpoint:  types.CamundaCloud{ClientID: "id", ClientSecret: "secret", ClusterID: "c"},
		ProcessID: "order",
	}, &out)

	s.Require().NoError(err)
	s.True(out.Success)
	s.Equal("order", s.gw.runs[0].ProcessID)
}

func (s *UnitTestSuite) TestIPCMalformedPayload() {
	cli, stop := s.serveIPC()
	defer stop()

	err := cli.Call(context.Background(), types.EventCheckConnectivity, map[string]any{
		"endpoint": map[string]any{"type": "carrierPigeon"},
	}, nil)

	s.Require().Error(err)
	s.ErrorIs(err, types.ErrRemote)
}
