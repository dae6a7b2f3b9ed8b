package gateway

import (
	"context"
	"errors"
	"strings"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *UnitTestSuite) TestCheckConnectivitySuccess() {
	res := s.gw.CheckConnectivity(context.Background(), selfHosted)
	s.Equal(types.Result{Success: true}, res)
}

func (s *UnitTestSuite) TestCheckConnectivityFailure() {
	s.factory.next = func(c *fakeClient) {
		c.topologyErr = status.Error(codes.Unavailable, "connection refused")
	}
	res := s.gw.CheckConnectivity(context.Background(), cloud)
	s.Equal(types.Result{Success: false, Reason: types.ReasonClusterUnavailable}, res)
	s.Contains(types.AllReasons, res.Reason)
	s.Nil(res.Response)
}

func (s *UnitTestSuite) TestCheckConnectivityNoEndpoint() {
	res := s.gw.CheckConnectivity(context.Background(), nil)
	s.False(res.Success)
	s.Equal(types.ReasonUnknown, res.Reason)
	s.Equal(0, s.factory.created())
}

func (s *UnitTestSuite) TestDeployUsesFileBaseName() {
	res := s.gw.Deploy(context.Background(), types.DeployRequest{
		Endpoint: selfHosted,
		Name:     "",
		FilePath: "/Users/Test/process.bpmn",
	})
	s.True(res.Success)
	s.IsType(&types.Deployment{}, res.Response)

	cli := s.factory.clients[0]
	s.Equal([]string{"process.bpmn"}, cli.deployed)
	s.Equal(s.files["/Users/Test/process.bpmn"], cli.definitions[0])
}

func (s *UnitTestSuite) TestDeploySuffixesName() {
	s.True(s.gw.Deploy(context.Background(), types.DeployRequest{
		Endpoint: selfHosted, Name: "order", FilePath: "/Users/Test/process.bpmn",
	}).Success)
	s.Equal([]string{"order.bpmn"}, s.factory.clients[0].deployed)
}

func (s *UnitTestSuite) TestDeployFailureKeepsError() {
	deployErr := status.Error(codes.InvalidArgument, "Command 'CREATE' rejected: BPMN validation failed")
	s.factory.next = func(c *fakeClient) { c.deployErr = deployErr }

	res := s.gw.Deploy(context.Background(), types.DeployRequest{
		Endpoint: oauth, FilePath: "/Users/Test/process.bpmn",
	})
	s.False(res.Success)
	s.Same(deployErr, res.Response)
	s.Empty(res.Reason)
}

func (s *UnitTestSuite) TestDeployMissingFile() {
	res := s.gw.Deploy(context.Background(), types.DeployRequest{Endpoint: selfHosted, FilePath: "/missing.bpmn"})
	s.False(res.Success)
	err, ok := res.Response.(error)
	s.Require().True(ok)
	s.Contains(err.Error(), "ENOENT")
	s.Empty(s.factory.clients[0].deployed)
}

func (s *UnitTestSuite) TestRun() {
	res := s.gw.Run(context.Background(), types.RunRequest{
		Endpoint:  selfHosted,
		ProcessID: "order-process",
		Variables: map[string]any{"orderId": "A-1"},
	})
	s.True(res.Success)
	s.Equal(&types.ProcessInstance{BpmnProcessID: "order-process", Version: 1, ProcessInstanceKey: 7}, res.Response)
	s.Equal([]map[string]any{{"orderId": "A-1"}}, s.factory.clients[0].variables)
}

func (s *UnitTestSuite) TestRunFailureKeepsError() {
	runErr := status.Error(codes.NotFound, "Command 'CREATE' rejected with code 'NOT_FOUND'")
	s.factory.next = func(c *fakeClient) { c.runErr = runErr }
	res := s.gw.Run(context.Background(), types.RunRequest{Endpoint: cloud, ProcessID: "nope"})
	s.Equal(types.Result{Success: false, Response: runErr}, res)
}

func (s *UnitTestSuite) TestFailureLogsAreRedacted() {
	s.factory.next = func(c *fakeClient) {
		c.topologyErr = errors.New("boom")
		c.deployErr = errors.New("boom")
		c.runErr = errors.New("boom")
	}
	ctx := context.Background()
	for _, ep := range []types.Endpoint{selfHosted, oauth, cloud} {
		s.gw.CheckConnectivity(ctx, ep)
		s.gw.Deploy(ctx, types.DeployRequest{Endpoint: ep, FilePath: "/Users/Test/process.bpmn"})
		s.gw.Run(ctx, types.RunRequest{Endpoint: ep, ProcessID: "p"})
	}

	entries := s.logs.AllEntries()
	s.GreaterOrEqual(len(entries), 9)
	for _, e := range entries {
		b, err := json.Marshal(e.Data)
		s.NoError(err)
		s.False(strings.Contains(string(b), "secret"), "leaked credentials: %s", b)
		s.NotContains(string(b), "clientSecret")
	}
}

func (s *UnitTestSuite) TestPanicIsContained() {
	s.gw.Files = panicFiles{}
	res := s.gw.Deploy(context.Background(), types.DeployRequest{Endpoint: selfHosted, FilePath: "/x.bpmn"})
	s.False(res.Success)
	err, ok := res.Response.(error)
	s.Require().True(ok)
	s.Contains(err.Error(), "disk on fire")

	s.True(s.gw.CheckConnectivity(context.Background(), selfHosted).Success)
	s.Equal(1, s.factory.created())
}

type panicFiles struct{}

func (panicFiles) ReadFile(context.Context, string) ([]byte, error) {
	panic("disk on fire")
}

func (s *UnitTestSuite) TestEventsPublishedWithoutSecrets() {
	pub := &fakePublisher{}
	s.gw.Events = pub
	s.gw.EventsTopic = "arn:aws:sns:us-east-1:000000000000:deployments"

	ctx := context.Background()
	s.True(s.gw.Deploy(ctx, types.DeployRequest{Endpoint: cloud, FilePath: "/Users/Test/process.bpmn"}).Success)
	s.True(s.gw.Run(ctx, types.RunRequest{Endpoint: cloud, ProcessID: "process"}).Success)

	s.Require().Len(pub.payloads, 2)
	s.Equal(s.gw.EventsTopic, pub.arns[0])
	for _, p := range pub.payloads {
		s.NotContains(string(p), "cloud-secret")
	}

	var ev Event
	s.NoError(json.Unmarshal(pub.payloads[0], &ev))
	s.Equal(EventDeployed, ev.Kind)
	s.Equal("process.bpmn", ev.Name)
	definition, err := DecodeDefinition(ev.Definition)
	s.NoError(err)
	s.Equal(s.files["/Users/Test/process.bpmn"], definition)

	s.NoError(json.Unmarshal(pub.payloads[1], &ev))
	s.Equal(EventStarted, ev.Kind)
	s.Equal("process", ev.ProcessID)
}

func (s *UnitTestSuite) TestEventPublishFailureDoesNotFailDeploy() {
	s.gw.Events = &fakePublisher{err: errors.New("sns down")}
	s.gw.EventsTopic = "arn"
	res := s.gw.Deploy(context.Background(), types.DeployRequest{Endpoint: selfHosted, FilePath: "/Users/Test/process.bpmn"})
	s.True(res.Success)
}

func (s *UnitTestSuite) TestDefinitionArchivedOnlyWhenPublishing() {
	calls := 0
	archive = func(definition []byte) string {
		calls++
		return EncodeDefinition(definition)
	}
	defer func() { archive = EncodeDefinition }()

	ctx := context.Background()
	req := types.DeployRequest{Endpoint: selfHosted, FilePath: "/Users/Test/process.bpmn"}
	s.True(s.gw.Deploy(ctx, req).Success)
	s.Equal(0, calls)

	s.gw.Events = &fakePublisher{}
	s.True(s.gw.Deploy(ctx, req).Success)
	s.Equal(0, calls, "no topic configured")

	s.gw.EventsTopic = "arn"
	s.True(s.gw.Deploy(ctx, req).Success)
	s.True(s.gw.Run(ctx, types.RunRequest{Endpoint: selfHosted, ProcessID: "process"}).Success)
	s.Equal(1, calls)
}
