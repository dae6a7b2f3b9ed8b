package gateway

import (
	"context"
	"errors"
	"sync"
	"time"
	"zeebeapi/internal/types"
)

func (s *UnitTestSuite) TestSameEndpointReusesClient() {
	ctx := context.Background()
	s.True(s.gw.CheckConnectivity(ctx, types.SelfHosted{URL: "localhost:26500"}).Success)
	s.True(s.gw.Run(ctx, types.RunRequest{Endpoint: types.SelfHosted{URL: "localhost:26500"}, ProcessID: "p"}).Success)

	s.Equal(1, s.factory.created())
	s.Equal(0, s.factory.clients[0].closeCount())
}

func (s *UnitTestSuite) TestDifferentEndpointReplacesClient() {
	ctx := context.Background()
	s.True(s.gw.CheckConnectivity(ctx, oauth).Success)

	other := oauth
	other.ClientSecret = "rotated"
	s.True(s.gw.CheckConnectivity(ctx, other).Success)
	s.True(s.gw.CheckConnectivity(ctx, other).Success)

	s.Require().Equal(2, s.factory.created())
	s.NotSame(s.factory.clients[0], s.factory.clients[1])
	s.Equal(1, s.factory.clients[0].closeCount())
	s.Equal(0, s.factory.clients[1].closeCount())

	s.NoError(s.gw.Close())
	s.Equal(1, s.factory.clients[1].closeCount())
	s.NoError(s.gw.Close())
	s.Equal(1, s.factory.clients[1].closeCount())
}

func (s *UnitTestSuite) TestClientOptionsPerTopology() {
	ctx := context.Background()
	s.gw.CheckConnectivity(ctx, selfHosted)
	s.gw.CheckConnectivity(ctx, oauth)
	s.gw.CheckConnectivity(ctx, cloud)

	s.Require().Len(s.factory.opts, 3)
	for _, o := range s.factory.opts {
		s.False(o.Retry)
	}
	s.False(s.factory.opts[0].TLS)
	s.Nil(s.factory.opts[0].OAuth)
	for _, o := range s.factory.opts[1:] {
		s.True(o.TLS)
		s.Require().NotNil(o.OAuth)
	}
}

func (s *UnitTestSuite) TestFactoryErrorIsCaught() {
	s.factory.err = errors.New("dial: Unsupported protocol")
	res := s.gw.CheckConnectivity(context.Background(), oauth)
	s.False(res.Success)
	s.Equal(types.ReasonOAuthURL, res.Reason)

	res = s.gw.Deploy(context.Background(), types.DeployRequest{Endpoint: oauth, FilePath: "/Users/Test/process.bpmn"})
	s.False(res.Success)
	s.Same(s.factory.err, res.Response)
}

func (s *UnitTestSuite) TestReplacedClientClosedAfterInFlightCall() {
	block := make(chan struct{})
	s.factory.next = func(c *fakeClient) {
		if len(s.factory.clients) == 0 {
			c.block = block
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res := s.gw.CheckConnectivity(context.Background(), selfHosted)
		s.True(res.Success)
	}()

	s.Eventually(func() bool { return s.factory.created() == 1 }, time.Second, 5*time.Millisecond)

	s.True(s.gw.CheckConnectivity(context.Background(), cloud).Success)
	s.Equal(2, s.factory.created())
	first := s.factory.clients[0]
	s.Equal(0, first.closeCount(), "in-flight client must stay open")

	close(block)
	wg.Wait()
	s.Equal(1, first.closeCount())
}
