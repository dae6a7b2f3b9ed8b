package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"zeebeapi/internal/types"
)

func (s *UnitTestSuite) TestHealth() {
	resp, err := http.Get(s.srv.URL + "/health")
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *UnitTestSuite) TestCheckInlineEndpoint() {
	s.gw.result = types.Result{Success: true}

	resp, out := s.post("/zeebe/checkConnectivity", `{"endpoint":{"type":"selfHosted","url":"localhost:26500"}}`)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, out["success"])
	s.Require().Len(s.gw.endpoints, 1)
	s.Equal(types.SelfHosted{URL: "localhost:26500"}, s.gw.endpoints[0])
}

func (s *UnitTestSuite) TestCheckFailureCarriesReason() {
	s.gw.result = types.Result{Success: false, Reason: types.ReasonUnauthorized}

	resp, out := s.post("/zeebe/checkConnectivity", `{"endpoint":{"type":"selfHosted","url":"x"}}`)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(false, out["success"])
	s.Equal("UNAUTHORIZED", out["reason"])
}

func (s *UnitTestSuite) TestDeployFailureIsEncoded() {
	s.gw.result = types.Result{Success: false, Response: errors.New("file does not exist")}

	resp, out := s.post("/zeebe/deploy", `{"endpoint":{"type":"selfHosted","url":"x"},"name":"n","filePath":"/tmp/a.bpmn"}`)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(false, out["success"])
	s.Equal(map[string]any{"message": "file does not exist"}, out["response"])
	s.Require().Len(s.gw.deploys, 1)
	s.Equal("/tmp/a.bpmn", s.gw.deploys[0].FilePath)
}

func (s *UnitTestSuite) TestRunWithProfile() {
	s.gw.result = types.Result{Success: true, Response: &types.ProcessInstance{ProcessInstanceKey: 7}}

	for range 3 {
		resp, out := s.post("/zeebe/run", `{"profile":"local","processId":"order","variables":{"a":1}}`)
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal(true, out["success"])
	}

	s.Require().Len(s.gw.runs, 3)
	s.Equal(types.SelfHosted{URL: "localhost:26500"}, s.gw.runs[0].Endpoint)
	s.Equal("order", s.gw.runs[0].ProcessID)
	s.Equal(map[string]any{"a": float64(1)}, s.gw.runs[0].Variables)
	s.Equal(1, s.profiles.gets, "profile is cached")
}

func (s *UnitTestSuite) TestUnknownProfile() {
	resp, _ := s.post("/zeebe/checkConnectivity", `{"profile":"missing"}`)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Empty(s.gw.endpoints)
}

func (s *UnitTestSuite) TestProfileAndEndpointConflict() {
	resp, _ := s.post("/zeebe/checkConnectivity", `{"profile":"local","endpoint":{"type":"selfHosted","url":"x"}}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *UnitTestSuite) TestProfileWithoutBackend() {
	s.srv.Close()
	s.srv = httptest.NewServer(NewHandler(s.gw, nil).Router())

	resp, _ := s.post("/zeebe/checkConnectivity", `{"profile":"local"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *UnitTestSuite) TestBadRequests() {
	resp, _ := s.post("/zeebe/deploy", `{not json`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.post("/zeebe/deploy", ``)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.post("/zeebe/deploy", `{"endpoint":{"type":"carrierPigeon"}}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	get, err := http.Get(s.srv.URL + "/zeebe/run")
	s.Require().NoError(err)
	_ = get.Body.Close()
	s.Equal(http.StatusMethodNotAllowed, get.StatusCode)

	s.Empty(s.gw.endpoints)
}

func (s *UnitTestSuite) TestMissingEndpointReachesGateway() {
	s.gw.result = types.Result{Success: false, Reason: types.ReasonUnknown}

	resp, out := s.post("/zeebe/checkConnectivity", `{}`)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("UNKNOWN", out["reason"])
	s.Require().Len(s.gw.endpoints, 1)
	s.Nil(s.gw.endpoints[0])
}
