package types

import (
	"errors"

	"github.com/goccy/go-json"
)

func (s *UnitTestSuite) TestUnmarshalEndpointVariants() {
	ep, err := UnmarshalEndpoint([]byte(`{"type":"selfHosted","url":"localhost:26500","clientSecret":"ignored"}`))
	s.NoError(err)
	s.Equal(SelfHosted{URL: "localhost:26500"}, ep)

	ep, err = UnmarshalEndpoint([]byte(`{
		"type":"oauth","url":"zeebe:26500","audience":"zeebe-api",
		"clientId":"modeler","clientSecret":"s3cret","oauthURL":"https://idp/token","clusterId":"ignored"}`))
	s.NoError(err)
	s.Equal(OAuth{
		URL:          "zeebe:26500",
		Audience:     "zeebe-api",
		ClientID:     "modeler",
		ClientSecret: "s3cret",
		OAuthURL:     "https://idp/token",
	}, ep)

	ep, err = UnmarshalEndpoint([]byte(`{"type":"camundaCloud","clientId":"id","clientSecret":"secret","clusterId":"abc"}`))
	s.NoError(err)
	s.Equal(CamundaCloud{ClientID: "id", ClientSecret: "secret", ClusterID: "abc"}, ep)
}

func (s *UnitTestSuite) TestUnmarshalEndpointUnknownAndNull() {
	_, err := UnmarshalEndpoint([]byte(`{"type":"kafka"}`))
	s.True(errors.Is(err, ErrInvalidEndpoint))

	ep, err := UnmarshalEndpoint([]byte(`null`))
	s.NoError(err)
	s.Nil(ep)

	ep, err = UnmarshalEndpoint(nil)
	s.NoError(err)
	s.Nil(ep)
}

func (s *UnitTestSuite) TestMarshalEndpointCarriesType() {
	b, err := json.Marshal(CheckRequest{Endpoint: CamundaCloud{ClientID: "id", ClientSecret: "x", ClusterID: "c1"}})
	s.NoError(err)
	s.JSONEq(`{"endpoint":{"type":"camundaCloud","clientId":"id","clientSecret":"x","clusterId":"c1"}}`, string(b))

	var back CheckRequest
	s.NoError(json.Unmarshal(b, &back))
	s.True(SameEndpoint(CamundaCloud{ClientID: "id", ClientSecret: "x", ClusterID: "c1"}, back.Endpoint))
}

func (s *UnitTestSuite) TestSameEndpoint() {
	a := OAuth{URL: "u", ClientID: "c", ClientSecret: "s", OAuthURL: "o", Audience: "a"}
	b := OAuth{URL: "u", ClientID: "c", ClientSecret: "s", OAuthURL: "o", Audience: "a"}
	s.True(SameEndpoint(a, b))

	b.ClientSecret = "other"
	s.False(SameEndpoint(a, b))

	s.False(SameEndpoint(SelfHosted{URL: "u"}, OAuth{URL: "u"}))
	s.False(SameEndpoint(SelfHosted{URL: "u"}, nil))
	s.True(SameEndpoint(nil, nil))
}

func (s *UnitTestSuite) TestRedactDropsSecrets() {
	for _, ep := range []Endpoint{
		SelfHosted{URL: "localhost:26500"},
		OAuth{URL: "u", Audience: "a", ClientID: "c", ClientSecret: "oauth-secret", OAuthURL: "o"},
		CamundaCloud{ClientID: "c", ClientSecret: "cloud-secret", ClusterID: "cluster"},
	} {
		r := Redact(ep)
		s.Equal(ep.Type(), r.Type)
		b, err := json.Marshal(r)
		s.NoError(err)
		s.NotContains(string(b), "secret")
	}
	s.Equal(Redacted{URL: "u", Type: TypeOAuth, ClientID: "c", OAuthURL: "o"},
		Redact(OAuth{URL: "u", Audience: "a", ClientID: "c", ClientSecret: "x", OAuthURL: "o"}))
	s.Equal(Redacted{}, Redact(nil))
}

func (s *UnitTestSuite) TestDeployRequestDecode() {
	var r DeployRequest
	err := json.Unmarshal([]byte(`{"endpoint":{"type":"selfHosted","url":"h:1"},"name":"","filePath":"/Users/Test/process.bpmn"}`), &r)
	s.NoError(err)
	s.Equal(DeployRequest{Endpoint: SelfHosted{URL: "h:1"}, FilePath: "/Users/Test/process.bpmn"}, r)

	redacted := RunRequest{Endpoint: CamundaCloud{ClientSecret: "x"}, ProcessID: "p"}.Redacted()
	s.Equal("p", redacted["processId"])
	s.IsType(Redacted{}, redacted["endpoint"])
}
