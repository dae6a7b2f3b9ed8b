package types

import (
	"bytes"

	"github.com/goccy/go-json"
)

// EndpointType is the discriminator of the Endpoint union.
type EndpointType string

const (
	TypeSelfHosted   EndpointType = "selfHosted"
	TypeOAuth        EndpointType = "oauth"
	TypeCamundaCloud EndpointType = "camundaCloud"
)

// Endpoint describes how to reach and authenticate against one Zeebe cluster.
// It is implemented by SelfHosted, OAuth and CamundaCloud only.
// Two endpoints are the same endpoint when SameEndpoint reports true.
type Endpoint interface {
	Type() EndpointType
	// Spec flattens the endpoint into its wire/config shape.
	Spec() EndpointSpec
	endpoint()
}

// SelfHosted is an unauthenticated, plaintext connection to a gateway.
type SelfHosted struct {
	URL string
}

// OAuth is a self-hosted gateway guarded by an OAuth client-credentials flow.
type OAuth struct {
	URL          string
	Audience     string
	ClientID     string
	ClientSecret string
	OAuthURL     string
}

// CamundaCloud is a managed cluster, addressed by its cluster id.
type CamundaCloud struct {
	ClientID     string
	ClientSecret string
	ClusterID    string
}

func (SelfHosted) Type() EndpointType   { return TypeSelfHosted }
func (OAuth) Type() EndpointType        { return TypeOAuth }
func (CamundaCloud) Type() EndpointType { return TypeCamundaCloud }

func (SelfHosted) endpoint()   {}
func (OAuth) endpoint()        {}
func (CamundaCloud) endpoint() {}

func (e SelfHosted) Spec() EndpointSpec {
	return EndpointSpec{Type: TypeSelfHosted, URL: e.URL}
}

func (e OAuth) Spec() EndpointSpec {
	return EndpointSpec{
		Type:         TypeOAuth,
		URL:          e.URL,
		Audience:     e.Audience,
		ClientID:     e.ClientID,
		ClientSecret: e.ClientSecret,
		OAuthURL:     e.OAuthURL,
	}
}

func (e CamundaCloud) Spec() EndpointSpec {
	return EndpointSpec{
		Type:         TypeCamundaCloud,
		ClientID:     e.ClientID,
		ClientSecret: e.ClientSecret,
		ClusterID:    e.ClusterID,
	}
}

func (e SelfHosted) MarshalJSON() ([]byte, error)   { return json.Marshal(e.Spec()) }
func (e OAuth) MarshalJSON() ([]byte, error)        { return json.Marshal(e.Spec()) }
func (e CamundaCloud) MarshalJSON() ([]byte, error) { return json.Marshal(e.Spec()) }

// EndpointSpec is the flat representation used on the wire and in profile files.
// Only the fields of the active Type are meaningful.
type EndpointSpec struct {
	Type         EndpointType `json:"type" yaml:"type" dynamodbav:"type"`
	URL          string       `json:"url,omitempty" yaml:"url,omitempty" dynamodbav:"url,omitempty"`
	Audience     string       `json:"audience,omitempty" yaml:"audience,omitempty" dynamodbav:"audience,omitempty"`
	ClientID     string       `json:"clientId,omitempty" yaml:"clientId,omitempty" dynamodbav:"clientId,omitempty"`
	ClientSecret string       `json:"clientSecret,omitempty" yaml:"clientSecret,omitempty" dynamodbav:"clientSecret,omitempty"`
	OAuthURL     string       `json:"oauthURL,omitempty" yaml:"oauthURL,omitempty" dynamodbav:"oauthURL,omitempty"`
	ClusterID    string       `json:"clusterId,omitempty" yaml:"clusterId,omitempty" dynamodbav:"clusterId,omitempty"`
}

// Endpoint builds the variant selected by s.Type, dropping fields that belong to other variants.
func (s EndpointSpec) Endpoint() (Endpoint, error) {
	switch s.Type {
	case TypeSelfHosted:
		return SelfHosted{URL: s.URL}, nil
	case TypeOAuth:
		return OAuth{
			URL:          s.URL,
			Audience:     s.Audience,
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			OAuthURL:     s.OAuthURL,
		}, nil
	case TypeCamundaCloud:
		return CamundaCloud{
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			ClusterID:    s.ClusterID,
		}, nil
	default:
		return nil, Err(ErrInvalidEndpoint, nil, "unknown endpoint type %q", s.Type)
	}
}

// UnmarshalEndpoint decodes a JSON endpoint. A missing or null document yields a nil Endpoint.
func UnmarshalEndpoint(data []byte) (Endpoint, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var s EndpointSpec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, Err(ErrInvalidEndpoint, err, "")
	}
	return s.Endpoint()
}

// SameEndpoint compares two endpoints field by field.
func SameEndpoint(a, b Endpoint) bool {
	return a == b
}

// Redacted is the only shape of an endpoint that may be logged.
type Redacted struct {
	Type     EndpointType `json:"type"`
	URL      string       `json:"url,omitempty"`
	ClientID string       `json:"clientId,omitempty"`
	OAuthURL string       `json:"oauthURL,omitempty"`
}

// Redact strips credentials from an endpoint. A nil endpoint redacts to the zero value.
func Redact(ep Endpoint) Redacted {
	if ep == nil {
		return Redacted{}
	}
	s := ep.Spec()
	return Redacted{
		Type:     s.Type,
		URL:      s.URL,
		ClientID: s.ClientID,
		OAuthURL: s.OAuthURL,
	}
}
