package proxy

import "zeebeapi/internal/types"

const (
	TargetSelfHosted   = "selfHosted"
	TargetCamundaCloud = "camundaCloud"

	AuthNone  = "none"
	AuthOAuth = "oauth"
)

// Params is the endpoint as edited in the deployment form: target and auth are chosen separately
// and each topology has its own set of fields.
type Params struct {
	TargetType string `json:"targetType"`
	AuthType   string `json:"authType"`

	ContactPoint string `json:"contactPoint"`
	OAuthURL     string `json:"oauthURL"`
	Audience     string `json:"audience"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`

	CamundaCloudClientID     string `json:"camundaCloudClientId"`
	CamundaCloudClientSecret string `json:"camundaCloudClientSecret"`
	CamundaCloudClusterID    string `json:"camundaCloudClusterId"`
}

// Normalize maps form parameters to an endpoint. Combinations without a matching topology
// yield nil.
func Normalize(p Params) types.Endpoint {
	switch p.TargetType {
	case TargetSelfHosted:
		switch p.AuthType {
		case AuthNone:
			return types.SelfHosted{URL: p.ContactPoint}
		case AuthOAuth:
			return types.OAuth{
				URL:          p.ContactPoint,
				OAuthURL:     p.OAuthURL,
				Audience:     p.Audience,
				ClientID:     p.ClientID,
				ClientSecret: p.ClientSecret,
			}
		}
	case TargetCamundaCloud:
		return types.CamundaCloud{
			ClientID:     p.CamundaCloudClientID,
			ClientSecret: p.CamundaCloudClientSecret,
			ClusterID:    p.CamundaCloudClusterID,
		}
	}
	return nil
}
