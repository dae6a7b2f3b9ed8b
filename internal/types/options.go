package types

import (
	"fmt"
	"strings"
)

const (
	CloudRegion   = "bru-2"
	CloudDomain   = "zeebe.camunda.io"
	CloudPort     = 443
	CloudOAuthURL = "https://login.cloud.camunda.io/oauth/token"
)

// ConnectOptions is everything a ClientFactory needs to build a client for one endpoint.
type ConnectOptions struct {
	Address string
	// TLS enables transport security.
	TLS bool
	// Retry enables transport level retries. ConnectOptionsFor never sets it.
	Retry bool
	// OAuth is nil for unauthenticated endpoints.
	OAuth *OAuthOptions
}

type OAuthOptions struct {
	URL          string
	Audience     string
	ClientID     string
	ClientSecret string
}

// ConnectOptionsFor derives the connection settings of an endpoint.
func ConnectOptionsFor(ep Endpoint) (ConnectOptions, error) {
	switch e := ep.(type) {
	case SelfHosted:
		return ConnectOptions{Address: gatewayAddress(e.URL)}, nil
	case OAuth:
		return ConnectOptions{
			Address: gatewayAddress(e.URL),
			TLS:     true,
			OAuth: &OAuthOptions{
				URL:          e.OAuthURL,
				Audience:     e.Audience,
				ClientID:     e.ClientID,
				ClientSecret: e.ClientSecret,
			},
		}, nil
	case CamundaCloud:
		host := CloudHost(e.ClusterID)
		return ConnectOptions{
			Address: fmt.Sprintf("%s:%d", host, CloudPort),
			TLS:     true,
			OAuth: &OAuthOptions{
				URL:          CloudOAuthURL,
				Audience:     host,
				ClientID:     e.ClientID,
				ClientSecret: e.ClientSecret,
			},
		}, nil
	case nil:
		return ConnectOptions{}, ErrNoEndpoint
	default:
		return ConnectOptions{}, Err(ErrInvalidEndpoint, nil, "unsupported endpoint %T", ep)
	}
}

// CloudHost is the gateway host of a managed cluster.
func CloudHost(clusterID string) string {
	return fmt.Sprintf("%s.%s.%s", clusterID, CloudRegion, CloudDomain)
}

// gatewayAddress turns a contact point into a dial target: gRPC dials host:port, not URLs.
func gatewayAddress(url string) string {
	addr := strings.TrimSpace(url)
	for _, scheme := range []string{"grpcs://", "grpc://", "https://", "http://"} {
		if strings.HasPrefix(addr, scheme) {
			addr = addr[len(scheme):]
			break
		}
	}
	return strings.TrimRight(addr, "/")
}
