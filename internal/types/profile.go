package types

import (
	"fmt"
	"strings"
)

const ProfileNameMaxLength = 64

// Profile is a saved, named endpoint. It is what `profile put` loads from YAML and what
// the HTTP surface resolves when a request names a profile instead of an endpoint.
type Profile struct {
	Name     string       `json:"name" yaml:"name" dynamodbav:"name"`
	Endpoint EndpointSpec `json:"endpoint" yaml:"endpoint" dynamodbav:"endpoint"`
}

func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Name) > ProfileNameMaxLength {
		return fmt.Errorf("name must be at most %d characters", ProfileNameMaxLength)
	}
	if strings.ContainsAny(p.Name, " #*") {
		return fmt.Errorf("name must not contain spaces, '#' or '*'")
	}
	ep, err := p.Endpoint.Endpoint()
	if err != nil {
		return err
	}
	switch e := ep.(type) {
	case SelfHosted:
		if e.URL == "" {
			return fmt.Errorf("endpoint.url is required")
		}
	case OAuth:
		if e.URL == "" || e.OAuthURL == "" {
			return fmt.Errorf("endpoint.url and endpoint.oauthURL are required")
		}
		if e.ClientID == "" || e.ClientSecret == "" {
			return fmt.Errorf("endpoint.clientId and endpoint.clientSecret are required")
		}
	case CamundaCloud:
		if e.ClusterID == "" {
			return fmt.Errorf("endpoint.clusterId is required")
		}
		if e.ClientID == "" || e.ClientSecret == "" {
			return fmt.Errorf("endpoint.clientId and endpoint.clientSecret are required")
		}
	}
	return nil
}
