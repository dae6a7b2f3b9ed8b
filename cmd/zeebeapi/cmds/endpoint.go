package cmds

import (
	"context"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	"github.com/spf13/pflag"
)

// EndpointFlags selects an endpoint on the command line, either by profile name or inline.
type EndpointFlags struct {
	Profile string
	Spec    types.EndpointSpec
}

func (f *EndpointFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Profile, "profile", "p", "", "name of a stored profile")
	fs.StringVar((*string)(&f.Spec.Type), "type", string(types.TypeSelfHosted), "endpoint type: selfHosted, oauth or camundaCloud")
	fs.StringVar(&f.Spec.URL, "url", "", "gateway address")
	fs.StringVar(&f.Spec.Audience, "audience", "", "OAuth audience")
	fs.StringVar(&f.Spec.ClientID, "client-id", "", "OAuth client id")
	fs.StringVar(&f.Spec.ClientSecret, "client-secret", "", "OAuth client secret")
	fs.StringVar(&f.Spec.OAuthURL, "oauth-url", "", "OAuth token URL")
	fs.StringVar(&f.Spec.ClusterID, "cluster-id", "", "Camunda Cloud cluster id")
}

// Resolve returns the endpoint named by --profile, or the inline one.
func (f *EndpointFlags) Resolve(ctx context.Context, store ports.ProfileStore) (types.Endpoint, error) {
	if f.Profile == "" {
		return f.Spec.Endpoint()
	}
	if store == nil {
		return nil, types.Err(types.ErrInvalidBackend, nil, "--profile needs PROFILE_BACKEND")
	}
	p, err := store.GetProfile(ctx, f.Profile)
	if err != nil {
		return nil, err
	}
	return p.Endpoint.Endpoint()
}
