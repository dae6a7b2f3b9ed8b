package types

import (
	"github.com/goccy/go-json"
)

const (
	EventCheckConnectivity = "zeebe:checkConnectivity"
	EventDeploy            = "zeebe:deploy"
	EventRun               = "zeebe:run"
)

type CheckRequest struct {
	Endpoint Endpoint `json:"endpoint"`
}

// DeployRequest deploys the process definition at FilePath. Name is optional.
type DeployRequest struct {
	Endpoint Endpoint `json:"endpoint"`
	Name     string   `json:"name"`
	FilePath string   `json:"filePath"`
}

// RunRequest starts the latest version of ProcessID. Variables is optional.
type RunRequest struct {
	Endpoint  Endpoint       `json:"endpoint"`
	ProcessID string         `json:"processId"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (r *CheckRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Endpoint json.RawMessage `json:"endpoint"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Err(ErrInvalidRequest, err, "")
	}
	ep, err := UnmarshalEndpoint(raw.Endpoint)
	if err != nil {
		return err
	}
	r.Endpoint = ep
	return nil
}

func (r *DeployRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Endpoint json.RawMessage `json:"endpoint"`
		Name     string          `json:"name"`
		FilePath string          `json:"filePath"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Err(ErrInvalidRequest, err, "")
	}
	ep, err := UnmarshalEndpoint(raw.Endpoint)
	if err != nil {
		return err
	}
	*r = DeployRequest{Endpoint: ep, Name: raw.Name, FilePath: raw.FilePath}
	return nil
}

func (r *RunRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Endpoint  json.RawMessage `json:"endpoint"`
		ProcessID string          `json:"processId"`
		Variables map[string]any  `json:"variables"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Err(ErrInvalidRequest, err, "")
	}
	ep, err := UnmarshalEndpoint(raw.Endpoint)
	if err != nil {
		return err
	}
	*r = RunRequest{Endpoint: ep, ProcessID: raw.ProcessID, Variables: raw.Variables}
	return nil
}

// Redacted returns the loggable form of the request.
func (r DeployRequest) Redacted() map[string]any {
	return map[string]any{
		"endpoint": Redact(r.Endpoint),
		"name":     r.Name,
		"filePath": r.FilePath,
	}
}

func (r RunRequest) Redacted() map[string]any {
	return map[string]any{
		"endpoint":  Redact(r.Endpoint),
		"processId": r.ProcessID,
	}
}
