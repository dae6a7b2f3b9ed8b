package types

// ErrorReason is the stable, UI facing classification of a failed connectivity check.
type ErrorReason string

const (
	ReasonUnknown                 ErrorReason = "UNKNOWN"
	ReasonContactPointUnavailable ErrorReason = "CONTACT_POINT_UNAVAILABLE"
	ReasonUnauthorized            ErrorReason = "UNAUTHORIZED"
	ReasonClusterUnavailable      ErrorReason = "CLUSTER_UNAVAILABLE"
	ReasonForbidden               ErrorReason = "FORBIDDEN"
	ReasonOAuthURL                ErrorReason = "OAUTH_URL"
)

var AllReasons = []ErrorReason{
	ReasonUnknown,
	ReasonContactPointUnavailable,
	ReasonUnauthorized,
	ReasonClusterUnavailable,
	ReasonForbidden,
	ReasonOAuthURL,
}

// Result is what every gateway operation resolves to.
// Response holds the RPC result on success; for deploy and run failures it holds the original error.
type Result struct {
	Success  bool        `json:"success"`
	Response any         `json:"response,omitempty"`
	Reason   ErrorReason `json:"reason,omitempty"`
}

// Topology is the subset of the cluster topology reported by a connectivity check.
type Topology struct {
	GatewayVersion    string `json:"gatewayVersion"`
	ClusterSize       int32  `json:"clusterSize"`
	PartitionsCount   int32  `json:"partitionsCount"`
	ReplicationFactor int32  `json:"replicationFactor"`
	Brokers           int    `json:"brokers"`
}

type ProcessMetadata struct {
	BpmnProcessID        string `json:"bpmnProcessId"`
	Version              int32  `json:"version"`
	ProcessDefinitionKey int64  `json:"processDefinitionKey"`
	ResourceName         string `json:"resourceName"`
}

type Deployment struct {
	Key       int64             `json:"key"`
	Processes []ProcessMetadata `json:"processes"`
}

type ProcessInstance struct {
	ProcessDefinitionKey int64  `json:"processDefinitionKey"`
	BpmnProcessID        string `json:"bpmnProcessId"`
	Version              int32  `json:"version"`
	ProcessInstanceKey   int64  `json:"processInstanceKey"`
}
