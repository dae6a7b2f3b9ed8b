package gateway

import (
	"errors"
	"net"
	"strings"
	"zeebeapi/internal/types"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Classifier maps a transport failure to the reason shown to the user.
type Classifier interface {
	Classify(err error, endpoint types.Endpoint) types.ErrorReason
}

// MessageClassifier matches on gRPC status codes and on error message fragments emitted by
// the transport and the OAuth backends. The first matching rule wins.
type MessageClassifier struct{}

func (MessageClassifier) Classify(err error, endpoint types.Endpoint) types.ErrorReason {
	if err == nil {
		return types.ReasonUnknown
	}
	_, isOAuth := endpoint.(types.OAuth)
	_, isCloud := endpoint.(types.CamundaCloud)

	unreachable := types.ReasonContactPointUnavailable
	if isCloud {
		unreachable = types.ReasonClusterUnavailable
	}

	if status.Code(err) == codes.Unavailable {
		return unreachable
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Unauthorized"):
		return types.ReasonUnauthorized
	case strings.Contains(msg, "Forbidden"):
		return types.ReasonForbidden
	case strings.Contains(msg, "ENOTFOUND"), strings.Contains(msg, "Not Found"), hostNotFound(err, msg):
		if isOAuth {
			return types.ReasonOAuthURL
		}
		return unreachable
	case isOAuth && (strings.Contains(msg, "Unsupported protocol") || strings.Contains(msg, "unsupported protocol scheme")):
		return types.ReasonOAuthURL
	}
	return types.ReasonUnknown
}

// hostNotFound reports a failed name lookup, as returned by net/http when the OAuth or gateway host
// does not resolve.
func hostNotFound(err error, msg string) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return true
	}
	return strings.Contains(msg, "no such host")
}
