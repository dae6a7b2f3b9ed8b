package ipc

import (
	"bytes"
	"errors"
	"fmt"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Request is published on the event channel. ID correlates the response.
type Request struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// Response is published on ResponseChannel(event, id) and encoded as the pair [error, payload].
// Err is nil on success.
type Response struct {
	Err     *RemoteError
	Payload json.RawMessage
}

func (r Response) MarshalJSON() ([]byte, error) {
	var payload any
	if len(r.Payload) > 0 {
		payload = r.Payload
	}
	return json.Marshal([]any{r.Err, payload})
}

func (r *Response) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) == 0 || len(parts) > 2 {
		return fmt.Errorf("response must have one or two elements, got %d", len(parts))
	}
	*r = Response{}
	if !isNull(parts[0]) {
		r.Err = &RemoteError{}
		if err := json.Unmarshal(parts[0], r.Err); err != nil {
			return err
		}
	}
	if len(parts) == 2 && !isNull(parts[1]) {
		r.Payload = parts[1]
	}
	return nil
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// ResponseChannel names the channel the response to request id of event is published on.
func ResponseChannel(event, id string) string {
	return event + ":response:" + id
}

// RemoteError is an error that crossed the process boundary. Code is the gRPC code name when
// the original error carried one.
type RemoteError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *RemoteError) Is(target error) bool {
	return target == types.ErrRemote
}

// NewRemoteError flattens err into its serializable form.
func NewRemoteError(err error) *RemoteError {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return &RemoteError{Message: st.Message(), Code: st.Code().String()}
	}
	return &RemoteError{Message: err.Error()}
}

// WireResult replaces an error response with its RemoteError form so a Result survives encoding.
func WireResult(r types.Result) types.Result {
	if err, ok := r.Response.(error); ok {
		r.Response = NewRemoteError(err)
	}
	return r
}
