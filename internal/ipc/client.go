package ipc

import (
	"context"
	"fmt"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Client sends requests across the bus and waits for their correlated response.
type Client struct {
	Bus Bus
}

func NewClient(bus Bus) *Client {
	return &Client{Bus: bus}
}

// Call publishes payload on event and decodes the response payload into out (which may be nil).
// A response carrying an error is returned as *RemoteError.
func (c *Client) Call(ctx context.Context, event string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return types.Err(types.ErrInvalidRequest, err, "marshal %s payload", event)
	}
	id := uuid.NewString()
	req, err := json.Marshal(Request{ID: id, Payload: body})
	if err != nil {
		return err
	}

	// Subscribe before publishing so a fast responder cannot be missed.
	sub, err := c.Bus.Subscribe(ctx, ResponseChannel(event, id))
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", event, err)
	}
	defer func() {
		_ = sub.Close()
	}()

	if err := c.Bus.Publish(ctx, event, req); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case msg, ok := <-sub.Messages():
		if !ok {
			return fmt.Errorf("%s: subscription closed before response", event)
		}
		var resp Response
		if err := json.Unmarshal(msg, &resp); err != nil {
			return fmt.Errorf("decode %s response: %w", event, err)
		}
		if resp.Err != nil {
			return resp.Err
		}
		if out == nil || len(resp.Payload) == 0 {
			return nil
		}
		return json.Unmarshal(resp.Payload, out)
	}
}
