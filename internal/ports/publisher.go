package ports

import "context"

// Publisher delivers gateway events to a topic. arn identifies the topic.
type Publisher interface {
	PublishRaw(ctx context.Context, arn string, payload []byte) error
}
