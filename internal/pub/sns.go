package pub

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// messageGroup orders gateway events on FIFO topics.
const messageGroup = "zeebeapi"

type snsPub struct{ cli *sns.Client }

func NewSNS(c *sns.Client) *snsPub { return &snsPub{cli: c} }

func (s *snsPub) PublishRaw(ctx context.Context, arn string, payload []byte) error {
	_, err := s.cli.Publish(ctx, publishInput(arn, payload))
	return err
}

func publishInput(arn string, payload []byte) *sns.PublishInput {
	in := &sns.PublishInput{
		TopicArn: &arn,
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"content-type": {DataType: aws.String("String"), StringValue: aws.String("application/json")},
		},
	}
	if strings.HasSuffix(arn, ".fifo") {
		in.MessageGroupId = aws.String(messageGroup)
	}
	return in
}
