package ddb

import (
	"context"
	"time"
	"zeebeapi/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ProfileStore struct {
	table string
	cli   *dynamodb.Client
	// pageSize caps the items per list page. Zero leaves it to DynamoDB.
	pageSize int32
}

type profileItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	types.Profile
}

// NewProfileStore creates the table only if it doesn't exist.
func NewProfileStore(ctx context.Context, table string, cli *dynamodb.Client) (*ProfileStore, error) {
	if err := createTableIfNotExists(ctx, cli, table); err != nil {
		return nil, err
	}
	return &ProfileStore{table: table, cli: cli}, nil
}

func (s *ProfileStore) GetProfile(ctx context.Context, name string) (types.Profile, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkProfiles()},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skName(name)},
		},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return types.Profile{}, err
	}
	if out.Item == nil {
		return types.Profile{}, types.Err(types.ErrNotFound, nil, "profile %q", name)
	}
	var item profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return types.Profile{}, err
	}
	return item.Profile, nil
}

func (s *ProfileStore) ListProfiles(ctx context.Context) ([]string, error) {
	// Only project the sort key; the name is encoded in it.
	var names []string
	var limit *int32
	if s.pageSize > 0 {
		limit = aws.Int32(s.pageSize)
	}
	p := dynamodb.NewQueryPaginator(s.cli, &dynamodb.QueryInput{
		TableName:              &s.table,
		KeyConditionExpression: awsString("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: pkProfiles()},
			":sk": &ddbTypes.AttributeValueMemberS{Value: skNamePrefix()},
		},
		ProjectionExpression: awsString("SK"),
		Limit:                limit,
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var key struct {
				SK string `dynamodbav:"SK"`
			}
			if err := attributevalue.UnmarshalMap(item, &key); err != nil {
				return nil, err
			}
			name, err := parseProfileName(key.SK)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *ProfileStore) PutProfile(ctx context.Context, profile types.Profile) error {
	if err := profile.Validate(); err != nil {
		return types.Err(types.ErrInvalidProfile, err, "")
	}
	item, err := attributevalue.MarshalMap(profileItem{
		PK:      pkProfiles(),
		SK:      skName(profile.Name),
		Profile: profile,
	})
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	return err
}

func (s *ProfileStore) DeleteProfile(ctx context.Context, name string) error {
	_, err := s.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkProfiles()},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skName(name)},
		},
	})
	return err
}

func (s *ProfileStore) ClearAll(ctx context.Context) error {
	// delete all items in the table
	_, err := s.cli.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: &s.table,
	})
	if err != nil {
		return err
	}
	// wait until the table is deleted
	err = dynamodb.NewTableNotExistsWaiter(s.cli).Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, 30*time.Second)
	if err != nil {
		return err
	}
	// Recreate the table
	return createTableIfNotExists(ctx, s.cli, s.table)
}
