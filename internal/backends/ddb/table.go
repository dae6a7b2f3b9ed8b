package ddb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	SProfile = "PROFILE"
	SName    = "NAME"
)

func pkProfiles() string                 { return SProfile }
func skName(name string) string          { return fmt.Sprintf("%s#%s", SName, name) }
func skNamePrefix() string               { return SName + "#" }
func awsString(s string) *string         { return &s }
func awsBool(b bool) *bool               { return &b }
func errorAs(err error, target any) bool { return errors.As(err, target) }

func parseProfileName(sk string) (string, error) {
	name, ok := strings.CutPrefix(sk, skNamePrefix())
	if !ok || name == "" {
		return "", fmt.Errorf("invalid sort key %q", sk)
	}
	return name, nil
}

// createTableIfNotExists creates the table; an already existing table is not an error.
func createTableIfNotExists(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: awsString("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: awsString("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: awsString("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: awsString("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	var re *ddbTypes.ResourceInUseException
	if err != nil && !errorAs(err, &re) {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}
