// Where: internal/infra/audit/dynamodb.go
// What: DynamoDB audit sink.
// Why: Store one item per mutation, keyed by operator and timestamp.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoPutter is the subset of the DynamoDB client the sink uses.
type DynamoPutter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRecorder writes events into Table.
type DynamoRecorder struct {
	Client DynamoPutter
	Table  string
}

func (r DynamoRecorder) Record(ctx context.Context, event Event) error {
	if r.Client == nil {
		return errDynamoClientNil
	}
	_, err := r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.Table),
		Item:      eventItem(event),
	})
	if err != nil {
		return fmt.Errorf("put audit item into %s: %w", r.Table, err)
	}
	return nil
}

func eventItem(event Event) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"operator": &types.AttributeValueMemberS{Value: event.Operator},
		"time":     &types.AttributeValueMemberS{Value: event.Time.UTC().Format(time.RFC3339Nano)},
		"org":      &types.AttributeValueMemberS{Value: event.Org},
		"action":   &types.AttributeValueMemberS{Value: event.Action},
		"outcome":  &types.AttributeValueMemberS{Value: event.Outcome},
	}
	optional := map[string]string{
		"group":  event.Group,
		"user":   event.User,
		"repo":   event.Repo,
		"detail": event.Detail,
	}
	for key, value := range optional {
		if value != "" {
			item[key] = &types.AttributeValueMemberS{Value: value}
		}
	}
	return item
}
