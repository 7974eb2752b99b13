package repository

import (
	"context"
	"time"

	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSessionsTableName = "sessions"

// dynamoSessionAPI is the subset of *dynamodb.Client the store uses.
type dynamoSessionAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type sessionItem struct {
	ID        string `dynamodbav:"id"`
	Token     string `dynamodbav:"token"`
	CreatedAt string `dynamodbav:"created_at"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// SessionDynamoRepository keeps session credentials in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - TTL attribute: expires_at (epoch seconds)

type SessionDynamoRepository struct {
	ddb       dynamoSessionAPI
	tableName string
	ttl       time.Duration
	now       func() time.Time
}

var _ interfaces.ISessionStore = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb dynamoSessionAPI, tableName string, ttl time.Duration) *SessionDynamoRepository {
	if tableName == "" {
		tableName = defaultSessionsTableName
	}
	return &SessionDynamoRepository{ddb: ddb, tableName: tableName, ttl: ttl, now: time.Now}
}

func (r *SessionDynamoRepository) Get(ctx context.Context, key string) (string, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if len(out.Item) == 0 {
		return "", nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return "", err
	}
	// DynamoDB removes expired items lazily.
	if it.ExpiresAt > 0 && r.now().Unix() >= it.ExpiresAt {
		return "", nil
	}
	return it.Token, nil
}

func (r *SessionDynamoRepository) Set(ctx context.Context, key, token string) error {
	now := r.now().UTC()
	it := sessionItem{
		ID:        key,
		Token:     token,
		CreatedAt: now.Format(time.RFC3339Nano),
	}
	if r.ttl > 0 {
		it.ExpiresAt = now.Add(r.ttl).Unix()
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *SessionDynamoRepository) Clear(ctx context.Context, key string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: key},
		},
	})
	return err
}
