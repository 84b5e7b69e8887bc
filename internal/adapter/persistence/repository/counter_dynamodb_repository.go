package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultCountersTableName = "invoice_counters"

type counterItem struct {
	CustomerClass string `dynamodbav:"customer_class"`
	LastValue     int    `dynamodbav:"last_value"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// CounterDynamoRepository persists one InvoiceCounter per customer class.
//
// Table requirements:
//   - PK: customer_class (string)

type CounterDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ICounterRepository = (*CounterDynamoRepository)(nil)

func NewCounterDynamoRepository(ddb DynamoAPI, tableName string) *CounterDynamoRepository {
	if tableName == "" {
		tableName = DefaultCountersTableName
	}
	return &CounterDynamoRepository{ddb: ddb, tableName: tableName}
}

func counterKey(class entities.CustomerClass) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"customer_class": &types.AttributeValueMemberS{Value: string(class)},
	}
}

func (r *CounterDynamoRepository) Get(ctx context.Context, class entities.CustomerClass) (entities.InvoiceCounter, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            counterKey(class),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.InvoiceCounter{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.InvoiceCounter{}, false, nil
	}

	var it counterItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.InvoiceCounter{}, false, err
	}
	return fromCounterItem(it), true, nil
}

func (r *CounterDynamoRepository) Set(ctx context.Context, class entities.CustomerClass, lastValue int) (entities.InvoiceCounter, error) {
	c := entities.InvoiceCounter{CustomerClass: class, LastValue: lastValue, UpdatedAt: time.Now().UTC()}
	av, err := attributevalue.MarshalMap(toCounterItem(c))
	if err != nil {
		return entities.InvoiceCounter{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return entities.InvoiceCounter{}, err
	}
	return c, nil
}

// Increment adds one to last_value and returns the new value. A missing document starts at 0.
func (r *CounterDynamoRepository) Increment(ctx context.Context, class entities.CustomerClass) (int, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              counterKey(class),
		UpdateExpression: aws.String("ADD #last :one SET #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#last":       "last_value",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["last_value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: last_value missing from update result", class)
	}
	return strconv.Atoi(n.Value)
}

func toCounterItem(c entities.InvoiceCounter) counterItem {
	return counterItem{
		CustomerClass: string(c.CustomerClass),
		LastValue:     c.LastValue,
		UpdatedAt:     formatTime(c.UpdatedAt),
	}
}

func fromCounterItem(it counterItem) entities.InvoiceCounter {
	return entities.InvoiceCounter{
		CustomerClass: entities.CustomerClass(it.CustomerClass),
		LastValue:     it.LastValue,
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
