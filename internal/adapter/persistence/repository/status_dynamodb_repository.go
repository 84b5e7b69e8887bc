package repository

import (
	"context"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const DefaultStatusesTableName = "statuses"

type statusItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Order     int    `dynamodbav:"order"`
	Kind      string `dynamodbav:"kind"`
	Color     string `dynamodbav:"color,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// StatusDynamoRepository persists the lifecycle ledger. The table is small and always
// read whole.

type StatusDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IStatusRepository = (*StatusDynamoRepository)(nil)

func NewStatusDynamoRepository(ddb DynamoAPI, tableName string) *StatusDynamoRepository {
	if tableName == "" {
		tableName = DefaultStatusesTableName
	}
	return &StatusDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *StatusDynamoRepository) List(ctx context.Context) ([]entities.StatusDefinition, error) {
	items, err := scanAll[statusItem](ctx, r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.StatusDefinition, 0, len(items))
	for _, it := range items {
		out = append(out, fromStatusItem(it))
	}
	return out, nil
}

func (r *StatusDynamoRepository) GetByID(ctx context.Context, id string) (entities.StatusDefinition, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	if len(out.Item) == 0 {
		return entities.StatusDefinition{}, nil
	}

	var it statusItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.StatusDefinition{}, err
	}
	return fromStatusItem(it), nil
}

func (r *StatusDynamoRepository) Create(ctx context.Context, s entities.StatusDefinition) (entities.StatusDefinition, error) {
	return r.put(ctx, s, "attribute_not_exists(#id)")
}

// Update replaces the whole entry. A missing id yields a zero StatusDefinition.
func (r *StatusDynamoRepository) Update(ctx context.Context, s entities.StatusDefinition) (entities.StatusDefinition, error) {
	updated, err := r.put(ctx, s, "attribute_exists(#id)")
	if err != nil && isConditionalCheckFailed(err) {
		return entities.StatusDefinition{}, nil
	}
	return updated, err
}

func (r *StatusDynamoRepository) put(ctx context.Context, s entities.StatusDefinition, cond string) (entities.StatusDefinition, error) {
	av, err := attributevalue.MarshalMap(toStatusItem(s))
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String(cond),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.StatusDefinition{}, err
	}
	return s, nil
}

func toStatusItem(s entities.StatusDefinition) statusItem {
	return statusItem{
		ID:        s.ID,
		Name:      s.Name,
		Order:     s.Order,
		Kind:      string(s.Kind),
		Color:     s.Color,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

func fromStatusItem(it statusItem) entities.StatusDefinition {
	kind := entities.StatusKind(it.Kind)
	if !kind.Valid() {
		kind = entities.StatusKindNormal
	}
	return entities.StatusDefinition{
		ID:        it.ID,
		Name:      it.Name,
		Order:     it.Order,
		Kind:      kind,
		Color:     it.Color,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
