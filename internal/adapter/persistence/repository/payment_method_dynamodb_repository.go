package repository

import (
	"context"
	"sort"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const DefaultPaymentMethodsTableName = "payment_methods"

type paymentMethodItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Provider  string `dynamodbav:"provider,omitempty"`
	Active    bool   `dynamodbav:"active"`
	CreatedAt string `dynamodbav:"created_at"`
}

type PaymentMethodDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentMethodRepository = (*PaymentMethodDynamoRepository)(nil)

func NewPaymentMethodDynamoRepository(ddb DynamoAPI, tableName string) *PaymentMethodDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentMethodsTableName
	}
	return &PaymentMethodDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentMethodDynamoRepository) Create(ctx context.Context, pm entities.PaymentMethod) (entities.PaymentMethod, error) {
	av, err := attributevalue.MarshalMap(paymentMethodItem{
		ID:        pm.ID,
		Name:      pm.Name,
		Provider:  pm.Provider,
		Active:    pm.Active,
		CreatedAt: formatTime(pm.CreatedAt),
	})
	if err != nil {
		return entities.PaymentMethod{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.PaymentMethod{}, err
	}
	return pm, nil
}

func (r *PaymentMethodDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentMethod, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.PaymentMethod{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentMethod{}, nil
	}
	var it paymentMethodItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentMethod{}, err
	}
	return fromPaymentMethodItem(it), nil
}

// List returns every method, oldest first.
func (r *PaymentMethodDynamoRepository) List(ctx context.Context) ([]entities.PaymentMethod, error) {
	items, err := scanAll[paymentMethodItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	out := make([]entities.PaymentMethod, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentMethodItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func fromPaymentMethodItem(it paymentMethodItem) entities.PaymentMethod {
	return entities.PaymentMethod{
		ID:        it.ID,
		Name:      it.Name,
		Provider:  it.Provider,
		Active:    it.Active,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
