package repository

import (
	"context"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultInvoicesTableName = "invoices"
	invoicesWorkOrderIDIndex = "work_order_id-index"
)

type invoiceItem struct {
	ID              string         `dynamodbav:"id"`
	WorkOrderID     string         `dynamodbav:"work_order_id"`
	InvoiceNumber   string         `dynamodbav:"invoice_number"`
	CustomerClass   string         `dynamodbav:"customer_class"`
	CustomerID      string         `dynamodbav:"customer_id"`
	VehicleID       string         `dynamodbav:"vehicle_id"`
	LineItems       []lineItemItem `dynamodbav:"line_items"`
	Total           string         `dynamodbav:"total"`
	PaymentMethodID string         `dynamodbav:"payment_method_id"`
	Notes           string         `dynamodbav:"notes,omitempty"`
	IssuedAt        string         `dynamodbav:"issued_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: work_order_id-index (PK: work_order_id)
//
// It also implements interfaces.IAtomicInvoiceIssuer: the invoice put and the work order
// completion run in one TransactWriteItems call against both tables.

type InvoiceDynamoRepository struct {
	ddb             DynamoAPI
	tableName       string
	workOrdersTable string
}

var (
	_ interfaces.IInvoiceRepository   = (*InvoiceDynamoRepository)(nil)
	_ interfaces.IAtomicInvoiceIssuer = (*InvoiceDynamoRepository)(nil)
)

func NewInvoiceDynamoRepository(ddb DynamoAPI, tableName, workOrdersTable string) *InvoiceDynamoRepository {
	if tableName == "" {
		tableName = DefaultInvoicesTableName
	}
	if workOrdersTable == "" {
		workOrdersTable = DefaultWorkOrdersTableName
	}
	return &InvoiceDynamoRepository{ddb: ddb, tableName: tableName, workOrdersTable: workOrdersTable}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

// IssueAtomically writes the invoice and completes its work order, or neither.
// The completion is conditioned on the work order existing and not being completed yet.
func (r *InvoiceDynamoRepository) IssueAtomically(ctx context.Context, inv entities.Invoice, completedAt time.Time) error {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return err
	}
	ts := formatTime(completedAt)

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     av,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Update: &types.Update{
					TableName:           aws.String(r.workOrdersTable),
					Key:                 idKey(inv.WorkOrderID),
					ConditionExpression: aws.String("attribute_exists(#id) AND #status <> :status"),
					UpdateExpression:    aws.String("SET #status = :status, #completed_at = :ts, #updated_at = :ts"),
					ExpressionAttributeNames: map[string]string{
						"#id":           "id",
						"#status":       "status",
						"#completed_at": "completed_at",
						"#updated_at":   "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":status": &types.AttributeValueMemberS{Value: entities.WorkOrderStatusCompleted},
						":ts":     &types.AttributeValueMemberS{Value: ts},
					},
				},
			},
		},
	})
	return err
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) GetByWorkOrderID(ctx context.Context, workOrderID string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesWorkOrderIDIndex),
		KeyConditionExpression: aws.String("work_order_id = :wid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":wid": &types.AttributeValueMemberS{Value: workOrderID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:              inv.ID,
		WorkOrderID:     inv.WorkOrderID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerClass:   string(inv.CustomerClass),
		CustomerID:      inv.CustomerID,
		VehicleID:       inv.VehicleID,
		LineItems:       toLineItemItems(inv.LineItems),
		Total:           inv.Total.String(),
		PaymentMethodID: inv.PaymentMethodID,
		Notes:           inv.Notes,
		IssuedAt:        formatTime(inv.IssuedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:              it.ID,
		WorkOrderID:     it.WorkOrderID,
		InvoiceNumber:   it.InvoiceNumber,
		CustomerClass:   entities.CustomerClass(it.CustomerClass),
		CustomerID:      it.CustomerID,
		VehicleID:       it.VehicleID,
		LineItems:       fromLineItemItems(it.LineItems),
		Total:           parseDecimal(it.Total),
		PaymentMethodID: it.PaymentMethodID,
		Notes:           it.Notes,
		IssuedAt:        parseTime(it.IssuedAt),
	}
}
