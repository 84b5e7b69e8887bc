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
	DefaultWorkOrdersTableName  = "work_orders"
	workOrdersClassCreatedIndex = "customer_class-created_at-index"
)

type lineItemItem struct {
	RefType     string `dynamodbav:"ref_type"`
	RefID       string `dynamodbav:"ref_id"`
	Description string `dynamodbav:"description,omitempty"`
	Price       string `dynamodbav:"price"`
	Notes       string `dynamodbav:"notes,omitempty"`
}

type workOrderItem struct {
	ID            string         `dynamodbav:"id"`
	CustomerID    string         `dynamodbav:"customer_id"`
	VehicleID     string         `dynamodbav:"vehicle_id"`
	CustomerClass string         `dynamodbav:"customer_class"`
	InvoiceNumber string         `dynamodbav:"invoice_number"`
	Status        string         `dynamodbav:"status"`
	IsArchived    bool           `dynamodbav:"is_archived"`
	IsCanceled    bool           `dynamodbav:"is_canceled"`
	LineItems     []lineItemItem `dynamodbav:"line_items"`
	Total         string         `dynamodbav:"total"`
	Notes         string         `dynamodbav:"notes,omitempty"`
	CreatedAt     string         `dynamodbav:"created_at"`
	UpdatedAt     string         `dynamodbav:"updated_at"`
	CompletedAt   string         `dynamodbav:"completed_at,omitempty"`
}

// WorkOrderDynamoRepository persists WorkOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_class-created_at-index (PK: customer_class, SK: created_at)
//
// The GSI serves the allocator's ordered lookup. Every other listing is a paginated
// scan, so the allocator fallback still works while the index is unavailable.

type WorkOrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb DynamoAPI, tableName string) *WorkOrderDynamoRepository {
	if tableName == "" {
		tableName = DefaultWorkOrdersTableName
	}
	return &WorkOrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *WorkOrderDynamoRepository) Create(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(w))
	if err != nil {
		return entities.WorkOrder{}, err
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
		return entities.WorkOrder{}, err
	}
	return w, nil
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

// FindLatestByCustomerClass is created_at descending, limit 1, on the class index.
func (r *WorkOrderDynamoRepository) FindLatestByCustomerClass(ctx context.Context, class entities.CustomerClass) (entities.WorkOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workOrdersClassCreatedIndex),
		KeyConditionExpression: aws.String("#cc = :cc"),
		ExpressionAttributeNames: map[string]string{
			"#cc": "customer_class",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cc": &types.AttributeValueMemberS{Value: string(class)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Items) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) ListByCustomerClass(ctx context.Context, class entities.CustomerClass) ([]entities.WorkOrder, error) {
	return r.scan(ctx, "#cc = :cc",
		map[string]string{"#cc": "customer_class"},
		map[string]types.AttributeValue{":cc": &types.AttributeValueMemberS{Value: string(class)}},
	)
}

func (r *WorkOrderDynamoRepository) ListAll(ctx context.Context) ([]entities.WorkOrder, error) {
	return r.scan(ctx, "", nil, nil)
}

func (r *WorkOrderDynamoRepository) FindByInvoiceNumber(ctx context.Context, class entities.CustomerClass, invoiceNumber string) ([]entities.WorkOrder, error) {
	return r.scan(ctx, "#cc = :cc AND #num = :num",
		map[string]string{"#cc": "customer_class", "#num": "invoice_number"},
		map[string]types.AttributeValue{
			":cc":  &types.AttributeValueMemberS{Value: string(class)},
			":num": &types.AttributeValueMemberS{Value: invoiceNumber},
		},
	)
}

func (r *WorkOrderDynamoRepository) scan(ctx context.Context, filter string, names map[string]string, values map[string]types.AttributeValue) ([]entities.WorkOrder, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if filter != "" {
		in.FilterExpression = aws.String(filter)
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}
	items, err := scanAll[workOrderItem](ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.WorkOrder, 0, len(items))
	for _, it := range items {
		out = append(out, fromWorkOrderItem(it))
	}
	return out, nil
}

func (r *WorkOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status string) (entities.WorkOrder, error) {
	return r.update(ctx, id, "SET #status = :status",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: status}},
	)
}

func (r *WorkOrderDynamoRepository) MarkCanceled(ctx context.Context, id string, status string) (entities.WorkOrder, error) {
	return r.update(ctx, id, "SET #status = :status, #canceled = :true",
		map[string]string{"#status": "status", "#canceled": "is_canceled"},
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":true":   &types.AttributeValueMemberBOOL{Value: true},
		},
	)
}

func (r *WorkOrderDynamoRepository) MarkArchived(ctx context.Context, id string) (entities.WorkOrder, error) {
	return r.update(ctx, id, "SET #archived = :true",
		map[string]string{"#archived": "is_archived"},
		map[string]types.AttributeValue{":true": &types.AttributeValueMemberBOOL{Value: true}},
	)
}

func (r *WorkOrderDynamoRepository) Complete(ctx context.Context, id string, completedAt time.Time) (entities.WorkOrder, error) {
	return r.update(ctx, id, "SET #status = :status, #completed_at = :completed_at",
		map[string]string{"#status": "status", "#completed_at": "completed_at"},
		map[string]types.AttributeValue{
			":status":       &types.AttributeValueMemberS{Value: entities.WorkOrderStatusCompleted},
			":completed_at": &types.AttributeValueMemberS{Value: formatTime(completedAt)},
		},
	)
}

// update appends updated_at to expr. A missing id yields a zero WorkOrder.
func (r *WorkOrderDynamoRepository) update(ctx context.Context, id, expr string, names map[string]string, values map[string]types.AttributeValue) (entities.WorkOrder, error) {
	values[":updated_at"] = &types.AttributeValueMemberS{Value: formatTime(time.Now())}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr + ", #updated_at = :updated_at"),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#updated_at": "updated_at"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.WorkOrder{}, nil
		}
		return entities.WorkOrder{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.WorkOrder{}, nil
	}
	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func toLineItemItems(items []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemItem{
			RefType:     string(li.RefType),
			RefID:       li.RefID,
			Description: li.Description,
			Price:       li.Price.String(),
			Notes:       li.Notes,
		})
	}
	return out
}

func fromLineItemItems(items []lineItemItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, entities.LineItem{
			RefType:     entities.LineItemRefType(it.RefType),
			RefID:       it.RefID,
			Description: it.Description,
			Price:       parseDecimal(it.Price),
			Notes:       it.Notes,
		})
	}
	return out
}

func toWorkOrderItem(w entities.WorkOrder) workOrderItem {
	return workOrderItem{
		ID:            w.ID,
		CustomerID:    w.CustomerID,
		VehicleID:     w.VehicleID,
		CustomerClass: string(w.CustomerClass),
		InvoiceNumber: w.InvoiceNumber,
		Status:        w.Status,
		IsArchived:    w.IsArchived,
		IsCanceled:    w.IsCanceled,
		LineItems:     toLineItemItems(w.LineItems),
		Total:         w.Total.String(),
		Notes:         w.Notes,
		CreatedAt:     formatTime(w.CreatedAt),
		UpdatedAt:     formatTime(w.UpdatedAt),
		CompletedAt:   formatOptionalTime(w.CompletedAt),
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	return entities.WorkOrder{
		ID:            it.ID,
		CustomerID:    it.CustomerID,
		VehicleID:     it.VehicleID,
		CustomerClass: entities.CustomerClass(it.CustomerClass),
		InvoiceNumber: it.InvoiceNumber,
		Status:        it.Status,
		IsArchived:    it.IsArchived,
		IsCanceled:    it.IsCanceled,
		LineItems:     fromLineItemItems(it.LineItems),
		Total:         parseDecimal(it.Total),
		Notes:         it.Notes,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
		CompletedAt:   parseOptionalTime(it.CompletedAt),
	}
}
