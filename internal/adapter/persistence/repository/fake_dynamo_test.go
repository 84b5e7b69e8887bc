package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeDynamo records the last input of each call and replays canned outputs.
type fakeDynamo struct {
	putIn      []*dynamodb.PutItemInput
	getIn      *dynamodb.GetItemInput
	updateIn   *dynamodb.UpdateItemInput
	queryIn    *dynamodb.QueryInput
	scanIn     []*dynamodb.ScanInput
	transactIn *dynamodb.TransactWriteItemsInput

	putErr      error
	getOut      *dynamodb.GetItemOutput
	updateOut   *dynamodb.UpdateItemOutput
	updateErr   error
	queryOut    *dynamodb.QueryOutput
	scanPages   []*dynamodb.ScanOutput
	transactErr error
}

var _ DynamoAPI = (*fakeDynamo)(nil)

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = append(f.putIn, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getIn = in
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryIn = in
	if f.queryOut == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryOut, nil
}

// Scan serves scanPages in order, chaining them through LastEvaluatedKey.
func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanIn = append(f.scanIn, in)
	idx := len(f.scanIn) - 1
	if idx >= len(f.scanPages) {
		return &dynamodb.ScanOutput{}, nil
	}
	page := *f.scanPages[idx]
	if idx < len(f.scanPages)-1 {
		page.LastEvaluatedKey = idKey("cursor")
	}
	return &page, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transactIn = in
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}
