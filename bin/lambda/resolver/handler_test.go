package main

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedTable returns one scan page per entry in counts.
type pagedTable struct {
	counts []int32
	inputs []*dynamodb.ScanInput
	err    error
}

func (p *pagedTable) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	p.inputs = append(p.inputs, in)
	if p.err != nil {
		return nil, p.err
	}

	i := len(p.inputs) - 1
	out := &dynamodb.ScanOutput{Count: p.counts[i]}
	if i < len(p.counts)-1 {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "page"},
		}
	}
	return out, nil
}

func TestHandle_Ping(t *testing.T) {
	r := &resolver{db: &pagedTable{}, table: "items"}
	got, err := r.Handle(context.Background(), request{Field: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
}

func TestHandle_ItemCountAcrossPages(t *testing.T) {
	db := &pagedTable{counts: []int32{3, 4, 0, 2}}
	r := &resolver{db: db, table: "items"}

	got, err := r.Handle(context.Background(), request{Field: "itemCount"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)

	require.Len(t, db.inputs, 4)
	assert.Equal(t, "items", *db.inputs[0].TableName)
	assert.Equal(t, types.SelectCount, db.inputs[0].Select)
	assert.Nil(t, db.inputs[0].ExclusiveStartKey)
	assert.NotNil(t, db.inputs[1].ExclusiveStartKey)
}

func TestHandle_ItemCountError(t *testing.T) {
	r := &resolver{db: &pagedTable{err: errors.New("boom")}, table: "items"}
	_, err := r.Handle(context.Background(), request{Field: "itemCount"})
	assert.ErrorContains(t, err, "scan items")
}

func TestHandle_UnknownField(t *testing.T) {
	r := &resolver{db: &pagedTable{}, table: "items"}
	_, err := r.Handle(context.Background(), request{Field: "listItems"})
	assert.ErrorIs(t, err, ErrUnknownField)
}
