package main

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTable applies the handler's ADD/SET update to an in-memory map.
type fakeTable struct {
	hits  map[string]int64
	seen  map[string]string
	calls []*dynamodb.UpdateItemInput
	err   error
}

func newFakeTable() *fakeTable {
	return &fakeTable{hits: map[string]int64{}, seen: map[string]string{}}
}

func (f *fakeTable) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}

	path := in.Key["path"].(*types.AttributeValueMemberS).Value
	f.hits[path]++
	f.seen[path] = in.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberS).Value

	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"path":     &types.AttributeValueMemberS{Value: path},
			"hits":     &types.AttributeValueMemberN{Value: strconv.FormatInt(f.hits[path], 10)},
			"lastSeen": &types.AttributeValueMemberS{Value: f.seen[path]},
		},
	}, nil
}

func newTestHandler(db itemUpdater) *handler {
	return &handler{
		db:    db,
		table: "hits",
		now:   func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestHandle_CountsHits(t *testing.T) {
	db := newFakeTable()
	h := newTestHandler(db)
	req := events.APIGatewayV2HTTPRequest{RawPath: "/hello"}

	_, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	resp, err := h.Handle(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Headers["Content-Type"])
	assert.Contains(t, resp.Body, "/hello has been hit 2 times")

	require.Len(t, db.calls, 2)
	assert.Equal(t, "hits", *db.calls[0].TableName)
	assert.Equal(t, "2024-05-01T12:00:00Z", db.seen["/hello"])
	assert.Equal(t, types.ReturnValueAllNew, db.calls[0].ReturnValues)
}

func TestHandle_RootPath(t *testing.T) {
	db := newFakeTable()
	resp, err := newTestHandler(db).Handle(context.Background(), events.APIGatewayV2HTTPRequest{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), db.hits["/"])
}

func TestHandle_StoreFailure(t *testing.T) {
	db := newFakeTable()
	db.err = errors.New("throttled")

	resp, err := newTestHandler(db).Handle(context.Background(), events.APIGatewayV2HTTPRequest{RawPath: "/x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, resp.Body, "throttled")
}
