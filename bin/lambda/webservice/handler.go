package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/30Piraten/serverless-monitoring/log"
)

// itemUpdater is the part of the DynamoDB client the handler needs.
type itemUpdater interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// hit is the table row for one request path.
type hit struct {
	Path     string `dynamodbav:"path"`
	Hits     int64  `dynamodbav:"hits"`
	LastSeen string `dynamodbav:"lastSeen"`
}

type handler struct {
	db    itemUpdater
	table string
	now   func() time.Time
}

// record increments the hit counter for path and returns the updated row.
func (h *handler) record(ctx context.Context, path string) (*hit, error) {
	out, err := h.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(h.table),
		Key: map[string]types.AttributeValue{
			"path": &types.AttributeValueMemberS{Value: path},
		},
		UpdateExpression: aws.String("ADD hits :one SET lastSeen = :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: h.now().UTC().Format(time.RFC3339)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "update hits for %q", path)
	}

	var row hit
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return nil, errors.Wrap(err, "decode hit row")
	}
	return &row, nil
}

func (h *handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	path := req.RawPath
	if path == "" {
		path = "/"
	}
	logger := log.Get().With(
		zap.String("path", path),
		zap.String("request_id", req.RequestContext.RequestID),
	)

	row, err := h.record(ctx, path)
	if err != nil {
		logger.Error("failed to record hit", zap.Error(err))
		return textResponse(http.StatusInternalServerError, "internal error\n"), nil
	}

	logger.Debug("recorded hit", zap.Int64("hits", row.Hits))
	return textResponse(http.StatusOK,
		fmt.Sprintf("You have connected with the Lambda! %s has been hit %d times\n", row.Path, row.Hits)), nil
}

func textResponse(status int, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       body,
	}
}
