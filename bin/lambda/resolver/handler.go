package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/30Piraten/serverless-monitoring/log"
)

var ErrUnknownField = errors.New("unknown field")

// request is the payload built by the Lambda data source request template.
type request struct {
	Field     string          `json:"field"`
	Arguments json.RawMessage `json:"arguments"`
}

type resolver struct {
	db    dynamodb.ScanAPIClient
	table string
}

func (r *resolver) Handle(ctx context.Context, req request) (any, error) {
	logger := log.Get().With(zap.String("field", req.Field))

	switch req.Field {
	case "ping":
		return "pong", nil
	case "itemCount":
		n, err := r.itemCount(ctx)
		if err != nil {
			logger.Error("failed to count items", zap.Error(err))
			return nil, err
		}
		logger.Debug("counted items", zap.Int64("count", n))
		return n, nil
	default:
		logger.Warn("unresolvable field")
		return nil, errors.Wrapf(ErrUnknownField, "%q", req.Field)
	}
}

// itemCount counts every item in the table, following scan pagination.
func (r *resolver) itemCount(ctx context.Context) (int64, error) {
	p := dynamodb.NewScanPaginator(r.db, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
		Select:    types.SelectCount,
	})

	var total int64
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, errors.Wrapf(err, "scan %s", r.table)
		}
		total += int64(page.Count)
	}
	return total, nil
}
