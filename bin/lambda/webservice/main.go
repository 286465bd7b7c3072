package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/30Piraten/serverless-monitoring/config"
	"github.com/30Piraten/serverless-monitoring/log"
)

func main() {
	table, err := config.Require("TABLE_NAME")
	if err != nil {
		log.Get().Fatal("missing configuration", zap.Error(err))
	}

	// Clients are created once per cold start
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Get().Fatal("failed to load AWS config", zap.Error(err))
	}

	h := &handler{
		db:    dynamodb.NewFromConfig(cfg),
		table: table,
		now:   time.Now,
	}
	lambda.Start(h.Handle)
}
