package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2integrations"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/30Piraten/serverless-monitoring/log"
	"github.com/30Piraten/serverless-monitoring/monitoring"
)

// NewWebserviceStack provisions the HTTP API, its Lambda and table, and the
// alarms and dashboard watching them.
func NewWebserviceStack(scope constructs.Construct, id string, props *WebserviceStackProps) awscdk.Stack {
	cfg := props.Config.Webservice
	resources := initializeStack(scope, id, &props.StackProps, props.Config, cfg.TopicName)
	stack := resources.stack

	// Hits table, keyed by request path
	table := createTable(stack, "Hits", "path")

	// Lambda function
	handler := createLambdaFunction(stack, "DynamoLambdaHandler", "webservice", map[string]*string{
		"TABLE_NAME": table.TableName(),
	})
	table.GrantReadWriteData(handler)

	// The API invokes the live alias when canary deployments are enabled
	var target awslambda.IFunction = handler
	var alias awslambda.Alias
	if cfg.Canary {
		alias = createLambdaAlias(stack, handler)
		target = alias
	}

	// HTTP API
	api := awsapigatewayv2.NewHttpApi(stack, jsii.String("HttpAPI"), &awsapigatewayv2.HttpApiProps{
		DefaultIntegration: awsapigatewayv2integrations.NewHttpLambdaIntegration(
			jsii.String("DynamoLambdaIntegration"), target, nil),
	})

	// Alarms and dashboard
	alarms, dashboard := resources.synthPlan(monitoring.NewWebserviceMonitor(monitoring.WebserviceResources{
		APIID:         *api.HttpApiId(),
		FunctionName:  *handler.FunctionName(),
		TableName:     *table.TableName(),
		DashboardName: cfg.DashboardName,
	}, monitoring.NotificationTarget{ID: alarmTopicID}))

	if cfg.Canary {
		createCodeDeployResources(stack, alias, alarms[monitoring.LambdaErrorAlarmName])
	}

	createWebserviceOutputs(stack, api, table, handler, dashboard, resources.alarmTopic)

	log.Get().Info("composed stack",
		zap.String("stack", id),
		zap.Int("alarms", len(alarms)),
		zap.Bool("canary", cfg.Canary),
	)
	return stack
}
