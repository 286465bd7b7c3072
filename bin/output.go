package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappsync"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/jsii-runtime-go"
)

func createWebserviceOutputs(stack awscdk.Stack, api awsapigatewayv2.HttpApi, table awsdynamodb.Table,
	handler awslambda.Function, dashboard awscloudwatch.Dashboard, topic awssns.ITopic) {
	awscdk.NewCfnOutput(stack, jsii.String("HTTPApiURL"), &awscdk.CfnOutputProps{
		Value: api.Url(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("HitsTableNameOutput"), &awscdk.CfnOutputProps{
		Value: table.TableName(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("LambdaFunctionNameOutput"), &awscdk.CfnOutputProps{
		Value: handler.FunctionName(),
	})

	createMonitoringOutputs(stack, dashboard, topic)
}

func createGraphQLOutputs(stack awscdk.Stack, api awsappsync.GraphqlApi, table awsdynamodb.Table,
	dashboard awscloudwatch.Dashboard, topic awssns.ITopic) {
	awscdk.NewCfnOutput(stack, jsii.String("GraphQLApiURL"), &awscdk.CfnOutputProps{
		Value: api.GraphqlUrl(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("GraphQLApiKey"), &awscdk.CfnOutputProps{
		Value: api.ApiKey(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("ItemsTableNameOutput"), &awscdk.CfnOutputProps{
		Value: table.TableName(),
	})

	createMonitoringOutputs(stack, dashboard, topic)
}

func createMonitoringOutputs(stack awscdk.Stack, dashboard awscloudwatch.Dashboard, topic awssns.ITopic) {
	awscdk.NewCfnOutput(stack, jsii.String("DashboardNameOutput"), &awscdk.CfnOutputProps{
		Value: dashboard.DashboardName(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("AlarmTopicArnOutput"), &awscdk.CfnOutputProps{
		Value: topic.TopicArn(),
	})
}
