package main

import (
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappsync"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/30Piraten/serverless-monitoring/log"
	"github.com/30Piraten/serverless-monitoring/monitoring"
)

// lambdaPayload is what the resolver Lambda receives for every field.
const lambdaPayload = `{"field": "$ctx.info.fieldName", "arguments": $util.toJson($ctx.arguments)}`

// NewGraphQLStack provisions an AppSync API backed by a DynamoDB table and a
// resolver Lambda.
func NewGraphQLStack(scope constructs.Construct, id string, props *GraphQLStackProps) awscdk.Stack {
	cfg := props.Config.GraphQL
	resources := initializeStack(scope, id, &props.StackProps, props.Config, cfg.TopicName)
	stack := resources.stack

	api := awsappsync.NewGraphqlApi(stack, jsii.String("ItemsApi"), &awsappsync.GraphqlApiProps{
		Name:       jsii.String(cfg.APIName),
		Definition: awsappsync.Definition_FromFile(jsii.String(filepath.Join(sourceDir(), "graphql", "schema.graphql"))),
		AuthorizationConfig: &awsappsync.AuthorizationConfig{
			DefaultAuthorization: &awsappsync.AuthorizationMode{
				AuthorizationType: awsappsync.AuthorizationType_API_KEY,
				ApiKeyConfig: &awsappsync.ApiKeyConfig{
					Expires: awscdk.Expiration_After(awscdk.Duration_Days(jsii.Number(365))),
				},
			},
		},
		LogConfig: &awsappsync.LogConfig{
			FieldLogLevel: awsappsync.FieldLogLevel_ERROR,
		},
		XrayEnabled: jsii.Bool(true),
	})

	table := createTable(stack, "Items", "id")
	createItemResolvers(api, table)

	handler := createLambdaFunction(stack, "ResolverHandler", "resolver", map[string]*string{
		"TABLE_NAME": table.TableName(),
	})
	table.GrantReadData(handler)
	createLambdaResolvers(api, handler)

	alarms, dashboard := resources.synthPlan(monitoring.NewGraphQLMonitor(monitoring.GraphQLResources{
		APIID:         *api.ApiId(),
		DashboardName: cfg.DashboardName,
	}, monitoring.NotificationTarget{ID: alarmTopicID}))

	createGraphQLOutputs(stack, api, table, dashboard, resources.alarmTopic)

	log.Get().Info("composed stack",
		zap.String("stack", id),
		zap.Int("alarms", len(alarms)),
	)
	return stack
}

// CRUD resolvers mapped straight onto the table
func createItemResolvers(api awsappsync.GraphqlApi, table awsdynamodb.ITable) {
	ds := api.AddDynamoDbDataSource(jsii.String("ItemsDataSource"), table, nil)

	ds.CreateResolver(jsii.String("GetItemResolver"), &awsappsync.BaseResolverProps{
		TypeName:                jsii.String("Query"),
		FieldName:               jsii.String("getItem"),
		RequestMappingTemplate:  awsappsync.MappingTemplate_DynamoDbGetItem(jsii.String("id"), jsii.String("id"), nil),
		ResponseMappingTemplate: awsappsync.MappingTemplate_DynamoDbResultItem(),
	})
	ds.CreateResolver(jsii.String("ListItemsResolver"), &awsappsync.BaseResolverProps{
		TypeName:                jsii.String("Query"),
		FieldName:               jsii.String("listItems"),
		RequestMappingTemplate:  awsappsync.MappingTemplate_DynamoDbScanTable(nil),
		ResponseMappingTemplate: awsappsync.MappingTemplate_DynamoDbResultList(),
	})
	ds.CreateResolver(jsii.String("AddItemResolver"), &awsappsync.BaseResolverProps{
		TypeName:  jsii.String("Mutation"),
		FieldName: jsii.String("addItem"),
		RequestMappingTemplate: awsappsync.MappingTemplate_DynamoDbPutItem(
			awsappsync.PrimaryKey_Partition(jsii.String("id")).Auto(),
			awsappsync.Values_Projecting(jsii.String("input")),
		),
		ResponseMappingTemplate: awsappsync.MappingTemplate_DynamoDbResultItem(),
	})
	ds.CreateResolver(jsii.String("DeleteItemResolver"), &awsappsync.BaseResolverProps{
		TypeName:                jsii.String("Mutation"),
		FieldName:               jsii.String("deleteItem"),
		RequestMappingTemplate:  awsappsync.MappingTemplate_DynamoDbDeleteItem(jsii.String("id"), jsii.String("id")),
		ResponseMappingTemplate: awsappsync.MappingTemplate_DynamoDbResultItem(),
	})
}

// Fields computed by the resolver Lambda
func createLambdaResolvers(api awsappsync.GraphqlApi, fn awslambda.IFunction) {
	ds := api.AddLambdaDataSource(jsii.String("ResolverDataSource"), fn, nil)

	for _, field := range []string{"itemCount", "ping"} {
		ds.CreateResolver(jsii.String(field+"Resolver"), &awsappsync.BaseResolverProps{
			TypeName:                jsii.String("Query"),
			FieldName:               jsii.String(field),
			RequestMappingTemplate:  awsappsync.MappingTemplate_LambdaRequest(jsii.String(lambdaPayload), nil),
			ResponseMappingTemplate: awsappsync.MappingTemplate_LambdaResult(),
		})
	}
}
