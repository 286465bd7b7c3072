package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"

	"github.com/30Piraten/serverless-monitoring/config"
	"github.com/30Piraten/serverless-monitoring/monitoring"
)

func initializeStack(scope constructs.Construct, id string, sprops *awscdk.StackProps, cfg *config.Config, topicName string) *stackResources {
	var props awscdk.StackProps
	if sprops != nil {
		props = *sprops
	}
	stack := awscdk.NewStack(scope, &id, &props)

	return &stackResources{
		stack:      stack,
		alarmTopic: createAlarmTopic(stack, topicName, cfg.AlarmEmail),
	}
}

func createTable(stack awscdk.Stack, id string, partitionKey string) awsdynamodb.Table {
	return awsdynamodb.NewTable(stack, jsii.String(id), &awsdynamodb.TableProps{
		PartitionKey: &awsdynamodb.Attribute{
			Name: jsii.String(partitionKey),
			Type: awsdynamodb.AttributeType_STRING,
		},
		BillingMode:   awsdynamodb.BillingMode_PAY_PER_REQUEST,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})
}

// synthPlan builds the plan's alarms and dashboard, all notifying the stack's
// alarm topic. Any failure aborts synthesis.
func (r *stackResources) synthPlan(plan *monitoring.Plan, err error) (map[string]awscloudwatch.Alarm, awscloudwatch.Dashboard) {
	if err != nil {
		panic(errors.Wrapf(err, "compose monitoring for %s", *r.stack.StackName()))
	}

	m := newMonitor(r.stack, map[string]awssns.ITopic{alarmTopicID: r.alarmTopic})
	alarms, dashboard, err := m.synth(plan)
	if err != nil {
		panic(errors.Wrapf(err, "synthesize monitoring for %s", *r.stack.StackName()))
	}
	return alarms, dashboard
}
