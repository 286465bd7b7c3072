package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"

	"github.com/30Piraten/serverless-monitoring/config"
)

type WebserviceStackProps struct {
	awscdk.StackProps
	Config *config.Config
}

type GraphQLStackProps struct {
	awscdk.StackProps
	Config *config.Config
}

// alarmTopicID is the notification target id every plan in a stack uses.
const alarmTopicID = "alarm-topic"

type stackResources struct {
	stack      awscdk.Stack
	alarmTopic awssns.ITopic
}
