package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodedeploy"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/jsii-runtime-go"
)

// Canary rollout of the webservice Lambda, rolled back when errorAlarm fires
func createCodeDeployResources(stack awscdk.Stack, alias awslambda.Alias, errorAlarm awscloudwatch.IAlarm) awscodedeploy.LambdaDeploymentGroup {
	app := awscodedeploy.NewLambdaApplication(stack, jsii.String("WebserviceDeployApp"), &awscodedeploy.LambdaApplicationProps{})

	return awscodedeploy.NewLambdaDeploymentGroup(stack, jsii.String("BGCDeployment"),
		&awscodedeploy.LambdaDeploymentGroupProps{
			Application:      app,
			Alias:            alias,
			DeploymentConfig: awscodedeploy.LambdaDeploymentConfig_CANARY_10PERCENT_5MINUTES(),
			AutoRollback: &awscodedeploy.AutoRollbackConfig{
				FailedDeployment:  jsii.Bool(true),
				StoppedDeployment: jsii.Bool(true),
				DeploymentInAlarm: jsii.Bool(true),
			},
			Alarms: &[]awscloudwatch.IAlarm{errorAlarm},
		})
}
