package main

import (
	"path/filepath"
	"runtime"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3assets"
	"github.com/aws/jsii-runtime-go"
)

// sourceDir returns the directory holding this file, used to locate the
// handler assets and the GraphQL schema.
func sourceDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("Could not get file name")
	}
	return filepath.Dir(filename)
}

// createLambdaFunction packages bin/lambda/<handler>. The asset directory is
// expected to contain the compiled bootstrap binary (see the Makefile).
func createLambdaFunction(stack awscdk.Stack, id string, handler string, environment map[string]*string) awslambda.Function {
	lambdaDir := filepath.Join(sourceDir(), "lambda", handler)

	logGroup := awslogs.NewLogGroup(stack, jsii.String(id+"Logs"), &awslogs.LogGroupProps{
		Retention:     awslogs.RetentionDays_ONE_MONTH,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	return awslambda.NewFunction(stack, jsii.String(id), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Handler:      jsii.String("bootstrap"),
		MemorySize:   jsii.Number(256),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(10)),
		Architecture: awslambda.Architecture_ARM_64(),
		CurrentVersionOptions: &awslambda.VersionOptions{
			RemovalPolicy: awscdk.RemovalPolicy_RETAIN,
			Description:   jsii.String("Automated Version"),
		},
		Code: awslambda.Code_FromAsset(jsii.String(lambdaDir), &awss3assets.AssetOptions{
			Exclude: jsii.Strings("*.go"),
		}),
		Environment: &environment,
		LogGroup:    logGroup,
		Tracing:     awslambda.Tracing_ACTIVE,
	})
}

func createLambdaAlias(stack awscdk.Stack, fn awslambda.Function) awslambda.Alias {
	return awslambda.NewAlias(stack, jsii.String("production"), &awslambda.AliasProps{
		AliasName:   jsii.String("Live"),
		Description: jsii.String("Lambda Alias"),
		Version:     fn.CurrentVersion(),
	})
}
