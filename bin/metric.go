package main

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/serverless-monitoring/monitoring"
)

var cloudwatchUnits = map[monitoring.Unit]awscloudwatch.Unit{
	monitoring.Count:        awscloudwatch.Unit_COUNT,
	monitoring.Percent:      awscloudwatch.Unit_PERCENT,
	monitoring.Seconds:      awscloudwatch.Unit_SECONDS,
	monitoring.Milliseconds: awscloudwatch.Unit_MILLISECONDS,
	monitoring.Bytes:        awscloudwatch.Unit_BYTES,
	monitoring.CountPerSec:  awscloudwatch.Unit_COUNT_PER_SECOND,
	monitoring.NoUnit:       awscloudwatch.Unit_NONE,
}

// toCloudWatchMetric converts a descriptor or expression, recursing into
// expression operands.
func toCloudWatchMetric(m monitoring.Metric) awscloudwatch.IMetric {
	switch m := m.(type) {
	case *monitoring.Descriptor:
		return newDescriptorMetric(m)
	case *monitoring.Expression:
		return newExpressionMetric(m)
	default:
		panic(fmt.Sprintf("unsupported metric type %T", m))
	}
}

func toCloudWatchMetrics(metrics []monitoring.Metric) *[]awscloudwatch.IMetric {
	out := make([]awscloudwatch.IMetric, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, toCloudWatchMetric(m))
	}
	return &out
}

func newDescriptorMetric(d *monitoring.Descriptor) awscloudwatch.Metric {
	dims := map[string]*string{}
	for k, v := range d.Dimensions() {
		dims[k] = jsii.String(v)
	}

	props := &awscloudwatch.MetricProps{
		Namespace:     jsii.String(d.Namespace()),
		MetricName:    jsii.String(d.MetricName()),
		DimensionsMap: &dims,
		Statistic:     jsii.String(string(d.Statistic())),
		Period:        awscdk.Duration_Seconds(jsii.Number(d.Period().Seconds())),
	}
	if d.Label() != "" {
		props.Label = jsii.String(d.Label())
	}
	if d.Unit() != "" {
		unit, ok := cloudwatchUnits[d.Unit()]
		if !ok {
			panic(fmt.Sprintf("unsupported unit %q on %s/%s", d.Unit(), d.Namespace(), d.MetricName()))
		}
		props.Unit = unit
	}
	return awscloudwatch.NewMetric(props)
}

func newExpressionMetric(e *monitoring.Expression) awscloudwatch.MathExpression {
	using := map[string]awscloudwatch.IMetric{}
	for id, op := range e.Operands() {
		using[id] = toCloudWatchMetric(op)
	}

	props := &awscloudwatch.MathExpressionProps{
		Expression:   jsii.String(e.Expression()),
		UsingMetrics: &using,
		Period:       awscdk.Duration_Seconds(jsii.Number(e.Period().Seconds())),
	}
	if e.Label() != "" {
		props.Label = jsii.String(e.Label())
	}
	return awscloudwatch.NewMathExpression(props)
}
