package monitoring

// WebserviceResources are the identifiers of the monitored webservice. At
// synth time these are usually CDK tokens.
type WebserviceResources struct {
	APIID         string
	FunctionName  string
	TableName     string
	DashboardName string
}

// LambdaErrorAlarmName names the alarm that also guards Lambda deployments.
const LambdaErrorAlarmName = "Dynamo Lambda 2% Error"

var dynamoOperations = []string{"GetItem", "UpdateItem", "PutItem", "DeleteItem", "Query"}

// NewWebserviceMonitor composes the seven webservice alarms, all notifying
// topic, and the nine-widget dashboard.
func NewWebserviceMonitor(res WebserviceResources, topic NotificationTarget) (*Plan, error) {
	c := &composer{}

	// API Gateway
	requests := c.metric(MetricForAPIGateway(res.APIID, "Count", "# Requests", Sum))
	latencyP50 := c.metric(MetricForAPIGateway(res.APIID, "Latency", "API GW Latency p50", P50))
	latencyP90 := c.metric(MetricForAPIGateway(res.APIID, "Latency", "API GW Latency p90", P90))
	latencyP99 := c.metric(MetricForAPIGateway(res.APIID, "Latency", "API GW Latency p99", P99))
	errors4xx := c.metric(MetricForAPIGateway(res.APIID, "4XXError", "4XX Errors", Sum))
	errors5xx := c.metric(MetricForAPIGateway(res.APIID, "5XXError", "5XX Errors", Sum))
	errors5xxP99 := c.metric(MetricForAPIGateway(res.APIID, "5XXError", "5XX Errors", P99))

	errors4xxPercent := c.expression(&ExpressionProps{
		Expression: "m1/m2*100",
		Label:      "% API Gateway 4xx Errors",
		Operands: map[string]Metric{
			"m1": errors4xx,
			"m2": requests,
		},
		Period: DashboardPeriod,
	})

	// Lambda
	invocations := c.metric(MetricForLambda(res.FunctionName, "Invocations", "Invocations", Sum))
	lambdaErrors := c.metric(MetricForLambda(res.FunctionName, "Errors", "Errors", Sum))
	throttles := c.metric(MetricForLambda(res.FunctionName, "Throttles", "Throttles", Sum))
	durationP50 := c.metric(MetricForLambda(res.FunctionName, "Duration", "Lambda Duration p50", P50))
	durationP90 := c.metric(MetricForLambda(res.FunctionName, "Duration", "Lambda Duration p90", P90))
	durationP99 := c.metric(MetricForLambda(res.FunctionName, "Duration", "Lambda Duration p99", P99))

	lambdaErrorPercent := c.expression(&ExpressionProps{
		Expression: "e/i*100",
		Label:      "% of invocations that errored, last 5 mins",
		Operands: map[string]Metric{
			"i": invocations,
			"e": lambdaErrors,
		},
		Period: DashboardPeriod,
	})

	// Throttled invocations are not counted in Invocations, hence i+t.
	lambdaThrottlePercent := c.expression(&ExpressionProps{
		Expression: "t/(i+t)*100",
		Label:      "% of throttled requests, last 5 mins",
		Operands: map[string]Metric{
			"i": invocations,
			"t": throttles,
		},
		Period: DashboardPeriod,
	})

	// DynamoDB
	var latencies []Metric
	systemErrorOperands := map[string]Metric{}
	for i, op := range dynamoOperations {
		latencies = append(latencies, c.metric(MetricForDynamoDB(res.TableName, op, "SuccessfulRequestLatency", op, Average)))
		systemErrorOperands[string(rune('a'+i))] = c.metric(MetricForDynamoDB(res.TableName, op, "SystemErrors", "SystemErrors "+op, Sum))
	}
	readCapacity := c.metric(MetricForDynamoDB(res.TableName, "", "ConsumedReadCapacityUnits", "Consumed Read Capacity Units", Sum))
	writeCapacity := c.metric(MetricForDynamoDB(res.TableName, "", "ConsumedWriteCapacityUnits", "Consumed Write Capacity Units", Sum))
	readThrottles := c.metric(MetricForDynamoDB(res.TableName, "", "ReadThrottleEvents", "Read Throttle Events", Sum))
	writeThrottles := c.metric(MetricForDynamoDB(res.TableName, "", "WriteThrottleEvents", "Write Throttle Events", Sum))
	userErrors := c.metric(MetricForDynamoDB("", "", "UserErrors", "User Errors", Sum))

	dynamoThrottles := c.expression(&ExpressionProps{
		Expression: "m1+m2",
		Label:      "DynamoDB Throttles",
		Operands: map[string]Metric{
			"m1": readThrottles,
			"m2": writeThrottles,
		},
		Period: DashboardPeriod,
	})
	systemErrors := c.expression(&ExpressionProps{
		Expression: "a+b+c+d+e",
		Label:      "DynamoDB System Errors",
		Operands:   systemErrorOperands,
		Period:     DashboardPeriod,
	})
	dynamoErrors := c.expression(&ExpressionProps{
		Expression: "m1+m2",
		Label:      "DynamoDB Errors",
		Operands: map[string]Metric{
			"m1": userErrors,
			"m2": systemErrors,
		},
		Period: DashboardPeriod,
	})

	alarms := []*Alarm{
		c.alarm(&AlarmProps{
			AlarmName:   "API Gateway 4XX Errors > 1%",
			Description: "More than 1% of API requests returned a 4XX status",
			Metric:      errors4xxPercent,
			Threshold:   Threshold(1),
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:          "API Gateway 5XX Errors > 0",
			Description:        "The API returned a 5XX status",
			Metric:             errors5xxP99,
			Threshold:          Threshold(0),
			ComparisonOperator: GreaterThanThreshold,
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:   "API p99 latency alarm >= 1s",
			Description: "p99 API latency reached one second",
			Metric:      latencyP99,
			Threshold:   Threshold(1000),
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:   LambdaErrorAlarmName,
			Description: "More than 2% of Lambda invocations errored",
			Metric:      lambdaErrorPercent,
			Threshold:   Threshold(2),
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:   "Dynamo Lambda 1% Throttled",
			Description: "More than 1% of Lambda invocations were throttled",
			Metric:      lambdaThrottlePercent,
			Threshold:   Threshold(1),
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:   "DynamoDB Table Reads/Writes Throttled",
			Description: "The table throttled reads or writes",
			Metric:      dynamoThrottles,
			Threshold:   Threshold(1),
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:          "DynamoDB Errors > 0",
			Description:        "DynamoDB reported user or system errors",
			Metric:             dynamoErrors,
			Threshold:          Threshold(0),
			ComparisonOperator: GreaterThanThreshold,
		}, topic),
	}

	dashboard := NewDashboard(res.DashboardName)
	dashboard.AddRow(
		c.graph("Requests", false, requests),
		c.graph("API GW Latency", true, latencyP50, latencyP90, latencyP99),
		c.graph("API GW Errors", true, errors4xx, errors5xx),
	)
	dashboard.AddRow(
		c.graph("Dynamo Lambda Error %", false, lambdaErrorPercent),
		c.graph("Dynamo Lambda Duration", true, durationP50, durationP90, durationP99),
		c.graph("Dynamo Lambda Throttle %", false, lambdaThrottlePercent),
	)
	dashboard.AddRow(
		c.graph("DynamoDB Latency", true, latencies...),
		c.graph("DynamoDB Consumed Read/Write Units", false, readCapacity, writeCapacity),
		c.graph("DynamoDB Throttles", true, readThrottles, writeThrottles),
	)

	if c.err != nil {
		return nil, c.err
	}
	return &Plan{Alarms: alarms, Dashboard: dashboard}, nil
}
