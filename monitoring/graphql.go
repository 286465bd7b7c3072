package monitoring

// GraphQLResources identify the monitored AppSync API.
type GraphQLResources struct {
	APIID         string
	DashboardName string
}

// NewGraphQLMonitor composes the AppSync alarms and a one-row dashboard.
func NewGraphQLMonitor(res GraphQLResources, topic NotificationTarget) (*Plan, error) {
	c := &composer{}

	requests := c.metric(MetricForAppSync(res.APIID, "Latency", "# Requests", SampleCount))
	latencyP50 := c.metric(MetricForAppSync(res.APIID, "Latency", "Latency p50", P50))
	latencyP99 := c.metric(MetricForAppSync(res.APIID, "Latency", "Latency p99", P99))
	errors4xx := c.metric(MetricForAppSync(res.APIID, "4XXError", "4XX Errors", Sum))
	errors5xx := c.metric(MetricForAppSync(res.APIID, "5XXError", "5XX Errors", Sum))

	alarms := []*Alarm{
		c.alarm(&AlarmProps{
			AlarmName:          "AppSync 5XX Errors > 0",
			Description:        "The GraphQL API returned a 5XX status",
			Metric:             errors5xx,
			Threshold:          Threshold(0),
			ComparisonOperator: GreaterThanThreshold,
		}, topic),
		c.alarm(&AlarmProps{
			AlarmName:   "AppSync p99 latency >= 1s",
			Description: "p99 GraphQL latency reached one second",
			Metric:      latencyP99,
			Threshold:   Threshold(1000),
		}, topic),
	}

	dashboard := NewDashboard(res.DashboardName)
	dashboard.AddRow(
		c.graph("GraphQL Requests", false, requests),
		c.graph("GraphQL Latency", true, latencyP50, latencyP99),
		c.graph("GraphQL Errors", true, errors4xx, errors5xx),
	)

	if c.err != nil {
		return nil, c.err
	}
	return &Plan{Alarms: alarms, Dashboard: dashboard}, nil
}
