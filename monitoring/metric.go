// Package monitoring composes CloudWatch metrics, alarms and dashboards as
// plain immutable descriptors. Nothing here talks to AWS: the CDK app turns
// the descriptors into constructs at synth time.
package monitoring

import (
	"maps"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultMetricPeriod is used when MetricProps.Period is zero.
	DefaultMetricPeriod = 15 * time.Minute
	// DashboardPeriod is the aggregation period every call site in this repo uses.
	DashboardPeriod = 5 * time.Minute
)

var (
	ErrMissingMetricName = errors.New("metric name is required")
	ErrMissingNamespace  = errors.New("metric namespace is required")
)

// Metric is either a *Descriptor or an *Expression.
type Metric interface {
	Label() string
	Period() time.Duration
	metric()
}

// MetricProps configures NewMetric.
type MetricProps struct {
	MetricName string
	Namespace  string
	Dimensions map[string]string
	Unit       Unit
	Label      string
	Statistic  Statistic
	Period     time.Duration
}

// Descriptor identifies a time series exposed by a managed service.
type Descriptor struct {
	namespace  string
	metricName string
	dimensions map[string]string
	statistic  Statistic
	period     time.Duration
	label      string
	unit       Unit
}

// NewMetric validates props and builds a descriptor. Statistics are
// normalized, so "sum" and Sum produce equal descriptors.
func NewMetric(props *MetricProps) (*Descriptor, error) {
	if props == nil {
		return nil, ErrMissingMetricName
	}
	if props.MetricName == "" {
		return nil, errors.Wrapf(ErrMissingMetricName, "namespace %q", props.Namespace)
	}
	if props.Namespace == "" {
		return nil, errors.Wrapf(ErrMissingNamespace, "metric %q", props.MetricName)
	}

	stat := Average
	if props.Statistic != "" {
		parsed, err := ParseStatistic(string(props.Statistic))
		if err != nil {
			return nil, errors.Wrapf(err, "metric %s/%s", props.Namespace, props.MetricName)
		}
		stat = parsed
	}
	period := props.Period
	if period == 0 {
		period = DefaultMetricPeriod
	}

	return &Descriptor{
		namespace:  props.Namespace,
		metricName: props.MetricName,
		dimensions: maps.Clone(props.Dimensions),
		statistic:  stat,
		period:     period,
		label:      props.Label,
		unit:       props.Unit,
	}, nil
}

func (d *Descriptor) metric() {}

func (d *Descriptor) Namespace() string     { return d.namespace }
func (d *Descriptor) MetricName() string    { return d.metricName }
func (d *Descriptor) Statistic() Statistic  { return d.statistic }
func (d *Descriptor) Period() time.Duration { return d.period }
func (d *Descriptor) Label() string         { return d.label }
func (d *Descriptor) Unit() Unit            { return d.unit }

// Dimensions returns a copy of the descriptor's dimensions.
func (d *Descriptor) Dimensions() map[string]string {
	return maps.Clone(d.dimensions)
}

func (d *Descriptor) WithStatistic(stat Statistic) *Descriptor {
	c := d.clone()
	c.statistic = stat
	return c
}

func (d *Descriptor) WithLabel(label string) *Descriptor {
	c := d.clone()
	c.label = label
	return c
}

func (d *Descriptor) WithPeriod(period time.Duration) *Descriptor {
	c := d.clone()
	c.period = period
	return c
}

func (d *Descriptor) clone() *Descriptor {
	c := *d
	c.dimensions = maps.Clone(d.dimensions)
	return &c
}

// MetricForAPIGateway builds a metric for an HTTP API in the AWS/ApiGateway
// namespace. The unit stays unset because Latency is reported in
// milliseconds and an alarm on a mismatched unit never receives data.
func MetricForAPIGateway(apiID, metricName, label string, stat Statistic) (*Descriptor, error) {
	return NewMetric(&MetricProps{
		MetricName: metricName,
		Namespace:  "AWS/ApiGateway",
		Dimensions: map[string]string{"ApiId": apiID},
		Label:      label,
		Statistic:  stat,
		Period:     DashboardPeriod,
	})
}

// MetricForLambda builds a metric for a single Lambda function.
func MetricForLambda(functionName, metricName, label string, stat Statistic) (*Descriptor, error) {
	return NewMetric(&MetricProps{
		MetricName: metricName,
		Namespace:  "AWS/Lambda",
		Dimensions: map[string]string{"FunctionName": functionName},
		Label:      label,
		Statistic:  stat,
		Period:     DashboardPeriod,
	})
}

// MetricForDynamoDB builds a table metric. An empty operation leaves the
// Operation dimension out; an empty table leaves TableName out, which is how
// account-wide metrics such as UserErrors are reported.
func MetricForDynamoDB(tableName, operation, metricName, label string, stat Statistic) (*Descriptor, error) {
	dims := map[string]string{}
	if tableName != "" {
		dims["TableName"] = tableName
	}
	if operation != "" {
		dims["Operation"] = operation
	}
	return NewMetric(&MetricProps{
		MetricName: metricName,
		Namespace:  "AWS/DynamoDB",
		Dimensions: dims,
		Label:      label,
		Statistic:  stat,
		Period:     DashboardPeriod,
	})
}

// MetricForAppSync builds a metric for a GraphQL API.
func MetricForAppSync(apiID, metricName, label string, stat Statistic) (*Descriptor, error) {
	return NewMetric(&MetricProps{
		MetricName: metricName,
		Namespace:  "AWS/AppSync",
		Dimensions: map[string]string{"GraphQLAPIId": apiID},
		Label:      label,
		Statistic:  stat,
		Period:     DashboardPeriod,
	})
}
