package monitoring

import (
	"slices"

	"github.com/pkg/errors"
)

// ComparisonOperator mirrors the CloudWatch alarm comparison operators.
type ComparisonOperator string

const (
	GreaterThanOrEqualToThreshold ComparisonOperator = "GreaterThanOrEqualToThreshold"
	GreaterThanThreshold          ComparisonOperator = "GreaterThanThreshold"
	LessThanThreshold             ComparisonOperator = "LessThanThreshold"
	LessThanOrEqualToThreshold    ComparisonOperator = "LessThanOrEqualToThreshold"
)

// TreatMissingData is the policy applied to periods without datapoints.
type TreatMissingData string

const (
	NotBreaching TreatMissingData = "notBreaching"
	Breaching    TreatMissingData = "breaching"
	Ignore       TreatMissingData = "ignore"
	Missing      TreatMissingData = "missing"
)

var (
	ErrMissingMetric            = errors.New("alarm metric is required")
	ErrMissingThreshold         = errors.New("alarm threshold is required")
	ErrInvalidEvaluationPeriods = errors.New("alarm evaluation periods must be positive")
	ErrInvalidDatapoints        = errors.New("datapoints to alarm must be between 1 and evaluation periods")
)

// NotificationTarget is an opaque handle to a pub/sub endpoint. The CDK app
// resolves the ID to an SNS topic.
type NotificationTarget struct {
	ID string
}

// AlarmProps configures NewAlarm. Threshold is a pointer because zero is a
// legitimate threshold.
type AlarmProps struct {
	AlarmName          string
	Description        string
	Metric             Metric
	Threshold          *float64
	ComparisonOperator ComparisonOperator
	EvaluationPeriods  int
	DatapointsToAlarm  int
	TreatMissingData   TreatMissingData
}

// Alarm binds a metric to a threshold and evaluation window.
type Alarm struct {
	name               string
	description        string
	metric             Metric
	threshold          float64
	comparisonOperator ComparisonOperator
	evaluationPeriods  int
	datapointsToAlarm  int
	treatMissingData   TreatMissingData
	actions            []NotificationTarget
}

func NewAlarm(props *AlarmProps) (*Alarm, error) {
	if props == nil || props.Metric == nil {
		return nil, ErrMissingMetric
	}
	if props.Threshold == nil {
		return nil, errors.Wrapf(ErrMissingThreshold, "alarm %q", props.AlarmName)
	}
	if props.EvaluationPeriods <= 0 {
		return nil, errors.Wrapf(ErrInvalidEvaluationPeriods, "alarm %q: %d", props.AlarmName, props.EvaluationPeriods)
	}

	datapoints := props.DatapointsToAlarm
	if datapoints == 0 {
		datapoints = props.EvaluationPeriods
	}
	if datapoints < 1 || datapoints > props.EvaluationPeriods {
		return nil, errors.Wrapf(ErrInvalidDatapoints, "alarm %q: %d of %d", props.AlarmName, datapoints, props.EvaluationPeriods)
	}

	op := props.ComparisonOperator
	if op == "" {
		op = GreaterThanOrEqualToThreshold
	}
	missing := props.TreatMissingData
	if missing == "" {
		missing = Missing
	}

	return &Alarm{
		name:               props.AlarmName,
		description:        props.Description,
		metric:             props.Metric,
		threshold:          *props.Threshold,
		comparisonOperator: op,
		evaluationPeriods:  props.EvaluationPeriods,
		datapointsToAlarm:  datapoints,
		treatMissingData:   missing,
	}, nil
}

func (a *Alarm) Name() string                           { return a.name }
func (a *Alarm) Description() string                    { return a.description }
func (a *Alarm) Metric() Metric                         { return a.metric }
func (a *Alarm) Threshold() float64                     { return a.threshold }
func (a *Alarm) ComparisonOperator() ComparisonOperator { return a.comparisonOperator }
func (a *Alarm) EvaluationPeriods() int                 { return a.evaluationPeriods }
func (a *Alarm) DatapointsToAlarm() int                 { return a.datapointsToAlarm }
func (a *Alarm) TreatMissingData() TreatMissingData     { return a.treatMissingData }

// AddAlarmAction appends notification targets. Actions are never removed.
func (a *Alarm) AddAlarmAction(targets ...NotificationTarget) {
	a.actions = append(a.actions, targets...)
}

func (a *Alarm) Actions() []NotificationTarget {
	return slices.Clone(a.actions)
}

// EvaluationPolicy is the shared evaluation window and missing-data handling
// for a family of alarms.
type EvaluationPolicy struct {
	EvaluationPeriods int
	DatapointsToAlarm int
	TreatMissingData  TreatMissingData
}

// FastTrigger fires as soon as any one of the last six periods breaches and
// never treats missing data as a breach.
var FastTrigger = EvaluationPolicy{
	EvaluationPeriods: 6,
	DatapointsToAlarm: 1,
	TreatMissingData:  NotBreaching,
}

// Apply stamps the policy onto props and returns them.
func (p EvaluationPolicy) Apply(props *AlarmProps) *AlarmProps {
	props.EvaluationPeriods = p.EvaluationPeriods
	props.DatapointsToAlarm = p.DatapointsToAlarm
	props.TreatMissingData = p.TreatMissingData
	return props
}

// Threshold is a helper for AlarmProps.Threshold.
func Threshold(v float64) *float64 {
	return &v
}
