package main

import (
	"regexp"

	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatchactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"

	"github.com/30Piraten/serverless-monitoring/monitoring"
)

var (
	comparisonOperators = map[monitoring.ComparisonOperator]awscloudwatch.ComparisonOperator{
		monitoring.GreaterThanOrEqualToThreshold: awscloudwatch.ComparisonOperator_GREATER_THAN_OR_EQUAL_TO_THRESHOLD,
		monitoring.GreaterThanThreshold:          awscloudwatch.ComparisonOperator_GREATER_THAN_THRESHOLD,
		monitoring.LessThanThreshold:             awscloudwatch.ComparisonOperator_LESS_THAN_THRESHOLD,
		monitoring.LessThanOrEqualToThreshold:    awscloudwatch.ComparisonOperator_LESS_THAN_OR_EQUAL_TO_THRESHOLD,
	}

	missingDataPolicies = map[monitoring.TreatMissingData]awscloudwatch.TreatMissingData{
		monitoring.NotBreaching: awscloudwatch.TreatMissingData_NOT_BREACHING,
		monitoring.Breaching:    awscloudwatch.TreatMissingData_BREACHING,
		monitoring.Ignore:       awscloudwatch.TreatMissingData_IGNORE,
		monitoring.Missing:      awscloudwatch.TreatMissingData_MISSING,
	}

	nonIDChars = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// monitor turns a monitoring plan into constructs inside one stack.
type monitor struct {
	scope  constructs.Construct
	topics map[string]awssns.ITopic
	alarms map[*monitoring.Alarm]awscloudwatch.Alarm
}

func newMonitor(scope constructs.Construct, topics map[string]awssns.ITopic) *monitor {
	return &monitor{
		scope:  scope,
		topics: topics,
		alarms: map[*monitoring.Alarm]awscloudwatch.Alarm{},
	}
}

// constructID derives a construct id from a human readable name.
func constructID(name string) *string {
	return jsii.String(nonIDChars.ReplaceAllString(name, ""))
}

func (m *monitor) alarm(spec *monitoring.Alarm) (awscloudwatch.Alarm, error) {
	if a, ok := m.alarms[spec]; ok {
		return a, nil
	}

	op, ok := comparisonOperators[spec.ComparisonOperator()]
	if !ok {
		return nil, errors.Errorf("alarm %q: unsupported comparison operator %q", spec.Name(), spec.ComparisonOperator())
	}
	missing, ok := missingDataPolicies[spec.TreatMissingData()]
	if !ok {
		return nil, errors.Errorf("alarm %q: unsupported missing data policy %q", spec.Name(), spec.TreatMissingData())
	}

	props := &awscloudwatch.AlarmProps{
		AlarmName:          jsii.String(spec.Name()),
		Metric:             toCloudWatchMetric(spec.Metric()),
		Threshold:          jsii.Number(spec.Threshold()),
		EvaluationPeriods:  jsii.Number(float64(spec.EvaluationPeriods())),
		DatapointsToAlarm:  jsii.Number(float64(spec.DatapointsToAlarm())),
		ComparisonOperator: op,
		TreatMissingData:   missing,
	}
	if spec.Description() != "" {
		props.AlarmDescription = jsii.String(spec.Description())
	}
	alarm := awscloudwatch.NewAlarm(m.scope, constructID(spec.Name()), props)

	for _, target := range spec.Actions() {
		topic, ok := m.topics[target.ID]
		if !ok {
			return nil, errors.Errorf("alarm %q: unknown notification target %q", spec.Name(), target.ID)
		}
		alarm.AddAlarmAction(awscloudwatchactions.NewSnsAction(topic))
	}

	m.alarms[spec] = alarm
	return alarm, nil
}

func (m *monitor) synthAlarms(specs []*monitoring.Alarm) (map[string]awscloudwatch.Alarm, error) {
	byName := make(map[string]awscloudwatch.Alarm, len(specs))
	for _, spec := range specs {
		a, err := m.alarm(spec)
		if err != nil {
			return nil, err
		}
		byName[spec.Name()] = a
	}
	return byName, nil
}
