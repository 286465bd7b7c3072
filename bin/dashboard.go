package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"

	"github.com/30Piraten/serverless-monitoring/monitoring"
)

func (m *monitor) widget(w monitoring.Widget) (awscloudwatch.IWidget, error) {
	width := jsii.Number(float64(w.Width()))
	height := jsii.Number(float64(w.Height()))

	switch w.Kind() {
	case monitoring.GraphKind:
		return awscloudwatch.NewGraphWidget(&awscloudwatch.GraphWidgetProps{
			Title:   jsii.String(w.Title()),
			Left:    toCloudWatchMetrics(w.Metrics()),
			Stacked: jsii.Bool(w.Stacked()),
			Width:   width,
			Height:  height,
		}), nil
	case monitoring.SingleValueKind:
		return awscloudwatch.NewSingleValueWidget(&awscloudwatch.SingleValueWidgetProps{
			Title:   jsii.String(w.Title()),
			Metrics: toCloudWatchMetrics(w.Metrics()),
			Width:   width,
			Height:  height,
		}), nil
	case monitoring.TextKind:
		return awscloudwatch.NewTextWidget(&awscloudwatch.TextWidgetProps{
			Markdown: jsii.String(w.Markdown()),
			Width:    width,
			Height:   height,
		}), nil
	case monitoring.AlarmStatusKind:
		var alarms []awscloudwatch.IAlarm
		for _, spec := range w.Alarms() {
			a, err := m.alarm(spec)
			if err != nil {
				return nil, err
			}
			alarms = append(alarms, a)
		}
		return awscloudwatch.NewAlarmStatusWidget(&awscloudwatch.AlarmStatusWidgetProps{
			Title:  jsii.String(w.Title()),
			Alarms: &alarms,
			Width:  width,
			Height: height,
		}), nil
	default:
		return nil, errors.Errorf("unsupported widget kind %s", w.Kind())
	}
}

// synthDashboard adds one dashboard row per monitoring row, in order.
func (m *monitor) synthDashboard(d *monitoring.Dashboard) (awscloudwatch.Dashboard, error) {
	dashboard := awscloudwatch.NewDashboard(m.scope, jsii.String("CloudWatchDashBoard"), &awscloudwatch.DashboardProps{
		DashboardName: jsii.String(d.Name()),
	})

	for _, row := range d.Rows() {
		widgets := make([]awscloudwatch.IWidget, 0, len(row))
		for _, w := range row {
			cw, err := m.widget(w)
			if err != nil {
				return nil, errors.Wrapf(err, "dashboard %q", d.Name())
			}
			widgets = append(widgets, cw)
		}
		dashboard.AddWidgets(widgets...)
	}
	return dashboard, nil
}

// synth builds every alarm and the dashboard of a plan.
func (m *monitor) synth(plan *monitoring.Plan) (map[string]awscloudwatch.Alarm, awscloudwatch.Dashboard, error) {
	alarms, err := m.synthAlarms(plan.Alarms)
	if err != nil {
		return nil, nil, err
	}
	dashboard, err := m.synthDashboard(plan.Dashboard)
	if err != nil {
		return nil, nil, err
	}
	return alarms, dashboard, nil
}
