package monitoring

// Plan is everything the CDK app needs to synthesize for one stack.
type Plan struct {
	Alarms    []*Alarm
	Dashboard *Dashboard
}

// Alarm looks an alarm up by name.
func (p *Plan) Alarm(name string) *Alarm {
	for _, a := range p.Alarms {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// composer builds descriptors and remembers the first failure so the
// composition code reads top to bottom without an error check per line.
type composer struct {
	err error
}

func (c *composer) keep(err error) bool {
	if err != nil && c.err == nil {
		c.err = err
	}
	return c.err == nil
}

func (c *composer) metric(d *Descriptor, err error) Metric {
	if !c.keep(err) {
		return nil
	}
	return d
}

func (c *composer) expression(props *ExpressionProps) Metric {
	if c.err != nil {
		return nil
	}
	e, err := NewExpression(props)
	if !c.keep(err) {
		return nil
	}
	return e
}

func (c *composer) alarm(props *AlarmProps, targets ...NotificationTarget) *Alarm {
	if c.err != nil {
		return nil
	}
	a, err := NewAlarm(FastTrigger.Apply(props))
	if !c.keep(err) {
		return nil
	}
	a.AddAlarmAction(targets...)
	return a
}

func (c *composer) graph(title string, stacked bool, metrics ...Metric) Widget {
	if c.err != nil {
		return Widget{}
	}
	w, err := NewGraphWidget(&GraphWidgetProps{
		Title:   title,
		Width:   8,
		Metrics: metrics,
		Stacked: stacked,
	})
	c.keep(err)
	return w
}
