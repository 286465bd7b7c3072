package monitoring

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphWidget_Defaults(t *testing.T) {
	w, err := NewGraphWidget(&GraphWidgetProps{
		Title:   "Requests",
		Metrics: []Metric{mustMetric(t, "Count")},
	})
	require.NoError(t, err)

	assert.Equal(t, GraphKind, w.Kind())
	assert.Equal(t, 6, w.Width())
	assert.Equal(t, 6, w.Height())
	assert.False(t, w.Stacked())
	assert.Len(t, w.Metrics(), 1)
}

func TestNewWidget_NilProps(t *testing.T) {
	constructors := map[string]func() (Widget, error){
		"graph":        func() (Widget, error) { return NewGraphWidget(nil) },
		"single value": func() (Widget, error) { return NewSingleValueWidget(nil) },
		"text":         func() (Widget, error) { return NewTextWidget(nil) },
		"alarm status": func() (Widget, error) { return NewAlarmStatusWidget(nil) },
	}
	for name, build := range constructors {
		t.Run(name, func(t *testing.T) {
			w, err := build()
			assert.True(t, errors.Is(err, ErrWidgetContents), "got %v", err)
			assert.Equal(t, Widget{}, w)
		})
	}
}

func TestNewWidget_Validation(t *testing.T) {
	m := []Metric{mustMetric(t, "Count")}

	_, err := NewGraphWidget(&GraphWidgetProps{Title: "wide", Width: 25, Metrics: m})
	assert.True(t, errors.Is(err, ErrWidgetWidth), "got %v", err)

	_, err = NewSingleValueWidget(&SingleValueWidgetProps{Title: "neg", Width: -1, Metrics: m})
	assert.True(t, errors.Is(err, ErrWidgetWidth), "got %v", err)

	_, err = NewGraphWidget(&GraphWidgetProps{Title: "short", Height: -2, Metrics: m})
	assert.True(t, errors.Is(err, ErrWidgetHeight), "got %v", err)

	_, err = NewGraphWidget(&GraphWidgetProps{Title: "empty"})
	assert.True(t, errors.Is(err, ErrWidgetContents), "got %v", err)

	_, err = NewTextWidget(&TextWidgetProps{})
	assert.True(t, errors.Is(err, ErrWidgetContents), "got %v", err)

	_, err = NewAlarmStatusWidget(&AlarmStatusWidgetProps{Title: "none"})
	assert.True(t, errors.Is(err, ErrWidgetContents), "got %v", err)
}

func TestWidgetKinds(t *testing.T) {
	alarm, err := NewAlarm(FastTrigger.Apply(&AlarmProps{
		Metric:    mustMetric(t, "Count"),
		Threshold: Threshold(1),
	}))
	require.NoError(t, err)

	text, err := NewTextWidget(&TextWidgetProps{Markdown: "# Service", Width: 24, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, TextKind, text.Kind())
	assert.Equal(t, "# Service", text.Markdown())

	single, err := NewSingleValueWidget(&SingleValueWidgetProps{Title: "Now", Metrics: []Metric{mustMetric(t, "Count")}})
	require.NoError(t, err)
	assert.Equal(t, SingleValueKind, single.Kind())

	status, err := NewAlarmStatusWidget(&AlarmStatusWidgetProps{Title: "Alarms", Alarms: []*Alarm{alarm}})
	require.NoError(t, err)
	assert.Equal(t, AlarmStatusKind, status.Kind())
	assert.Equal(t, []*Alarm{alarm}, status.Alarms())

	assert.Equal(t, "graph", GraphKind.String())
	assert.Equal(t, "alarm", AlarmStatusKind.String())
}

func TestDashboard_Rows(t *testing.T) {
	w := func(title string) Widget {
		g, err := NewGraphWidget(&GraphWidgetProps{Title: title, Width: 8, Metrics: []Metric{mustMetric(t, "Count")}})
		require.NoError(t, err)
		return g
	}

	d := NewDashboard("ops")
	d.AddRow(w("a"), w("b"))
	d.AddRow()
	d.AddRow(w("c"))

	rows := d.Rows()
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 1)

	var titles []string
	for _, widget := range d.Widgets() {
		titles = append(titles, widget.Title())
	}
	assert.Equal(t, []string{"a", "b", "c"}, titles)

	rows[0][0] = w("mutated")
	assert.Equal(t, "a", d.Rows()[0][0].Title())
}
