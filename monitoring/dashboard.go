package monitoring

import (
	"slices"

	"github.com/pkg/errors"
)

// GridWidth is the number of columns in a CloudWatch dashboard row.
const GridWidth = 24

const (
	defaultWidgetWidth  = 6
	defaultWidgetHeight = 6
)

// WidgetKind enumerates the widget types this repo renders.
type WidgetKind int

const (
	GraphKind WidgetKind = iota
	SingleValueKind
	TextKind
	AlarmStatusKind
)

func (k WidgetKind) String() string {
	switch k {
	case GraphKind:
		return "graph"
	case SingleValueKind:
		return "single_value"
	case TextKind:
		return "text"
	case AlarmStatusKind:
		return "alarm"
	default:
		return "unknown"
	}
}

var (
	ErrWidgetWidth    = errors.New("widget width must be between 1 and 24")
	ErrWidgetHeight   = errors.New("widget height must be positive")
	ErrWidgetContents = errors.New("widget has nothing to show")
)

// Widget describes one dashboard panel. Only the fields relevant to Kind are
// set.
type Widget struct {
	kind     WidgetKind
	title    string
	width    int
	height   int
	metrics  []Metric
	stacked  bool
	markdown string
	alarms   []*Alarm
}

func (w Widget) Kind() WidgetKind  { return w.kind }
func (w Widget) Title() string     { return w.title }
func (w Widget) Width() int        { return w.width }
func (w Widget) Height() int       { return w.height }
func (w Widget) Stacked() bool     { return w.stacked }
func (w Widget) Markdown() string  { return w.markdown }
func (w Widget) Metrics() []Metric { return slices.Clone(w.metrics) }
func (w Widget) Alarms() []*Alarm  { return slices.Clone(w.alarms) }

type GraphWidgetProps struct {
	Title   string
	Width   int
	Height  int
	Metrics []Metric
	Stacked bool
}

func NewGraphWidget(props *GraphWidgetProps) (Widget, error) {
	if props == nil {
		return Widget{}, errors.Wrap(ErrWidgetContents, "graph widget")
	}
	if len(props.Metrics) == 0 {
		return Widget{}, errors.Wrapf(ErrWidgetContents, "graph %q", props.Title)
	}
	return newWidget(Widget{
		kind:    GraphKind,
		title:   props.Title,
		width:   props.Width,
		height:  props.Height,
		metrics: slices.Clone(props.Metrics),
		stacked: props.Stacked,
	})
}

type SingleValueWidgetProps struct {
	Title   string
	Width   int
	Height  int
	Metrics []Metric
}

func NewSingleValueWidget(props *SingleValueWidgetProps) (Widget, error) {
	if props == nil {
		return Widget{}, errors.Wrap(ErrWidgetContents, "single value widget")
	}
	if len(props.Metrics) == 0 {
		return Widget{}, errors.Wrapf(ErrWidgetContents, "single value %q", props.Title)
	}
	return newWidget(Widget{
		kind:    SingleValueKind,
		title:   props.Title,
		width:   props.Width,
		height:  props.Height,
		metrics: slices.Clone(props.Metrics),
	})
}

type TextWidgetProps struct {
	Markdown string
	Width    int
	Height   int
}

func NewTextWidget(props *TextWidgetProps) (Widget, error) {
	if props == nil {
		return Widget{}, errors.Wrap(ErrWidgetContents, "text widget")
	}
	if props.Markdown == "" {
		return Widget{}, errors.Wrap(ErrWidgetContents, "text widget")
	}
	return newWidget(Widget{
		kind:     TextKind,
		width:    props.Width,
		height:   props.Height,
		markdown: props.Markdown,
	})
}

type AlarmStatusWidgetProps struct {
	Title  string
	Width  int
	Height int
	Alarms []*Alarm
}

func NewAlarmStatusWidget(props *AlarmStatusWidgetProps) (Widget, error) {
	if props == nil {
		return Widget{}, errors.Wrap(ErrWidgetContents, "alarm status widget")
	}
	if len(props.Alarms) == 0 {
		return Widget{}, errors.Wrapf(ErrWidgetContents, "alarm status %q", props.Title)
	}
	return newWidget(Widget{
		kind:   AlarmStatusKind,
		title:  props.Title,
		width:  props.Width,
		height: props.Height,
		alarms: slices.Clone(props.Alarms),
	})
}

func newWidget(w Widget) (Widget, error) {
	if w.width == 0 {
		w.width = defaultWidgetWidth
	}
	if w.height == 0 {
		w.height = defaultWidgetHeight
	}
	if w.width < 1 || w.width > GridWidth {
		return Widget{}, errors.Wrapf(ErrWidgetWidth, "%s %q: %d", w.kind, w.title, w.width)
	}
	if w.height < 1 {
		return Widget{}, errors.Wrapf(ErrWidgetHeight, "%s %q: %d", w.kind, w.title, w.height)
	}
	return w, nil
}

// Dashboard is an ordered list of rows. Widgets added in one AddRow call sit
// side by side; each call starts a new row below the previous one. Rows wider
// than GridWidth are left to the renderer.
type Dashboard struct {
	name string
	rows [][]Widget
}

func NewDashboard(name string) *Dashboard {
	return &Dashboard{name: name}
}

func (d *Dashboard) Name() string { return d.name }

func (d *Dashboard) AddRow(widgets ...Widget) {
	if len(widgets) == 0 {
		return
	}
	d.rows = append(d.rows, slices.Clone(widgets))
}

func (d *Dashboard) Rows() [][]Widget {
	rows := make([][]Widget, len(d.rows))
	for i, r := range d.rows {
		rows[i] = slices.Clone(r)
	}
	return rows
}

// Widgets returns every widget in layout order.
func (d *Dashboard) Widgets() []Widget {
	var all []Widget
	for _, r := range d.rows {
		all = append(all, r...)
	}
	return all
}
