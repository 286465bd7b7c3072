package monitoring

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMetric(t *testing.T, name string) *Descriptor {
	t.Helper()
	m, err := MetricForAPIGateway("abc123", name, name, Sum)
	require.NoError(t, err)
	return m
}

func TestExpressionIdentifiers(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"m1/m2*100", []string{"m1", "m2"}},
		{"e/i*100", []string{"e", "i"}},
		{"t/(i+t)*100", []string{"i", "t"}},
		{"m1+m2", []string{"m1", "m2"}},
		{"SUM(METRICS())", nil},
		{"FILL(m1, 0) + 2.5e3", []string{"m1"}},
		{`IF(m1 > 0, m1, 0) + SEARCH('{AWS/Lambda} x', "Sum", 300)`, []string{"m1"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, expressionIdentifiers(tt.expr))
		})
	}
}

func TestNewExpression_ErrorPercentage(t *testing.T) {
	m1, m2 := mustMetric(t, "4XXError"), mustMetric(t, "Count")
	e, err := NewExpression(&ExpressionProps{
		Expression: "m1/m2*100",
		Operands:   map[string]Metric{"m1": m1, "m2": m2},
		Label:      "% 4xx",
	})
	require.NoError(t, err)

	assert.Equal(t, "m1/m2*100", e.Expression())
	assert.Equal(t, 5*time.Minute, e.Period())
	assert.Equal(t, []string{"m1", "m2"}, e.Identifiers())

	ops := e.Operands()
	assert.Same(t, m1, ops["m1"])
	assert.Same(t, m2, ops["m2"])
}

func TestNewExpression_Validation(t *testing.T) {
	m := mustMetric(t, "Count")
	tests := []struct {
		name  string
		props *ExpressionProps
		want  error
	}{
		{"nil", nil, ErrEmptyExpression},
		{"empty", &ExpressionProps{Operands: map[string]Metric{"m1": m}}, ErrEmptyExpression},
		{"unknown", &ExpressionProps{Expression: "m1+m2", Operands: map[string]Metric{"m1": m}}, ErrUnknownOperand},
		{"unused", &ExpressionProps{Expression: "m1*2", Operands: map[string]Metric{"m1": m, "m2": m}}, ErrUnusedOperand},
		{"uppercase id", &ExpressionProps{Expression: "M1", Operands: map[string]Metric{"M1": m}}, ErrInvalidOperand},
		{"nil operand", &ExpressionProps{Expression: "m1", Operands: map[string]Metric{"m1": nil}}, ErrInvalidOperand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExpression(tt.props)
			assert.Nil(t, e)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestNewExpression_Nested(t *testing.T) {
	inner, err := NewExpression(&ExpressionProps{
		Expression: "a+b",
		Operands:   map[string]Metric{"a": mustMetric(t, "x"), "b": mustMetric(t, "y")},
	})
	require.NoError(t, err)

	outer, err := NewExpression(&ExpressionProps{
		Expression: "m1+m2",
		Operands:   map[string]Metric{"m1": mustMetric(t, "z"), "m2": inner},
	})
	require.NoError(t, err)
	assert.Same(t, inner, outer.Operands()["m2"])
}
