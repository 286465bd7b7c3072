package monitoring

import (
	"maps"
	"regexp"
	"slices"
	"time"

	"github.com/pkg/errors"
)

// DefaultExpressionPeriod is used when ExpressionProps.Period is zero.
const DefaultExpressionPeriod = 5 * time.Minute

var (
	ErrEmptyExpression = errors.New("expression is required")
	ErrUnknownOperand  = errors.New("expression references an unknown operand")
	ErrUnusedOperand   = errors.New("operand is not referenced by the expression")
	ErrInvalidOperand  = errors.New("invalid operand")
)

var operandID = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)

// ExpressionProps configures NewExpression.
type ExpressionProps struct {
	Expression string
	Operands   map[string]Metric
	Label      string
	Period     time.Duration
}

// Expression is a metric math expression evaluated by CloudWatch over its
// operands. Operands may themselves be expressions.
type Expression struct {
	expression string
	operands   map[string]Metric
	label      string
	period     time.Duration
}

func NewExpression(props *ExpressionProps) (*Expression, error) {
	if props == nil || props.Expression == "" {
		return nil, ErrEmptyExpression
	}

	for id, m := range props.Operands {
		if !operandID.MatchString(id) {
			return nil, errors.Wrapf(ErrInvalidOperand, "identifier %q", id)
		}
		if m == nil {
			return nil, errors.Wrapf(ErrInvalidOperand, "%q has no metric", id)
		}
	}

	refs := expressionIdentifiers(props.Expression)
	for _, id := range refs {
		if _, ok := props.Operands[id]; !ok {
			return nil, errors.Wrapf(ErrUnknownOperand, "%q in %q", id, props.Expression)
		}
	}
	for id := range props.Operands {
		if !slices.Contains(refs, id) {
			return nil, errors.Wrapf(ErrUnusedOperand, "%q in %q", id, props.Expression)
		}
	}

	period := props.Period
	if period == 0 {
		period = DefaultExpressionPeriod
	}

	return &Expression{
		expression: props.Expression,
		operands:   maps.Clone(props.Operands),
		label:      props.Label,
		period:     period,
	}, nil
}

func (e *Expression) metric() {}

func (e *Expression) Expression() string    { return e.expression }
func (e *Expression) Label() string         { return e.label }
func (e *Expression) Period() time.Duration { return e.period }

// Operands returns a copy of the identifier to metric bindings.
func (e *Expression) Operands() map[string]Metric {
	return maps.Clone(e.operands)
}

// Identifiers returns the sorted operand identifiers used by the expression.
func (e *Expression) Identifiers() []string {
	return expressionIdentifiers(e.expression)
}

// expressionIdentifiers scans a metric math expression and returns the
// distinct identifiers in it. Identifiers start with a lowercase letter;
// functions (SUM, FILL, METRICS...) are uppercase and string literals are
// skipped.
func expressionIdentifiers(expr string) []string {
	seen := map[string]struct{}{}
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '"' || c == '\'':
			end := i + 1
			for end < len(expr) && expr[end] != c {
				end++
			}
			i = end + 1
		case isIdentStart(c):
			start := i
			for i < len(expr) && isIdentPart(expr[i]) {
				i++
			}
			if expr[start] >= 'a' && expr[start] <= 'z' {
				seen[expr[start:i]] = struct{}{}
			}
		case c >= '0' && c <= '9' || c == '.':
			for i < len(expr) && (isIdentPart(expr[i]) || expr[i] == '.') {
				i++
			}
		default:
			i++
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
