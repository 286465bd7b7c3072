package monitoring

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Statistic is a CloudWatch aggregation as accepted by the metrics API.
type Statistic string

const (
	Sum         Statistic = "Sum"
	Average     Statistic = "Average"
	Minimum     Statistic = "Minimum"
	Maximum     Statistic = "Maximum"
	SampleCount Statistic = "SampleCount"
	P50         Statistic = "p50"
	P90         Statistic = "p90"
	P99         Statistic = "p99"
)

var ErrInvalidStatistic = errors.New("invalid statistic")

// Percentile returns the pNN statistic for p, e.g. Percentile(99.9) == "p99.9".
func Percentile(p float64) Statistic {
	return Statistic("p" + strconv.FormatFloat(p, 'f', -1, 64))
}

// ParseStatistic accepts the short forms used in CDK code (sum, avg, min,
// max, n, pNN) as well as the canonical names.
func ParseStatistic(s string) (Statistic, error) {
	switch strings.ToLower(s) {
	case "sum":
		return Sum, nil
	case "avg", "average":
		return Average, nil
	case "min", "minimum":
		return Minimum, nil
	case "max", "maximum":
		return Maximum, nil
	case "n", "samplecount":
		return SampleCount, nil
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "p") {
		p, err := strconv.ParseFloat(lower[1:], 64)
		if err == nil && p > 0 && p < 100 {
			return Percentile(p), nil
		}
	}
	return "", errors.Wrapf(ErrInvalidStatistic, "%q", s)
}

// Unit is a CloudWatch unit name. The zero value means "not set".
type Unit string

const (
	Count        Unit = "Count"
	Percent      Unit = "Percent"
	Seconds      Unit = "Seconds"
	Milliseconds Unit = "Milliseconds"
	Bytes        Unit = "Bytes"
	CountPerSec  Unit = "Count/Second"
	NoUnit       Unit = "None"
)
