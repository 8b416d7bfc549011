package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
)

// summary holds the rounded statistics of a sample; all nil for an empty
// sample.
type summary struct {
	mean, p25, median, p75 *float64
}

func summarize(values []float64) summary {
	if len(values) == 0 {
		return summary{}
	}
	xs := make([]decimal.Decimal, len(values))
	for i, v := range values {
		xs[i] = decimal.NewFromFloat(v)
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i].LessThan(xs[j]) })

	return summary{
		mean:   rounded(decimal.Sum(xs[0], xs[1:]...).Div(decimal.NewFromInt(int64(len(xs))))),
		p25:    rounded(percentile(xs, 25)),
		median: rounded(percentile(xs, 50)),
		p75:    rounded(percentile(xs, 75)),
	}
}

// percentile uses linear interpolation between closest ranks over a sorted
// sample.
func percentile(sorted []decimal.Decimal, p int64) decimal.Decimal {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := decimal.NewFromInt(p).Mul(decimal.NewFromInt(int64(len(sorted) - 1))).Div(decimal.NewFromInt(100))
	lo := rank.Floor()
	i := int(lo.IntPart())
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank.Sub(lo)
	return sorted[i].Add(sorted[i+1].Sub(sorted[i]).Mul(frac))
}

func median(values []float64) *float64 {
	return summarize(values).median
}

func rounded(d decimal.Decimal) *float64 {
	f := d.Round(2).InexactFloat64()
	return &f
}
