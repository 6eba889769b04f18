package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Trend is the percentage change from previous to current, rounded to one
// decimal. A zero previous value yields 100 for new activity and 0 otherwise.
func Trend(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1).InexactFloat64()
}

func TrendCount(current, previous int) float64 {
	return Trend(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

// percentOf returns part/whole*100 rounded to places, or 0 for a zero whole.
func percentOf(part, whole decimal.Decimal, places int32) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(places).InexactFloat64()
}

func rate1(part, whole int) float64 {
	return percentOf(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(whole)), 1)
}

func rateInt(part, whole int) int {
	return int(percentOf(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(whole)), 0))
}

func round1(f float64) float64 {
	return decimal.NewFromFloat(f).Round(1).InexactFloat64()
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// meanDays averages spans in days, one decimal, 0 for no spans.
func meanDays(spans []time.Duration) float64 {
	if len(spans) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range spans {
		total += s
	}
	return round1(total.Hours() / 24 / float64(len(spans)))
}
