package analytics

import (
	"slices"

	"github.com/shopspring/decimal"
)

// OthersLabel names the overflow bucket folded from entries past the cutoff.
const OthersLabel = "Others"

// Bucket is one labelled value in a top-N breakdown. Count is an auxiliary
// tally (orders, usually) carried through folding.
type Bucket struct {
	Key        string
	Label      string
	Value      decimal.Decimal
	Count      int
	Percentage float64
}

// TopN sorts buckets by value descending (stable), keeps the first n and,
// when overflowLabel is set, folds the rest into one trailing bucket.
// Percentages are shares of the total of all input values, one decimal,
// and are all zero when that total is zero.
func TopN(buckets []Bucket, n int, overflowLabel string) []Bucket {
	sorted := slices.Clone(buckets)
	slices.SortStableFunc(sorted, func(a, b Bucket) int {
		return b.Value.Cmp(a.Value)
	})

	total := decimal.Zero
	for _, b := range sorted {
		total = total.Add(b.Value)
	}

	keep, rest := sorted, []Bucket(nil)
	if n >= 0 && len(sorted) > n {
		keep, rest = sorted[:n], sorted[n:]
	}

	out := make([]Bucket, 0, len(keep)+1)
	out = append(out, keep...)
	if overflowLabel != "" && len(rest) > 0 {
		others := Bucket{Label: overflowLabel, Value: decimal.Zero}
		for _, b := range rest {
			others.Value = others.Value.Add(b.Value)
			others.Count += b.Count
		}
		out = append(out, others)
	}

	for i := range out {
		out[i].Percentage = percentOf(out[i].Value, total, 1)
	}
	return out
}
