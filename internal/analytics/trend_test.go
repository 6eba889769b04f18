package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		want     float64
	}{
		{name: "new activity", current: "10", previous: "0", want: 100},
		{name: "no activity", current: "0", previous: "0", want: 0},
		{name: "growth", current: "50000", previous: "40000", want: 25},
		{name: "decline", current: "30000", previous: "40000", want: -25},
		{name: "full drop", current: "0", previous: "120", want: -100},
		{name: "rounds to one decimal", current: "4", previous: "3", want: 33.3},
		{name: "rounds half away from zero", current: "1.0025", previous: "1", want: 0.3},
		{name: "flat", current: "99.99", previous: "99.99", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.previous))
			if got != tt.want {
				t.Errorf("Trend(%s, %s) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestTrendCountZeroPrevious(t *testing.T) {
	for current := 1; current < 50; current++ {
		if got := TrendCount(current, 0); got != 100 {
			t.Fatalf("TrendCount(%d, 0) = %v, want 100", current, got)
		}
	}
	if got := TrendCount(0, 0); got != 0 {
		t.Errorf("TrendCount(0, 0) = %v, want 0", got)
	}
}

func TestRates(t *testing.T) {
	if got := rate1(8, 15); got != 53.3 {
		t.Errorf("rate1(8, 15) = %v, want 53.3", got)
	}
	if got := rate1(5, 0); got != 0 {
		t.Errorf("rate1(5, 0) = %v, want 0", got)
	}
	if got := rateInt(20, 30); got != 67 {
		t.Errorf("rateInt(20, 30) = %v, want 67", got)
	}
	if got := rateInt(1, 0); got != 0 {
		t.Errorf("rateInt(1, 0) = %v, want 0", got)
	}
}
