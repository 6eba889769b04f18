package analytics

import "time"

type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

var periodDays = map[Period]int{
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
	PeriodYear:    365,
}

// windowGap separates the previous window from the current one: the
// smallest step a timestamptz can represent.
const windowGap = time.Microsecond

// ParsePeriod maps a period token to a Period. Unknown tokens yield
// PeriodMonth with ok=false.
func ParsePeriod(token string) (Period, bool) {
	p := Period(token)
	if _, ok := periodDays[p]; ok {
		return p, true
	}
	return PeriodMonth, false
}

// Days returns the window length of p in days.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[PeriodMonth]
}

// Window is a current date range plus the immediately preceding comparison
// range of the same length.
type Window struct {
	Period        Period    `json:"period"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	PrevStartDate time.Time `json:"prevStartDate"`
	PrevEndDate   time.Time `json:"prevEndDate"`
}

// ResolveWindow builds the window pair ending at now.
func ResolveWindow(token string, now time.Time) Window {
	p, _ := ParsePeriod(token)
	span := time.Duration(p.Days()) * 24 * time.Hour

	start := now.Add(-span)
	prevEnd := start.Add(-windowGap)
	return Window{
		Period:        p,
		StartDate:     start,
		EndDate:       now,
		PrevStartDate: prevEnd.Add(-span),
		PrevEndDate:   prevEnd,
	}
}

func (w Window) Current() Range {
	return Range{From: w.StartDate, To: w.EndDate}
}

func (w Window) Previous() Range {
	return Range{From: w.PrevStartDate, To: w.PrevEndDate}
}

// Range is an inclusive time range used to scope store reads. The zero
// Range is unbounded.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r Range) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	return !t.Before(r.From) && !t.After(r.To)
}
