package period

import (
	"math"
	"time"
)

// Options controls how a period key is resolved into concrete dates.
// The zero value means: today is the current date, calendar aligned,
// weeks start on Monday. Callers serving user preferences must pass
// WeekStartsOn explicitly instead of relying on that fallback, because
// the stored application default is Sunday.
type Options struct {
	Today           time.Time
	AlignToCalendar *bool
	WeekStartsOn    *int
}

func (o Options) today() time.Time {
	if o.Today.IsZero() {
		return time.Now()
	}
	return o.Today
}

func (o Options) alignToCalendar() bool {
	if o.AlignToCalendar == nil {
		return true
	}
	return *o.AlignToCalendar
}

func (o Options) weekStartsOn() int {
	if o.WeekStartsOn == nil {
		return 1
	}
	return *o.WeekStartsOn
}

// Aligned and Rolling build Options without the pointer boilerplate.
func Aligned(today time.Time, weekStartsOn int) Options {
	align := true
	return Options{Today: today, AlignToCalendar: &align, WeekStartsOn: &weekStartsOn}
}

func Rolling(today time.Time) Options {
	align := false
	return Options{Today: today, AlignToCalendar: &align}
}

// Range is an inclusive calendar date range. Start and End carry an
// end-of-day time component so that comparisons against stored day
// precision dates are inclusive on both sides.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Today time.Time `json:"today"`
}

func NewRange(start, end, today time.Time) Range {
	return Range{
		Start: endOfDay(start),
		End:   endOfDay(end),
		Today: today,
	}
}

// Contains reports whether the calendar day of t falls within the range.
func (r Range) Contains(t time.Time) bool {
	d := endOfDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// StartDay and EndDay return the range bounds at day precision (midnight),
// the form used for querying day-keyed storage.
func (r Range) StartDay() time.Time {
	y, m, d := r.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Start.Location())
}

func (r Range) EndDay() time.Time {
	y, m, d := r.End.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.End.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

func startOfWeek(t time.Time, weekStartsOn int) time.Time {
	diff := int(t.Weekday()) - weekStartsOn
	if diff < 0 {
		diff += 7
	}
	return t.AddDate(0, 0, -diff)
}

func startOfMonthBlock(t time.Time, months int) time.Time {
	block := (int(t.Month()) - 1) / months
	return time.Date(t.Year(), time.Month(block*months+1), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonthBlock(t time.Time, months int) time.Time {
	// day 0 of the next block's first month normalizes to the block's last day
	start := startOfMonthBlock(t, months)
	return time.Date(start.Year(), start.Month()+time.Month(months), 0, 0, 0, 0, 0, t.Location())
}

// ResolveRange computes the concrete date range for a period key.
// Aligned resolution returns the calendar interval of the key's granularity
// containing today; rolling resolution returns a fixed-length window ending
// today. The "all" key has no range and resolves to nil.
func ResolveRange(key Key, opts Options) (*Range, error) {
	config, ok := configs[key]
	if !ok {
		return nil, ErrInvalidPeriod
	}

	today := opts.today()

	if !opts.alignToCalendar() {
		if key == KeyAll {
			return nil, nil
		}
		r := NewRange(today.AddDate(0, 0, -(config.DaysRolling-1)), today, today)
		return &r, nil
	}

	var start, end time.Time
	switch key {
	case KeyWeek:
		start = startOfWeek(today, opts.weekStartsOn())
		end = start.AddDate(0, 0, 6)
	case KeyMonth:
		start = startOfMonthBlock(today, 1)
		end = endOfMonthBlock(today, 1)
	case KeyQuarter:
		start = startOfMonthBlock(today, 3)
		end = endOfMonthBlock(today, 3)
	case KeyHalfYear:
		start = startOfMonthBlock(today, 6)
		end = endOfMonthBlock(today, 6)
	case KeyYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		end = time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location())
	case KeyAll:
		return nil, nil
	}

	r := NewRange(start, end, today)
	return &r, nil
}

// DaysInRange returns the inclusive day count of the range.
func DaysInRange(r Range) int {
	return int(math.Ceil(r.End.Sub(r.Start).Hours()/24)) + 1
}
