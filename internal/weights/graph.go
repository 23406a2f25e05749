package weights

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aiotex/weighttracker/internal/period"
)

var ErrOutOfRangeWeek = errors.New("week number out of range for year")

// Point is one chart point. Label carries the human form of the point's
// time bucket; Notes only exist for points projected from raw samples.
type Point struct {
	Value float64
	Date  time.Time
	Label string
	Notes string
}

type pointJSON struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Notes string  `json:"notes,omitempty"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{
		Value: p.Value,
		Date:  p.Date.Format(DayFormat),
		Label: p.Label,
		Notes: p.Notes,
	})
}

// ProjectSamples maps raw samples to chart points, labeled by weekday and date.
func ProjectSamples(samples []Sample) []Point {
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		points = append(points, Point{
			Value: s.WeightKg,
			Date:  s.Day,
			Label: s.Day.Format("Mon, Jan 2"),
			Notes: s.Notes,
		})
	}
	return points
}

// ProjectBuckets maps aggregated buckets to chart points. Weekly buckets are
// dated at their reconstructed week start, monthly at the first of the month,
// yearly at January 1st.
func ProjectBuckets(buckets []Bucket, weekStartsOn int) ([]Point, error) {
	points := make([]Point, 0, len(buckets))
	for _, b := range buckets {
		var p Point
		var err error
		switch b.Granularity {
		case GroupYearly:
			p, err = yearlyPoint(b)
		case GroupMonthly:
			p, err = monthlyPoint(b)
		case GroupWeekly:
			p, err = weeklyPoint(b, weekStartsOn)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidGroup, b.Granularity)
		}
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func yearlyPoint(b Bucket) (Point, error) {
	year, err := strconv.Atoi(b.Key)
	if err != nil {
		return Point{}, fmt.Errorf("%w: year bucket %q", period.ErrInvalidDate, b.Key)
	}
	return Point{
		Value: b.Average,
		Date:  time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Label: b.Key,
	}, nil
}

func monthlyPoint(b Bucket) (Point, error) {
	date, err := time.ParseInLocation("2006-01", b.Key, time.UTC)
	if err != nil {
		return Point{}, fmt.Errorf("%w: month bucket %q", period.ErrInvalidDate, b.Key)
	}
	return Point{
		Value: b.Average,
		Date:  date,
		Label: date.Format("January 2006"),
	}, nil
}

func weeklyPoint(b Bucket, weekStartsOn int) (Point, error) {
	year, week, err := splitWeekKey(b.Key)
	if err != nil {
		return Point{}, err
	}
	weekStart, err := WeekStart(year, week, weekStartsOn)
	if err != nil {
		return Point{}, err
	}
	return Point{
		Value: b.Average,
		Date:  weekStart,
		Label: fmt.Sprintf("%d Week %d (%s)", year, week, weekStart.Format("Jan 2")),
	}, nil
}

func splitWeekKey(key string) (year, week int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: week bucket %q", period.ErrInvalidDate, key)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: week bucket %q", period.ErrInvalidDate, key)
	}
	week, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: week bucket %q", period.ErrInvalidDate, key)
	}
	return year, week, nil
}

// WeekStart reconstructs the first day of a bucketed week from its year and
// week number, the inverse of the weekly bucketing rule. The candidate is
// anchored a whole number of weeks past January 1st, snapped back to the
// configured week start day, and rolled forward a week when January 1st
// falls in the tail of the previous year's last week.
func WeekStart(year, week, weekStartsOn int) (time.Time, error) {
	if week < 1 {
		return time.Time{}, fmt.Errorf("%w: year %d has no week %d", ErrOutOfRangeWeek, year, week)
	}

	simple := time.Date(year, time.January, 1+(week-1)*7, 0, 0, 0, 0, time.UTC)
	dayOfWeek := int(simple.Weekday())

	start := simple.AddDate(0, 0, weekStartsOn-dayOfWeek)
	if dayOfWeek > 4 {
		start = start.AddDate(0, 0, 7)
	}

	// the latest possible week of a year starts on December 28
	if start.Year() > year ||
		(start.Year() == year && start.Month() == time.December && start.Day() > 28) {
		return time.Time{}, fmt.Errorf("%w: year %d has no week %d", ErrOutOfRangeWeek, year, week)
	}

	return start, nil
}
