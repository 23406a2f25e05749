package weights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/internal/units"

	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidGroup = errors.New("invalid aggregation group")

// Granularity selects the calendar bucketing of sample averages.
type Granularity string

const (
	GroupWeekly  Granularity = "weekly"
	GroupMonthly Granularity = "monthly"
	GroupYearly  Granularity = "yearly"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GroupWeekly, GroupMonthly, GroupYearly:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGroup, s)
	}
}

// jsonKeyField is the name of the bucket key field on the wire,
// per granularity.
func (g Granularity) jsonKeyField() string {
	switch g {
	case GroupWeekly:
		return "week"
	case GroupMonthly:
		return "month"
	default:
		return "year"
	}
}

// Bucket is one calendar bucket of averaged samples. Granularity travels
// with the bucket so downstream projection never has to infer it from the
// key's shape.
type Bucket struct {
	Granularity Granularity
	Key         string
	Average     float64
	SampleCount int
}

func (b Bucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		b.Granularity.jsonKeyField(): b.Key,
		"average":                    b.Average,
	})
}

// bucketKey computes the calendar bucket of a sample day. Weekly keys are
// ISO year-week pairs; a Sunday week start shifts the day forward by one
// before the ISO computation, so Sunday-start weeks stay distinct from
// ISO Monday-start weeks.
func bucketKey(day time.Time, granularity Granularity, weekStartsOn int) string {
	switch granularity {
	case GroupWeekly:
		d := day
		if weekStartsOn == 0 {
			d = d.AddDate(0, 0, 1)
		}
		isoYear, isoWeek := d.ISOWeek()
		return fmt.Sprintf("%d-%02d", isoYear, isoWeek)
	case GroupMonthly:
		return day.Format("2006-01")
	default:
		return day.Format("2006")
	}
}

// Bucketize groups samples into calendar buckets and averages each one,
// rounded to 1 decimal. Buckets come back ordered ascending by key.
// Empty input yields an empty list.
func Bucketize(samples []Sample, granularity Granularity, weekStartsOn int) []Bucket {
	key2weights := make(map[string][]float64)
	for _, s := range samples {
		key := bucketKey(s.Day, granularity, weekStartsOn)
		key2weights[key] = append(key2weights[key], s.WeightKg)
	}

	buckets := make([]Bucket, 0, len(key2weights))
	for key, weights := range key2weights {
		var sum float64
		for _, w := range weights {
			sum += w
		}
		buckets = append(buckets, Bucket{
			Granularity: granularity,
			Key:         key,
			Average:     units.RoundTo(sum/float64(len(weights)), 1),
			SampleCount: len(weights),
		})
	}

	// zero-padded keys sort chronologically as strings
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})

	return buckets
}

// minimum samples for a bucket to be considered representative,
// applied only when the gate is enabled
var minSamplesPerBucket = map[Granularity]int{
	GroupWeekly:  7,
	GroupMonthly: 28,
	GroupYearly:  360,
}

type AveragesParams struct {
	UserID       int
	Group        Granularity
	From         *time.Time
	To           *time.Time
	WeekStartsOn int
}

// Analyzer computes bucketed weight averages from stored samples.
type Analyzer struct {
	repo samplesRepo

	// minSamplesGate drops under-populated buckets when set. Off keeps
	// every bucket regardless of how few samples back it.
	minSamplesGate bool
}

func NewAnalyzer(repo samplesRepo, minSamplesGate bool) *Analyzer {
	return &Analyzer{
		repo:           repo,
		minSamplesGate: minSamplesGate,
	}
}

func (a *Analyzer) Averages(ctx context.Context, params AveragesParams) (_ []Bucket, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.weights.averages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group", string(params.Group)))
	span.SetAttributes(attribute.Int("week-starts-on", params.WeekStartsOn))

	if _, err := ParseGranularity(string(params.Group)); err != nil {
		return nil, err
	}

	samples, err := a.repo.ListRange(ctx, ListRangeParams{
		UserID: params.UserID,
		From:   params.From,
		To:     params.To,
	})
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	buckets := Bucketize(samples, params.Group, params.WeekStartsOn)
	if a.minSamplesGate {
		buckets = gateBuckets(buckets, params.Group)
	}

	span.SetAttributes(attribute.Int("buckets", len(buckets)))
	return buckets, nil
}

func gateBuckets(buckets []Bucket, granularity Granularity) []Bucket {
	min := minSamplesPerBucket[granularity]
	gated := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		if b.SampleCount >= min {
			gated = append(gated, b)
		}
	}
	return gated
}
