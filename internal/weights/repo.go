package weights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aiotex/weighttracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSampleNotFound = errors.New("weight sample not found")

type ListRangeParams struct {
	UserID int
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert inserts the sample or, when the user already has one for that day,
// overwrites its weight and notes.
func (r *Repo) Upsert(ctx context.Context, sample Sample) (_ *Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", sample.Day.Format(DayFormat)))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO weight_sample (user_id, day, weight_kg, notes)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, day) DO UPDATE
				SET weight_kg = EXCLUDED.weight_kg, notes = EXCLUDED.notes
			RETURNING id;`,
		sample.UserID, sample.Day, sample.WeightKg, notesParam(sample.Notes),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("sample.id", id))

	sample.ID = id
	return &sample, nil
}

func (r *Repo) GetByDay(ctx context.Context, userID int, day time.Time) (_ *Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.getbyday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(DayFormat)))

	return r.one(ctx,
		`SELECT id, user_id, day, weight_kg, notes
			FROM weight_sample
			WHERE user_id = $1 AND day = $2;`,
		userID, day,
	)
}

func (r *Repo) DeleteByDay(ctx context.Context, userID int, day time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.deletebyday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(DayFormat)))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM weight_sample WHERE user_id = $1 AND day = $2;`,
		userID, day,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSampleNotFound
	}
	return nil
}

// Latest returns the most recent sample of the user.
func (r *Repo) Latest(ctx context.Context, userID int) (_ *Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.one(ctx,
		`SELECT id, user_id, day, weight_kg, notes
			FROM weight_sample
			WHERE user_id = $1
			ORDER BY day DESC LIMIT 1;`,
		userID,
	)
}

// Earliest returns the oldest sample of the user. Used to resolve the
// open-ended "all" period from data.
func (r *Repo) Earliest(ctx context.Context, userID int) (_ *Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.earliest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.one(ctx,
		`SELECT id, user_id, day, weight_kg, notes
			FROM weight_sample
			WHERE user_id = $1
			ORDER BY day ASC LIMIT 1;`,
		userID,
	)
}

// ListRange returns the user's samples ordered by day ascending, optionally
// bounded on either side (inclusive).
func (r *Repo) ListRange(ctx context.Context, params ListRangeParams) (_ []Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.listrange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.Format(DayFormat)))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.Format(DayFormat)))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, day, weight_kg, notes
			FROM weight_sample
			WHERE user_id = $1
				AND ($2::timestamp IS NULL OR day >= $2)
				AND ($3::timestamp IS NULL OR day <= $3)
			ORDER BY day ASC;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2samples(rows)
}

func (r *Repo) one(ctx context.Context, query string, args ...interface{}) (*Sample, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples, err := rows2samples(rows)
	if err != nil {
		return nil, err
	}
	if len(samples) != 1 {
		return nil, ErrSampleNotFound
	}
	return &samples[0], nil
}

func rows2samples(rows pgx.Rows) ([]Sample, error) {
	var samples []Sample
	for rows.Next() {
		var s Sample
		var notes *string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Day, &s.WeightKg, &notes); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if notes != nil {
			s.Notes = *notes
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func notesParam(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
