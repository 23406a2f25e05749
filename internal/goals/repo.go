package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/aiotex/weighttracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalExists   = errors.New("goal already exists")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var goal Goal
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, start_weight_kg, start_date, target_weight_kg, target_date
			FROM goal
			WHERE user_id = $1;`,
		userID,
	).Scan(&goal.UserID, &goal.StartWeightKg, &goal.StartDate, &goal.TargetWeightKg, &goal.TargetDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	return &goal, nil
}

func (r *Repo) Create(ctx context.Context, goal Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO goal (user_id, start_weight_kg, start_date, target_weight_kg, target_date)
				VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id) DO NOTHING;`,
		goal.UserID, goal.StartWeightKg, goal.StartDate, goal.TargetWeightKg, goal.TargetDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalExists
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, goal Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal
			SET start_weight_kg = $1, start_date = $2, target_weight_kg = $3, target_date = $4
			WHERE user_id = $5;`,
		goal.StartWeightKg, goal.StartDate, goal.TargetWeightKg, goal.TargetDate, goal.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM goal WHERE user_id = $1;`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}
