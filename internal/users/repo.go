package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/pkg"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const userColumns = `
	id, first_name, last_name, email, password_hash,
	height_cm, date_of_birth, gender, unit_preference, week_starts_on, avatar
`

func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		INSERT INTO app_user (
			first_name, last_name, email, password_hash, unit_preference, week_starts_on
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.UnitPreference, user.WeekStartsOn,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrEmailTaken
	}
	if err := rows.Scan(&user.ID); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	return &user, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.one(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE email = $1`,
		email,
	))
}

func (r *Repo) GetByID(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.one(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE id = $1`,
		id,
	))
}

func (r *Repo) one(row pgx.Row) (*User, error) {
	var (
		user     User
		gender   *string
		avatar   *string
		unitPref string
	)
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&user.HeightCm, &user.DateOfBirth, &gender, &unitPref, &user.WeekStartsOn, &avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("row scan: %w", err)
	}

	if gender != nil {
		user.Gender = Gender(*gender)
	}
	user.UnitPreference = UnitPreference(unitPref)
	if avatar != nil {
		user.Avatar = *avatar
	}

	return &user, nil
}

func (r *Repo) Update(ctx context.Context, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var gender *string
	if user.Gender != "" {
		g := string(user.Gender)
		gender = &g
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE app_user
		SET
			first_name = $1, last_name = $2, email = $3, password_hash = $4,
			height_cm = $5, date_of_birth = $6, gender = $7,
			unit_preference = $8, week_starts_on = $9
		WHERE id = $10`,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.HeightCm, user.DateOfBirth, gender,
		user.UnitPreference, user.WeekStartsOn, user.ID,
	)
	if err != nil {
		return r.updateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// updateErr maps a unique violation on the email column to ErrEmailTaken.
func (r *Repo) updateErr(err error) error {
	if pkg.IsUniqueViolationError(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *Repo) SetAvatar(ctx context.Context, userID int, avatar string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setAvatar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var avatarParam *string
	if avatar != "" {
		avatarParam = &avatar
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE app_user
		SET avatar = $1
		WHERE id = $2`,
		avatarParam, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
