package user

import (
	"context"
	"errors"
	"time"

	c "blog/internal/core/domain/common"
	"blog/internal/core/domain/user"
	"blog/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const (
	EMAIL_CONSTRAINT_NAME    = "user_email_idx"
	USERNAME_CONSTRAINT_NAME = "user_username_idx"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, created_at, email_confirmed_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(dbtx db.DBTX) *PgxUserRepository {
	if dbtx == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: dbtx}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, username, first_name, last_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		string(input.Email),
		string(input.Username),
		input.FirstName,
		input.LastName,
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if constraint, ok := db.UniqueViolation(err); ok {
		switch constraint {
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	return r.get(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	return r.get(row)
}

func (r *PgxUserRepository) ConfirmEmail(ctx context.Context, id user.ID, at time.Time) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET email_confirmed_at = COALESCE(email_confirmed_at, $2)
		WHERE id = $1
		RETURNING `+userColumns,
		int64(id),
		at,
	)
	return r.get(row)
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET password_hash = $2 WHERE id = $1`, int64(id), string(password))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) get(row pgx.Row) (u user.User, err error) {
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id                            int64
		email, username, passwordHash string
		emailConfirmedAt              pgtype.Timestamptz
	)
	err = row.Scan(
		&id,
		&email,
		&username,
		&u.FirstName,
		&u.LastName,
		&passwordHash,
		&u.CreatedAt,
		&emailConfirmedAt,
	)
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.Username = user.Username(username)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.EmailConfirmedAt = c.NewOptional(emailConfirmedAt.Time, emailConfirmedAt.Status == pgtype.Present)
	return u, nil
}
