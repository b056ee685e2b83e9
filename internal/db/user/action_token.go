package user

import (
	"context"

	"blog/internal/core/domain/user"
	"blog/internal/db"
)

type PgxActionTokenRepository struct {
	db db.DBTX
}

func NewPgxActionTokenRepository(dbtx db.DBTX) *PgxActionTokenRepository {
	if dbtx == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxActionTokenRepository{db: dbtx}
}

func (r *PgxActionTokenRepository) Create(ctx context.Context, input user.CreateActionTokenInput) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO action_token (user_id, purpose, digest, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		int64(input.UserID),
		string(input.Purpose),
		string(input.Digest),
		input.CreatedAt,
		input.ExpiresAt,
	)
	return err
}

// Consume is a single conditional update, so concurrent redemptions of one token
// cannot both succeed.
func (r *PgxActionTokenRepository) Consume(ctx context.Context, input user.ConsumeActionTokenInput) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE action_token SET used_at = $4
		WHERE user_id = $1 AND purpose = $2 AND digest = $3
			AND used_at IS NULL AND expires_at > $4`,
		int64(input.UserID),
		string(input.Purpose),
		string(input.Digest),
		input.At,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidActionToken
	}
	return nil
}
