package user

import (
	"context"
	"time"
)

type TokenPurpose string

const (
	PurposeConfirmEmail  TokenPurpose = "confirm-email"
	PurposeResetPassword TokenPurpose = "reset-password"
)

func (p TokenPurpose) IsValid() bool {
	return p == PurposeConfirmEmail || p == PurposeResetPassword
}

// ActionToken is the opaque value sent to the user inside an action link.
type ActionToken string

func (t ActionToken) String() string {
	return "***"
}

// TokenDigest is what gets persisted instead of the token itself.
type TokenDigest string

type CreateActionTokenInput struct {
	UserID    ID
	Purpose   TokenPurpose
	Digest    TokenDigest
	CreatedAt time.Time
	ExpiresAt time.Time
}

type ConsumeActionTokenInput struct {
	UserID  ID
	Purpose TokenPurpose
	Digest  TokenDigest
	At      time.Time
}

type ActionTokenRepository interface {
	Create(ctx context.Context, input CreateActionTokenInput) error
	// Consume marks a matching unused, unexpired token as used.
	// It returns ErrInvalidActionToken when there is no such token.
	Consume(ctx context.Context, input ConsumeActionTokenInput) error
}

// TokenService issues and redeems single-use purpose-scoped tokens. The repository is passed
// explicitly so that issuing and redeeming take part in the caller's unit of work.
type TokenService interface {
	Issue(ctx context.Context, tokens ActionTokenRepository, u User, purpose TokenPurpose) (ActionToken, error)
	Redeem(ctx context.Context, tokens ActionTokenRepository, u User, purpose TokenPurpose, token ActionToken) error
}
