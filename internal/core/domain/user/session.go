package user

import "context"

type SessionManager interface {
	// PasswordSignIn checks the password and starts a session for the user.
	// It returns ErrInvalidCredentials if the password does not match.
	PasswordSignIn(ctx context.Context, u User, password RawPassword, persistent bool) error
	SignOut(ctx context.Context) error
	UserID(ctx context.Context) (ID, bool)
}
