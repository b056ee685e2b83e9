package session

import (
	"context"

	"blog/internal/core/domain/user"

	"github.com/alexedwards/scs/v2"
)

const USER_ID_KEY = "userId"

// SCS keeps the signed-in user id inside a cookie-backed scs session.
// Every method expects a context that went through the LoadAndSave middleware.
type SCS struct {
	manager        *scs.SessionManager
	passwordHasher user.PasswordHasher
}

func NewSCS(manager *scs.SessionManager, passwordHasher user.PasswordHasher) *SCS {
	return &SCS{manager: manager, passwordHasher: passwordHasher}
}

func (m *SCS) PasswordSignIn(ctx context.Context, u user.User, password user.RawPassword, persistent bool) error {
	if !m.passwordHasher.ValidatePassword(password, u.PasswordHash) {
		return user.ErrInvalidCredentials
	}
	// New token on privilege change against session fixation.
	if err := m.manager.RenewToken(ctx); err != nil {
		return err
	}
	m.manager.Put(ctx, USER_ID_KEY, int64(u.ID))
	m.manager.RememberMe(ctx, persistent)
	return nil
}

func (m *SCS) SignOut(ctx context.Context) error {
	return m.manager.Destroy(ctx)
}

func (m *SCS) UserID(ctx context.Context) (user.ID, bool) {
	if !m.manager.Exists(ctx, USER_ID_KEY) {
		return 0, false
	}
	return user.ID(m.manager.GetInt64(ctx, USER_ID_KEY)), true
}
