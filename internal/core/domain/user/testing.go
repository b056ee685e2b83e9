package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"

	c "blog/internal/core/domain/common"
)

type FakePasswordHasher struct {
	HashCount int
	lock      sync.Mutex
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	h.lock.Lock()
	h.HashCount++
	h.lock.Unlock()
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	sum := md5.New()
	io.WriteString(sum, string(password))
	return PasswordHash(fmt.Sprintf("%x", sum.Sum(nil))) == hash
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) ConfirmEmail(ctx context.Context, id ID, at time.Time) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			if !u.IsEmailConfirmed() {
				r.Users[ix].EmailConfirmedAt = c.NewOptional(at, true)
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeActionToken struct {
	CreateActionTokenInput
	UsedAt c.Optional[time.Time]
}

type FakeActionTokenRepository struct {
	Tokens      []FakeActionToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeActionTokenRepository() *FakeActionTokenRepository {
	return &FakeActionTokenRepository{}
}

func (r *FakeActionTokenRepository) Create(ctx context.Context, input CreateActionTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create action token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Tokens = append(r.Tokens, FakeActionToken{CreateActionTokenInput: input})
	return nil
}

func (r *FakeActionTokenRepository) Consume(ctx context.Context, input ConsumeActionTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not consume action token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.UserID == input.UserID &&
			t.Purpose == input.Purpose &&
			t.Digest == input.Digest &&
			!t.UsedAt.IsPresent &&
			t.ExpiresAt.After(input.At) {
			r.Tokens[ix].UsedAt = c.NewOptional(input.At, true)
			return nil
		}
	}
	return ErrInvalidActionToken
}

// ExpireAll moves the expiry of every stored token to the given moment.
func (r *FakeActionTokenRepository) ExpireAll(at time.Time) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Tokens {
		r.Tokens[ix].ExpiresAt = at
	}
}

// FakeTokenService stores tokens as-is, so the token value is its own digest.
type FakeTokenService struct {
	Now      func() time.Time
	Lifetime time.Duration
	Issued   []ActionToken
	lock     sync.Mutex
}

func NewFakeTokenService(now func() time.Time) *FakeTokenService {
	return &FakeTokenService{Now: now, Lifetime: time.Hour}
}

func (s *FakeTokenService) Issue(
	ctx context.Context,
	tokens ActionTokenRepository,
	u User,
	purpose TokenPurpose,
) (ActionToken, error) {
	s.lock.Lock()
	token := ActionToken(fmt.Sprintf("%s-%d-%d", purpose, u.ID, len(s.Issued)+1))
	s.Issued = append(s.Issued, token)
	s.lock.Unlock()

	err := tokens.Create(ctx, CreateActionTokenInput{
		UserID:    u.ID,
		Purpose:   purpose,
		Digest:    TokenDigest(token),
		CreatedAt: s.Now(),
		ExpiresAt: s.Now().Add(s.Lifetime),
	})
	return token, err
}

func (s *FakeTokenService) Redeem(
	ctx context.Context,
	tokens ActionTokenRepository,
	u User,
	purpose TokenPurpose,
	token ActionToken,
) error {
	return tokens.Consume(ctx, ConsumeActionTokenInput{
		UserID:  u.ID,
		Purpose: purpose,
		Digest:  TokenDigest(token),
		At:      s.Now(),
	})
}

func (s *FakeTokenService) LastIssued() ActionToken {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Issued)
	if l == 0 {
		panic("Issued count is 0.")
	}
	return s.Issued[l-1]
}

type FakeSessionManager struct {
	PasswordHasher PasswordHasher
	SignedIn       []ID
	Persistent     []bool
	SignOutCount   int
	ReturnError    bool
	current        c.Optional[ID]
	lock           sync.Mutex
}

func NewFakeSessionManager(passwordHasher PasswordHasher) *FakeSessionManager {
	return &FakeSessionManager{PasswordHasher: passwordHasher}
}

func (m *FakeSessionManager) PasswordSignIn(
	ctx context.Context,
	u User,
	password RawPassword,
	persistent bool,
) error {
	if m.ReturnError {
		return fmt.Errorf("could not sign in user %d", u.ID)
	}
	if !m.PasswordHasher.ValidatePassword(password, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.SignedIn = append(m.SignedIn, u.ID)
	m.Persistent = append(m.Persistent, persistent)
	m.current = c.NewOptional(u.ID, true)
	return nil
}

func (m *FakeSessionManager) SignOut(ctx context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.SignOutCount++
	m.current = c.None[ID]()
	if m.ReturnError {
		return fmt.Errorf("could not destroy session")
	}
	return nil
}

func (m *FakeSessionManager) UserID(ctx context.Context) (ID, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.current.Value, m.current.IsPresent
}

func (m *FakeSessionManager) SessionCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.SignedIn)
}

type FakeNotificationSender struct {
	Sent        []Notification
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeNotificationSender() *FakeNotificationSender {
	return &FakeNotificationSender{}
}

func (s *FakeNotificationSender) Send(ctx context.Context, n Notification) error {
	if s.ReturnError {
		return fmt.Errorf("could not send %s notification", n.Purpose)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, n)
	return nil
}

func (s *FakeNotificationSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeNotificationSender) LastSent() Notification {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeActionLinkBuilder struct{}

func NewFakeActionLinkBuilder() *FakeActionLinkBuilder {
	return &FakeActionLinkBuilder{}
}

func (b *FakeActionLinkBuilder) BuildActionURL(purpose TokenPurpose, userID ID, token ActionToken) string {
	return fmt.Sprintf("https://blog.test/%s?userId=%d&token=%s", purpose, userID, string(token))
}
