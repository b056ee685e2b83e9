package actiontoken

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"blog/internal/core/domain/user"

	"github.com/golang-module/carbon/v2"
)

type TokenGenerator interface {
	GenerateActionToken() user.ActionToken
}

// HMAC issues random tokens and persists only their keyed digests, so a leaked
// action_token table cannot be replayed without the secret key.
type HMAC struct {
	secretKey  []byte
	generator  TokenGenerator
	validHours map[user.TokenPurpose]int
	now        func() time.Time
}

func NewHMAC(
	secretKey string,
	generator TokenGenerator,
	confirmEmailValidHours int,
	resetPasswordValidHours int,
	now func() time.Time,
) *HMAC {
	return &HMAC{
		secretKey: []byte(secretKey),
		generator: generator,
		validHours: map[user.TokenPurpose]int{
			user.PurposeConfirmEmail:  confirmEmailValidHours,
			user.PurposeResetPassword: resetPasswordValidHours,
		},
		now: now,
	}
}

func (h *HMAC) Issue(
	ctx context.Context,
	tokens user.ActionTokenRepository,
	u user.User,
	purpose user.TokenPurpose,
) (token user.ActionToken, err error) {
	if !purpose.IsValid() {
		return token, fmt.Errorf("unknown token purpose %q", purpose)
	}
	token = h.generator.GenerateActionToken()
	now := h.now()
	err = tokens.Create(ctx, user.CreateActionTokenInput{
		UserID:    u.ID,
		Purpose:   purpose,
		Digest:    h.Digest(u.ID, purpose, token),
		CreatedAt: now,
		ExpiresAt: carbon.Time2Carbon(now).AddHours(h.validHours[purpose]).Carbon2Time(),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (h *HMAC) Redeem(
	ctx context.Context,
	tokens user.ActionTokenRepository,
	u user.User,
	purpose user.TokenPurpose,
	token user.ActionToken,
) error {
	if token == "" || !purpose.IsValid() {
		return user.ErrInvalidActionToken
	}
	return tokens.Consume(ctx, user.ConsumeActionTokenInput{
		UserID:  u.ID,
		Purpose: purpose,
		Digest:  h.Digest(u.ID, purpose, token),
		At:      h.now(),
	})
}

// Digest binds the token to its user and purpose.
func (h *HMAC) Digest(userID user.ID, purpose user.TokenPurpose, token user.ActionToken) user.TokenDigest {
	mac := hmac.New(sha256.New, h.secretKey)
	io.WriteString(mac, fmt.Sprintf("%d:%s:%s", userID, purpose, string(token)))
	return user.TokenDigest(hex.EncodeToString(mac.Sum(nil)))
}
