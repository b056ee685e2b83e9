package resetpassword

import (
	"context"
	"errors"
	"testing"
	"time"

	c "blog/internal/core/domain/common"
	"blog/internal/core/domain/logging"
	uow "blog/internal/core/domain/unit_of_work"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("a@x.com")
	OLD_PASSWORD = user.RawPassword("pw1!")
	NEW_PASSWORD = user.RawPassword("pw2!")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	TokenService   *user.FakeTokenService
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
	User           user.User
	Token          user.ActionToken
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.TokenService = user.NewFakeTokenService(func() time.Time { return NOW })
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.TokenService,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)

	ctx := context.Background()
	hash, _ := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	u, err := suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        EMAIL,
		Username:     "alice",
		PasswordHash: hash,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	token, err := suite.TokenService.Issue(
		ctx,
		suite.UnitOfWork.Context.ActionTokenRepository,
		u,
		user.PurposeResetPassword,
	)
	suite.Require().Nil(err)
	suite.User = u
	suite.Token = token
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) storedPasswordHash() user.PasswordHash {
	u, err := suite.UnitOfWork.Context.UserRepository.GetByID(context.Background(), suite.User.ID)
	suite.Require().Nil(err)
	return u.PasswordHash
}

func (suite *testSuite) TestSuccess() {
	_, err := suite.Service.Run(context.Background(), Input{
		Email:       EMAIL,
		Token:       suite.Token,
		NewPassword: NEW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, suite.storedPasswordHash()))
}

func (suite *testSuite) TestExpiredTokenLeavesPasswordUnchanged() {
	suite.UnitOfWork.Context.ActionTokenRepository.ExpireAll(NOW)

	_, err := suite.Service.Run(context.Background(), Input{
		Email:       EMAIL,
		Token:       suite.Token,
		NewPassword: NEW_PASSWORD,
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidActionToken))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, suite.storedPasswordHash()))
}

func (suite *testSuite) TestTokenCanBeUsedOnce() {
	ctx := context.Background()
	input := Input{Email: EMAIL, Token: suite.Token, NewPassword: NEW_PASSWORD}
	_, err := suite.Service.Run(ctx, input)
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Email: EMAIL, Token: suite.Token, NewPassword: "pw3!"})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidActionToken))
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, suite.storedPasswordHash()))
}

func (suite *testSuite) TestConfirmationTokenIsRejected() {
	ctx := context.Background()
	confirmToken, err := suite.TokenService.Issue(
		ctx,
		suite.UnitOfWork.Context.ActionTokenRepository,
		suite.User,
		user.PurposeConfirmEmail,
	)
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Email: EMAIL, Token: confirmToken, NewPassword: NEW_PASSWORD})

	suite.Require().True(errors.Is(err, user.ErrInvalidActionToken))
}

func (suite *testSuite) TestTokenOfAnotherAccount() {
	ctx := context.Background()
	hash, _ := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	other, err := suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        "b@x.com",
		Username:     "bob",
		PasswordHash: hash,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Email: other.Email, Token: suite.Token, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidActionToken))
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, suite.storedPasswordHash()))
}

func (suite *testSuite) TestUnknownEmail() {
	_, err := suite.Service.Run(context.Background(), Input{
		Email:       "unknown@x.com",
		Token:       suite.Token,
		NewPassword: NEW_PASSWORD,
	})

	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestEmptyToken() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, NewPassword: NEW_PASSWORD})

	suite.Require().True(errors.Is(err, user.ErrInvalidActionToken))
}

func (suite *testSuite) TestSuccessConfirmsEmail() {
	result, err := suite.Service.Run(context.Background(), Input{
		Email:       EMAIL,
		Token:       suite.Token,
		NewPassword: NEW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.User.IsEmailConfirmed())
	u, err := suite.UnitOfWork.Context.UserRepository.GetByID(context.Background(), suite.User.ID)
	assert.Nil(err)
	assert.Equal(c.NewOptional(NOW, true), u.EmailConfirmedAt)
}

func (suite *testSuite) TestExpiredTokenLeavesEmailUnconfirmed() {
	suite.UnitOfWork.Context.ActionTokenRepository.ExpireAll(NOW)

	_, err := suite.Service.Run(context.Background(), Input{
		Email:       EMAIL,
		Token:       suite.Token,
		NewPassword: NEW_PASSWORD,
	})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidActionToken)
	u, err := suite.UnitOfWork.Context.UserRepository.GetByID(context.Background(), suite.User.ID)
	assert.Nil(err)
	assert.False(u.IsEmailConfirmed())
}
