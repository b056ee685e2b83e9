package register

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
	USERNAME     = user.Username("alice")
	RAW_PASSWORD = user.RawPassword("pw1!")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *user.FakePasswordHasher
	TokenService   *user.FakeTokenService
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.TokenService = user.NewFakeTokenService(func() time.Time { return NOW })
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		suite.TokenService,
		func() time.Time { return NOW },
	)
}

func TestRegisterService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) input() Input {
	return Input{
		Email:     EMAIL,
		Username:  USERNAME,
		FirstName: "A",
		LastName:  "B",
		Password:  RAW_PASSWORD,
	}
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, suite.input())

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(EMAIL, result.User.Email)
	assert.Equal(USERNAME, result.User.Username)
	assert.Equal("A B", result.User.FullName())
	assert.Equal(NOW, result.User.CreatedAt)
	assert.NotEqual(user.PasswordHash(RAW_PASSWORD), result.User.PasswordHash)
	assert.False(result.User.IsEmailConfirmed())
	assert.Equal(suite.TokenService.LastIssued(), result.ConfirmationToken)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	tokens := suite.UnitOfWork.Context.ActionTokenRepository.Tokens
	assert.Len(tokens, 1)
	assert.Equal(user.PurposeConfirmEmail, tokens[0].Purpose)
	assert.Equal(result.User.ID, tokens[0].UserID)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        EMAIL,
		Username:     "someone-else",
		PasswordHash: "test",
		CreatedAt:    NOW,
	})

	_, err := suite.Service.Run(ctx, suite.input())

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
	assert.Empty(suite.UnitOfWork.Context.ActionTokenRepository.Tokens)
}

func (suite *testSuite) TestUsernameAlreadyExistsError() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        "other@x.com",
		Username:     USERNAME,
		PasswordHash: "test",
		CreatedAt:    NOW,
	})

	_, err := suite.Service.Run(ctx, suite.input())

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUsernameAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestTokenCouldNotBeStored() {
	suite.UnitOfWork.Context.ActionTokenRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), suite.input())

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestCommitError() {
	suite.UnitOfWork.Context.CommitReturnsError = true

	_, err := suite.Service.Run(context.Background(), suite.input())

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}
