package register

import (
	"context"
	"fmt"
	"testing"
	"time"

	"blog/internal/core/domain/logging"
	uow "blog/internal/core/domain/unit_of_work"
	"blog/internal/core/domain/user"
	"blog/internal/core/services"

	"github.com/stretchr/testify/suite"
)

type testConfirmationSendingSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	UnitOfWork *uow.FakeUnitOfWork
	Tokens     *user.FakeTokenService
	Sender     *user.FakeNotificationSender
	Links      *user.FakeActionLinkBuilder
	Service    services.Service[Input, Result]
}

func (suite *testConfirmationSendingSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.Tokens = user.NewFakeTokenService(func() time.Time { return NOW })
	suite.Sender = user.NewFakeNotificationSender()
	suite.Links = user.NewFakeActionLinkBuilder()
	suite.Service = NewWithConfirmationSending(
		suite.Logger,
		suite.Links,
		suite.Sender,
		New(
			suite.Logger,
			suite.UnitOfWork,
			user.NewFakePasswordHasher(),
			suite.Tokens,
			func() time.Time { return NOW },
		),
	)
}

func TestConfirmationSending(t *testing.T) {
	suite.Run(t, new(testConfirmationSendingSuite))
}

func (suite *testConfirmationSendingSuite) TestExactlyOneNotificationIsSent() {
	result, err := suite.Service.Run(context.Background(), Input{
		Email:     EMAIL,
		Username:  USERNAME,
		FirstName: "A",
		LastName:  "B",
		Password:  RAW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Sender.SentCount())

	sent := suite.Sender.LastSent()
	assert.Equal(user.PurposeConfirmEmail, sent.Purpose)
	assert.Equal(EMAIL, sent.To)
	assert.Equal("A B", sent.Name)
	assert.Equal(
		fmt.Sprintf("https://blog.test/confirm-email?userId=%d&token=%s", result.User.ID, string(result.ConfirmationToken)),
		sent.ActionURL,
	)
}

func (suite *testConfirmationSendingSuite) TestNothingIsSentWhenRegistrationFails() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        EMAIL,
		Username:     USERNAME,
		PasswordHash: "test",
		CreatedAt:    NOW,
	})

	_, err := suite.Service.Run(ctx, Input{Email: EMAIL, Username: USERNAME, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testConfirmationSendingSuite) TestSendError() {
	suite.Sender.ReturnError = true

	result, err := suite.Service.Run(context.Background(), Input{
		Email:    EMAIL,
		Username: USERNAME,
		Password: RAW_PASSWORD,
	})

	assert := suite.Require()
	assert.NotNil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
