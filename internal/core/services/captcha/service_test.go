package captcha

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type stubService struct {
	WasCalled bool
}

func (s *stubService) Run(ctx context.Context, input string) (result string, err error) {
	s.WasCalled = true
	return input, nil
}

type testCaptchaSuite struct {
	suite.Suite
	Validator *FakeCaptchaValidator
	Inner     *stubService
}

func (suite *testCaptchaSuite) SetupTest() {
	suite.Validator = NewFakeCaptchaValidator(true)
	suite.Inner = &stubService{}
}

func TestCaptchaService(t *testing.T) {
	suite.Run(t, new(testCaptchaSuite))
}

func (suite *testCaptchaSuite) TestValidToken() {
	service := WithCaptcha[string, string](suite.Validator, suite.Inner)
	ctx := WithCaptchaToken(context.Background(), "token")

	result, err := service.Run(ctx, "input")

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("input", result)
	assert.True(suite.Inner.WasCalled)
	assert.Equal([]CaptchaToken{"token"}, suite.Validator.Checked)
}

func (suite *testCaptchaSuite) TestInvalidToken() {
	suite.Validator.IsValid = false
	service := WithCaptcha[string, string](suite.Validator, suite.Inner)
	ctx := WithCaptchaToken(context.Background(), "token")

	_, err := service.Run(ctx, "input")

	assert := suite.Require()
	assert.True(errors.Is(err, ErrInvalidCaptcha))
	assert.False(suite.Inner.WasCalled)
}

func (suite *testCaptchaSuite) TestMissingToken() {
	suite.Validator.IsValid = false
	service := WithCaptcha[string, string](suite.Validator, suite.Inner)

	_, err := service.Run(context.Background(), "input")

	assert := suite.Require()
	assert.True(errors.Is(err, ErrInvalidCaptcha))
	assert.Equal([]CaptchaToken{""}, suite.Validator.Checked)
}
