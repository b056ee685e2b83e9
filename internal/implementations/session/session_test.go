package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog/internal/core/domain/user"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/stretchr/testify/suite"
)

const RAW_PASSWORD = user.RawPassword("pw1!")

type testSuite struct {
	suite.Suite
	Manager        *scs.SessionManager
	PasswordHasher *user.FakePasswordHasher
	Sessions       *SCS
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Manager = scs.New()
	suite.Manager.Store = memstore.New()
	suite.Manager.Lifetime = 24 * time.Hour
	suite.Manager.Cookie.Persist = false
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Sessions = NewSCS(suite.Manager, suite.PasswordHasher)
	hash, _ := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	suite.User = user.User{ID: 7, Email: "a@x.com", PasswordHash: hash}
}

func TestSCSSessionManager(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) loadedContext() context.Context {
	ctx, err := suite.Manager.Load(context.Background(), "")
	suite.Require().Nil(err)
	return ctx
}

func (suite *testSuite) TestSignInAndOut() {
	ctx := suite.loadedContext()

	_, ok := suite.Sessions.UserID(ctx)
	suite.Require().False(ok)

	err := suite.Sessions.PasswordSignIn(ctx, suite.User, RAW_PASSWORD, true)
	suite.Require().Nil(err)
	id, ok := suite.Sessions.UserID(ctx)
	suite.Require().True(ok)
	suite.Require().Equal(suite.User.ID, id)

	suite.Require().Nil(suite.Sessions.SignOut(ctx))
	_, ok = suite.Sessions.UserID(ctx)
	suite.Require().False(ok)
}

func (suite *testSuite) TestWrongPassword() {
	ctx := suite.loadedContext()

	err := suite.Sessions.PasswordSignIn(ctx, suite.User, "wrong", true)

	suite.Require().True(errors.Is(err, user.ErrInvalidCredentials))
	_, ok := suite.Sessions.UserID(ctx)
	suite.Require().False(ok)
}

func (suite *testSuite) TestSignOutWithoutSession() {
	suite.Require().Nil(suite.Sessions.SignOut(suite.loadedContext()))
}

func (suite *testSuite) TestPersistentCookie() {
	handler := suite.Manager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := suite.Sessions.PasswordSignIn(r.Context(), suite.User, RAW_PASSWORD, true)
		suite.Require().Nil(err)
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/account/login", nil))

	cookies := rec.Result().Cookies()
	suite.Require().Len(cookies, 1)
	suite.Require().Equal(suite.Manager.Cookie.Name, cookies[0].Name)
	suite.Require().False(cookies[0].Expires.IsZero())
}

func (suite *testSuite) TestSessionCookieWhenNotPersistent() {
	handler := suite.Manager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := suite.Sessions.PasswordSignIn(r.Context(), suite.User, RAW_PASSWORD, false)
		suite.Require().Nil(err)
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/account/login", nil))

	cookies := rec.Result().Cookies()
	suite.Require().Len(cookies, 1)
	suite.Require().True(cookies[0].Expires.IsZero())
}
