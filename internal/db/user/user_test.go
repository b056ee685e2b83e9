package user

import (
	"context"
	"errors"
	"testing"
	"time"

	c "blog/internal/core/domain/common"
	"blog/internal/core/domain/user"
	"blog/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("a@x.com")
	PASSWORD_HASH = user.PasswordHash("test-password-hash")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	db.SkipWithoutTestDB(suite.T())
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) create(email c.Email, username user.Username) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        email,
		Username:     username,
		FirstName:    "A",
		LastName:     "B",
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u := suite.create(EMAIL, "alice")

	assert := suite.Require()
	assert.NotEqual(user.ID(0), u.ID)
	assert.Equal(EMAIL, u.Email)
	assert.Equal(user.Username("alice"), u.Username)
	assert.Equal("A B", u.FullName())
	assert.Equal(PASSWORD_HASH, u.PasswordHash)
	assert.True(NOW.Equal(u.CreatedAt))
	assert.False(u.IsEmailConfirmed())
}

func (suite *testSuite) TestCreateDuplicates() {
	suite.create(EMAIL, "alice")
	ctx := context.Background()

	_, err := suite.repo.Create(ctx, user.CreateUserInput{
		Email: EMAIL, Username: "bob", PasswordHash: PASSWORD_HASH, CreatedAt: NOW,
	})
	suite.Require().True(errors.Is(err, user.ErrEmailAlreadyExists))

	_, err = suite.repo.Create(ctx, user.CreateUserInput{
		Email: "b@x.com", Username: "alice", PasswordHash: PASSWORD_HASH, CreatedAt: NOW,
	})
	suite.Require().True(errors.Is(err, user.ErrUsernameAlreadyExists))
}

func (suite *testSuite) TestGetByIDAndEmail() {
	created := suite.create(EMAIL, "alice")
	ctx := context.Background()

	byID, err := suite.repo.GetByID(ctx, created.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, byID.ID)

	byEmail, err := suite.repo.GetByEmail(ctx, EMAIL)
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, byEmail.ID)

	_, err = suite.repo.GetByID(ctx, created.ID+1)
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
	_, err = suite.repo.GetByEmail(ctx, "unknown@x.com")
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestConfirmEmailKeepsFirstTimestamp() {
	created := suite.create(EMAIL, "alice")
	ctx := context.Background()

	u, err := suite.repo.ConfirmEmail(ctx, created.ID, NOW)
	suite.Require().Nil(err)
	suite.Require().True(u.IsEmailConfirmed())

	u, err = suite.repo.ConfirmEmail(ctx, created.ID, NOW.Add(time.Hour))
	suite.Require().Nil(err)
	suite.Require().True(NOW.Equal(u.EmailConfirmedAt.Value))

	_, err = suite.repo.ConfirmEmail(ctx, created.ID+1, NOW)
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestSetPassword() {
	created := suite.create(EMAIL, "alice")
	ctx := context.Background()

	suite.Require().Nil(suite.repo.SetPassword(ctx, created.ID, "new-hash"))
	u, err := suite.repo.GetByID(ctx, created.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(user.PasswordHash("new-hash"), u.PasswordHash)

	err = suite.repo.SetPassword(ctx, created.ID+1, "new-hash")
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}
