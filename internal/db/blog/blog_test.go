package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog/internal/core/domain/blog"
	"blog/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool       *pgxpool.Pool
	categories *PgxCategoryRepository
	blogs      *PgxBlogRepository
	category   blog.Category
}

func (suite *testSuite) SetupSuite() {
	db.SkipWithoutTestDB(suite.T())
	suite.pool = db.CreateTestPool()
	suite.categories = NewPgxCategoryRepository(suite.pool)
	suite.blogs = NewPgxBlogRepository(suite.pool)
}

func (suite *testSuite) SetupTest() {
	c, err := suite.categories.Create(context.Background(), blog.Category{Name: "Go", URL: "go"})
	suite.Require().Nil(err)
	suite.category = c
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxBlogRepositories(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createBlog(title string, published bool, createdAt time.Time) blog.Blog {
	b, err := suite.blogs.Create(context.Background(), blog.Blog{
		Title:       title,
		Description: "description",
		Content:     "content",
		Tags:        []string{"go", "pgx"},
		CategoryID:  suite.category.ID,
		IsPublished: published,
		CreatedAt:   createdAt,
	})
	suite.Require().Nil(err)
	return b
}

func (suite *testSuite) TestCreateAndGetBlog() {
	created := suite.createBlog("Channels", true, NOW)

	b, err := suite.blogs.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Channels", b.Title)
	assert.Equal([]string{"go", "pgx"}, b.Tags)
	assert.Equal(suite.category.ID, b.CategoryID)
	assert.True(b.IsPublished)
	assert.True(NOW.Equal(b.CreatedAt))
}

func (suite *testSuite) TestBlogWithoutTags() {
	b, err := suite.blogs.Create(context.Background(), blog.Blog{
		Title:      "No tags",
		CategoryID: suite.category.ID,
		CreatedAt:  NOW,
	})

	suite.Require().Nil(err)
	suite.Require().Empty(b.Tags)
}

func (suite *testSuite) TestUpdateAndDeleteBlog() {
	ctx := context.Background()
	b := suite.createBlog("Draft", false, NOW)

	b.Title = "Published"
	b.IsPublished = true
	b.Tags = []string{"updated"}
	suite.Require().Nil(suite.blogs.Update(ctx, b))
	updated, err := suite.blogs.GetByID(ctx, b.ID)
	suite.Require().Nil(err)
	suite.Require().Equal("Published", updated.Title)
	suite.Require().Equal([]string{"updated"}, updated.Tags)

	suite.Require().Nil(suite.blogs.Delete(ctx, b.ID))
	_, err = suite.blogs.GetByID(ctx, b.ID)
	suite.Require().True(errors.Is(err, blog.ErrBlogDoesNotExist))
	suite.Require().True(errors.Is(suite.blogs.Delete(ctx, b.ID), blog.ErrBlogDoesNotExist))
}

func (suite *testSuite) TestListPublished() {
	first := suite.createBlog("First", true, NOW)
	suite.createBlog("Draft", false, NOW.Add(time.Hour))
	second := suite.createBlog("Second", true, NOW.Add(2*time.Hour))
	ctx := context.Background()

	blogs, err := suite.blogs.ListPublished(ctx, 0)
	suite.Require().Nil(err)
	suite.Require().Len(blogs, 2)
	suite.Require().Equal(second.ID, blogs[0].ID)
	suite.Require().Equal(first.ID, blogs[1].ID)

	blogs, err = suite.blogs.ListPublished(ctx, 1)
	suite.Require().Nil(err)
	suite.Require().Len(blogs, 1)

	all, err := suite.blogs.GetAll(ctx)
	suite.Require().Nil(err)
	suite.Require().Len(all, 3)
}

func (suite *testSuite) TestCategoryCRUD() {
	ctx := context.Background()

	c, err := suite.categories.GetByID(ctx, suite.category.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(suite.category, c)

	c.Name = "Golang"
	suite.Require().Nil(suite.categories.Update(ctx, c))
	all, err := suite.categories.GetAll(ctx)
	suite.Require().Nil(err)
	suite.Require().Equal([]blog.Category{c}, all)

	suite.Require().Nil(suite.categories.Delete(ctx, c.ID))
	_, err = suite.categories.GetByID(ctx, c.ID)
	suite.Require().True(errors.Is(err, blog.ErrCategoryDoesNotExist))
}

func (suite *testSuite) TestGetByIDWithBlogs() {
	ctx := context.Background()
	older := suite.createBlog("Older", true, NOW)
	newer := suite.createBlog("Newer", true, NOW.Add(time.Hour))
	suite.createBlog("Draft", false, NOW)
	other, err := suite.categories.Create(ctx, blog.Category{Name: "Rust", URL: "rust"})
	suite.Require().Nil(err)
	_, err = suite.blogs.Create(ctx, blog.Blog{Title: "Other", CategoryID: other.ID, IsPublished: true, CreatedAt: NOW})
	suite.Require().Nil(err)

	cb, err := suite.categories.GetByIDWithBlogs(ctx, suite.category.ID)

	suite.Require().Nil(err)
	suite.Require().Equal(suite.category, cb.Category)
	suite.Require().Len(cb.Blogs, 2)
	suite.Require().Equal(newer.ID, cb.Blogs[0].ID)
	suite.Require().Equal(older.ID, cb.Blogs[1].ID)

	_, err = suite.categories.GetByIDWithBlogs(ctx, other.ID+100)
	suite.Require().True(errors.Is(err, blog.ErrCategoryDoesNotExist))
}
