package blog

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCategoryDoesNotExist = errors.New("category does not exist")
	ErrBlogDoesNotExist     = errors.New("blog does not exist")
)

type CategoryID int64

type BlogID int64

type Category struct {
	ID   CategoryID
	Name string
	URL  string
}

type Blog struct {
	ID          BlogID
	Title       string
	Description string
	Content     string
	ImageURL    string
	Tags        []string
	CategoryID  CategoryID
	IsPublished bool
	CreatedAt   time.Time
}

type CategoryWithBlogs struct {
	Category Category
	Blogs    []Blog
}

// Repository is the CRUD surface every entity store offers.
type Repository[T any, ID comparable] interface {
	GetByID(ctx context.Context, id ID) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id ID) error
}

type CategoryRepository interface {
	Repository[Category, CategoryID]
	// GetByIDWithBlogs returns the category with its published blogs, newest first.
	GetByIDWithBlogs(ctx context.Context, id CategoryID) (CategoryWithBlogs, error)
}

type BlogRepository interface {
	Repository[Blog, BlogID]
	ListPublished(ctx context.Context, limit uint32) ([]Blog, error)
}
