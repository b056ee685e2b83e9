package getblog

import (
	"context"
	"errors"

	"blog/internal/core/domain/blog"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/services"
)

type Input struct {
	ID blog.BlogID
}

type Result struct {
	Blog     blog.Blog
	Category blog.Category
}

type service struct {
	log                logging.Logger
	blogRepository     blog.BlogRepository
	categoryRepository blog.CategoryRepository
}

func New(
	log logging.Logger,
	blogRepository blog.BlogRepository,
	categoryRepository blog.CategoryRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if blogRepository == nil {
		panic(e.NewNilArgumentError("blogRepository"))
	}
	if categoryRepository == nil {
		panic(e.NewNilArgumentError("categoryRepository"))
	}
	return &service{
		log:                log,
		blogRepository:     blogRepository,
		categoryRepository: categoryRepository,
	}
}

// Run returns ErrBlogDoesNotExist for drafts as well.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	b, err := s.blogRepository.GetByID(ctx, input.ID)
	if errors.Is(err, blog.ErrBlogDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("blogId", input.ID))
		return result, err
	}
	if !b.IsPublished {
		return result, blog.ErrBlogDoesNotExist
	}

	category, err := s.categoryRepository.GetByID(ctx, b.CategoryID)
	if err != nil && !errors.Is(err, blog.ErrCategoryDoesNotExist) {
		logging.Error(ctx, s.log, err, logging.Entry("categoryId", b.CategoryID))
		return result, err
	}
	return Result{Blog: b, Category: category}, nil
}
