package getcategory

import (
	"context"
	"errors"

	"blog/internal/core/domain/blog"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/services"
)

type Input struct {
	ID blog.CategoryID
}

type Result struct {
	Category blog.CategoryWithBlogs
}

type service struct {
	log                logging.Logger
	categoryRepository blog.CategoryRepository
}

func New(
	log logging.Logger,
	categoryRepository blog.CategoryRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if categoryRepository == nil {
		panic(e.NewNilArgumentError("categoryRepository"))
	}
	return &service{
		log:                log,
		categoryRepository: categoryRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	category, err := s.categoryRepository.GetByIDWithBlogs(ctx, input.ID)
	if errors.Is(err, blog.ErrCategoryDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("categoryId", input.ID))
		return result, err
	}
	return Result{Category: category}, nil
}
