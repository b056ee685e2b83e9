package listblogs

import (
	"context"

	"blog/internal/core/domain/blog"
	c "blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/services"
)

const DEFAULT_LIMIT = 20

type Input struct {
	Limit c.Optional[uint32]
}

type Result struct {
	Blogs      []blog.Blog
	Categories []blog.Category
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

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	limit := uint32(DEFAULT_LIMIT)
	if input.Limit.IsPresent {
		limit = input.Limit.Value
	}

	blogs, err := s.blogRepository.ListPublished(ctx, limit)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	categories, err := s.categoryRepository.GetAll(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Debug(ctx, "Published blogs read.", logging.Entry("count", len(blogs)))
	return Result{Blogs: blogs, Categories: categories}, nil
}
