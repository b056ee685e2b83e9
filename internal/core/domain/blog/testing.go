package blog

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeCategoryRepository struct {
	Categories  []Category
	Blogs       *FakeBlogRepository
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeCategoryRepository(blogs *FakeBlogRepository) *FakeCategoryRepository {
	return &FakeCategoryRepository{Blogs: blogs}
}

func (r *FakeCategoryRepository) GetByID(ctx context.Context, id CategoryID) (c Category, err error) {
	if r.ReturnError {
		return c, fmt.Errorf("could not get category %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, c := range r.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return c, ErrCategoryDoesNotExist
}

func (r *FakeCategoryRepository) GetAll(ctx context.Context) ([]Category, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list categories")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Category(nil), r.Categories...), nil
}

func (r *FakeCategoryRepository) Create(ctx context.Context, c Category) (Category, error) {
	if r.ReturnError {
		return c, fmt.Errorf("could not create category %v", c)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	c.ID = CategoryID(len(r.Categories) + 1)
	r.Categories = append(r.Categories, c)
	return c, nil
}

func (r *FakeCategoryRepository) Update(ctx context.Context, c Category) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Categories {
		if r.Categories[ix].ID == c.ID {
			r.Categories[ix] = c
			return nil
		}
	}
	return ErrCategoryDoesNotExist
}

func (r *FakeCategoryRepository) Delete(ctx context.Context, id CategoryID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Categories {
		if r.Categories[ix].ID == id {
			r.Categories = append(r.Categories[:ix], r.Categories[ix+1:]...)
			return nil
		}
	}
	return ErrCategoryDoesNotExist
}

func (r *FakeCategoryRepository) GetByIDWithBlogs(ctx context.Context, id CategoryID) (cb CategoryWithBlogs, err error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return cb, err
	}
	published, err := r.Blogs.ListPublished(ctx, 0)
	if err != nil {
		return cb, err
	}
	cb.Category = c
	for _, b := range published {
		if b.CategoryID == id {
			cb.Blogs = append(cb.Blogs, b)
		}
	}
	return cb, nil
}

type FakeBlogRepository struct {
	Blogs       []Blog
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeBlogRepository() *FakeBlogRepository {
	return &FakeBlogRepository{}
}

func (r *FakeBlogRepository) GetByID(ctx context.Context, id BlogID) (b Blog, err error) {
	if r.ReturnError {
		return b, fmt.Errorf("could not get blog %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, b := range r.Blogs {
		if b.ID == id {
			return b, nil
		}
	}
	return b, ErrBlogDoesNotExist
}

func (r *FakeBlogRepository) GetAll(ctx context.Context) ([]Blog, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list blogs")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Blog(nil), r.Blogs...), nil
}

func (r *FakeBlogRepository) Create(ctx context.Context, b Blog) (Blog, error) {
	if r.ReturnError {
		return b, fmt.Errorf("could not create blog %v", b.Title)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	b.ID = BlogID(len(r.Blogs) + 1)
	r.Blogs = append(r.Blogs, b)
	return b, nil
}

func (r *FakeBlogRepository) Update(ctx context.Context, b Blog) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Blogs {
		if r.Blogs[ix].ID == b.ID {
			r.Blogs[ix] = b
			return nil
		}
	}
	return ErrBlogDoesNotExist
}

func (r *FakeBlogRepository) Delete(ctx context.Context, id BlogID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Blogs {
		if r.Blogs[ix].ID == id {
			r.Blogs = append(r.Blogs[:ix], r.Blogs[ix+1:]...)
			return nil
		}
	}
	return ErrBlogDoesNotExist
}

func (r *FakeBlogRepository) ListPublished(ctx context.Context, limit uint32) ([]Blog, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list published blogs")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	published := make([]Blog, 0, len(r.Blogs))
	for _, b := range r.Blogs {
		if b.IsPublished {
			published = append(published, b)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	if limit > 0 && len(published) > int(limit) {
		published = published[:limit]
	}
	return published, nil
}
