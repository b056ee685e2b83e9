package blog

import (
	"context"
	"errors"

	"blog/internal/core/domain/blog"
	"blog/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxCategoryRepository struct {
	db db.DBTX
}

func NewPgxCategoryRepository(dbtx db.DBTX) *PgxCategoryRepository {
	if dbtx == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxCategoryRepository{db: dbtx}
}

func (r *PgxCategoryRepository) GetByID(ctx context.Context, id blog.CategoryID) (c blog.Category, err error) {
	c, err = scanCategory(r.db.QueryRow(ctx, `SELECT id, name, url FROM category WHERE id = $1`, int64(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return c, blog.ErrCategoryDoesNotExist
	}
	return c, err
}

func (r *PgxCategoryRepository) GetAll(ctx context.Context) ([]blog.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, url FROM category ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]blog.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PgxCategoryRepository) Create(ctx context.Context, c blog.Category) (blog.Category, error) {
	return scanCategory(r.db.QueryRow(
		ctx,
		`INSERT INTO category (name, url) VALUES ($1, $2) RETURNING id, name, url`,
		c.Name,
		c.URL,
	))
}

func (r *PgxCategoryRepository) Update(ctx context.Context, c blog.Category) error {
	tag, err := r.db.Exec(ctx, `UPDATE category SET name = $2, url = $3 WHERE id = $1`, int64(c.ID), c.Name, c.URL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrCategoryDoesNotExist
	}
	return nil
}

func (r *PgxCategoryRepository) Delete(ctx context.Context, id blog.CategoryID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM category WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrCategoryDoesNotExist
	}
	return nil
}

func (r *PgxCategoryRepository) GetByIDWithBlogs(ctx context.Context, id blog.CategoryID) (cb blog.CategoryWithBlogs, err error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return cb, err
	}
	rows, err := r.db.Query(
		ctx,
		`SELECT `+blogColumns+` FROM blog
		WHERE category_id = $1 AND is_published
		ORDER BY created_at DESC, id DESC`,
		int64(id),
	)
	if err != nil {
		return cb, err
	}
	blogs, err := scanBlogs(rows)
	if err != nil {
		return cb, err
	}
	return blog.CategoryWithBlogs{Category: c, Blogs: blogs}, nil
}

func scanCategory(row pgx.Row) (c blog.Category, err error) {
	var id int64
	err = row.Scan(&id, &c.Name, &c.URL)
	c.ID = blog.CategoryID(id)
	return c, err
}
