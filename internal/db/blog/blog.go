package blog

import (
	"context"
	"errors"

	"blog/internal/core/domain/blog"
	"blog/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const blogColumns = `id, title, description, content, image_url, tags, category_id, is_published, created_at`

type PgxBlogRepository struct {
	db db.DBTX
}

func NewPgxBlogRepository(dbtx db.DBTX) *PgxBlogRepository {
	if dbtx == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxBlogRepository{db: dbtx}
}

func (r *PgxBlogRepository) GetByID(ctx context.Context, id blog.BlogID) (b blog.Blog, err error) {
	b, err = scanBlog(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog WHERE id = $1`, int64(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return b, blog.ErrBlogDoesNotExist
	}
	return b, err
}

func (r *PgxBlogRepository) GetAll(ctx context.Context) ([]blog.Blog, error) {
	rows, err := r.db.Query(ctx, `SELECT `+blogColumns+` FROM blog ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return scanBlogs(rows)
}

func (r *PgxBlogRepository) ListPublished(ctx context.Context, limit uint32) ([]blog.Blog, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+blogColumns+` FROM blog
		WHERE is_published
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($1, 0)`,
		int64(limit),
	)
	if err != nil {
		return nil, err
	}
	return scanBlogs(rows)
}

func (r *PgxBlogRepository) Create(ctx context.Context, b blog.Blog) (blog.Blog, error) {
	tags, err := encodeTags(b.Tags)
	if err != nil {
		return b, err
	}
	return scanBlog(r.db.QueryRow(
		ctx,
		`INSERT INTO blog (title, description, content, image_url, tags, category_id, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+blogColumns,
		b.Title,
		b.Description,
		b.Content,
		b.ImageURL,
		tags,
		int64(b.CategoryID),
		b.IsPublished,
		b.CreatedAt,
	))
}

func (r *PgxBlogRepository) Update(ctx context.Context, b blog.Blog) error {
	tags, err := encodeTags(b.Tags)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(
		ctx,
		`UPDATE blog SET title = $2, description = $3, content = $4, image_url = $5,
			tags = $6, category_id = $7, is_published = $8
		WHERE id = $1`,
		int64(b.ID),
		b.Title,
		b.Description,
		b.Content,
		b.ImageURL,
		tags,
		int64(b.CategoryID),
		b.IsPublished,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogDoesNotExist
	}
	return nil
}

func (r *PgxBlogRepository) Delete(ctx context.Context, id blog.BlogID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogDoesNotExist
	}
	return nil
}

func encodeTags(tags []string) (pgtype.TextArray, error) {
	encoded := pgtype.TextArray{}
	if tags == nil {
		tags = []string{}
	}
	err := encoded.Set(tags)
	return encoded, err
}

func scanBlogs(rows pgx.Rows) ([]blog.Blog, error) {
	defer rows.Close()
	blogs := make([]blog.Blog, 0)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func scanBlog(row pgx.Row) (b blog.Blog, err error) {
	var (
		id, categoryID int64
		tags           pgtype.TextArray
	)
	err = row.Scan(
		&id,
		&b.Title,
		&b.Description,
		&b.Content,
		&b.ImageURL,
		&tags,
		&categoryID,
		&b.IsPublished,
		&b.CreatedAt,
	)
	if err != nil {
		return b, err
	}
	b.ID = blog.BlogID(id)
	b.CategoryID = blog.CategoryID(categoryID)
	b.Tags = make([]string, 0, len(tags.Elements))
	if err := tags.AssignTo(&b.Tags); err != nil {
		return b, err
	}
	return b, nil
}
