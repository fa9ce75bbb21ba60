package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const postColumns = `id, title, slug, content, excerpt, image, published, published_at, tags,
	created_at, updated_at`

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

func scanPost(row scanner) (models.Post, error) {
	var p models.Post
	var publishedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Image, &p.Published, &publishedAt,
		pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt,
	)
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}

// List returns every post, drafts included, newest first
func (r *postRepo) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPost)
}

// ListPublished returns published posts, most recently published first
func (r *postRepo) ListPublished(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE published ORDER BY published_at DESC NULLS LAST, id DESC")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPost)
}

// GetPublishedBySlug returns a published post by slug
func (r *postRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE slug = $1 AND published", slug))
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// Create inserts a post and returns the stored row. A duplicate slug
// returns ErrConflict.
func (r *postRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	query := `
		INSERT INTO posts (id, title, slug, content, excerpt, image, published, published_at, tags,
			created_at, updated_at)
		VALUES (` + nextIDExpr("posts") + `, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + postColumns
	created, err := scanPost(r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.Image, p.Published, p.PublishedAt,
		pq.Array(p.Tags), p.CreatedAt, p.UpdatedAt,
	))
	return created, mapError(err)
}

// Update overwrites a post's fields and returns the stored row
func (r *postRepo) Update(ctx context.Context, p models.Post) (models.Post, error) {
	query := `
		UPDATE posts SET
			title = $2, slug = $3, content = $4, excerpt = $5, image = $6, published = $7,
			published_at = $8, tags = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + postColumns
	updated, err := scanPost(r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.Image, p.Published,
		p.PublishedAt, pq.Array(p.Tags), p.UpdatedAt,
	))
	return updated, mapError(err)
}

// Delete removes a post
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "posts", id)
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "posts")
}
