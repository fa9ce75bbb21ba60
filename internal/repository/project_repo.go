package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const projectColumns = `id, title, description, short_description, image, demo_url, source_url,
	technologies, featured, created_at, updated_at`

// projectRepo is the concrete implementation of ProjectRepository
type projectRepo struct {
	db *database.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *database.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func scanProject(row scanner) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ShortDescription, &p.Image, &p.DemoURL, &p.SourceURL,
		pq.Array(&p.Technologies), &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return p, err
}

// List returns every project, newest first
func (r *projectRepo) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProject)
}

// ListFeatured returns the featured projects, newest first
func (r *projectRepo) ListFeatured(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE featured ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProject)
}

// Create inserts a project and returns the stored row
func (r *projectRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	query := `
		INSERT INTO projects (id, title, description, short_description, image, demo_url, source_url,
			technologies, featured, created_at, updated_at)
		VALUES (` + nextIDExpr("projects") + `, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + projectColumns
	created, err := scanProject(r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, p.ShortDescription, p.Image, p.DemoURL, p.SourceURL,
		pq.Array(p.Technologies), p.Featured, p.CreatedAt, p.UpdatedAt,
	))
	return created, mapError(err)
}

// Update overwrites a project's fields and returns the stored row
func (r *projectRepo) Update(ctx context.Context, p models.Project) (models.Project, error) {
	query := `
		UPDATE projects SET
			title = $2, description = $3, short_description = $4, image = $5, demo_url = $6,
			source_url = $7, technologies = $8, featured = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + projectColumns
	updated, err := scanProject(r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, p.ShortDescription, p.Image, p.DemoURL,
		p.SourceURL, pq.Array(p.Technologies), p.Featured, p.UpdatedAt,
	))
	return updated, mapError(err)
}

// Delete removes a project
func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "projects", id)
}

// Count returns the total number of projects
func (r *projectRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "projects")
}
