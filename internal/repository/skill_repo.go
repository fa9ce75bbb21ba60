package repository

import (
	"context"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const skillColumns = `id, name, category, level, icon, color, created_at, updated_at`

// skillRepo is the concrete implementation of SkillRepository
type skillRepo struct {
	db *database.DB
}

// NewSkillRepo creates a new skill repository
func NewSkillRepo(db *database.DB) SkillRepository {
	return &skillRepo{db: db}
}

func scanSkill(row scanner) (models.Skill, error) {
	var s models.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.Icon, &s.Color, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List returns every skill, strongest first
func (r *skillRepo) List(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+skillColumns+" FROM skills ORDER BY level DESC, id")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSkill)
}

// ListByCategory returns the skills of one category, strongest first
func (r *skillRepo) ListByCategory(ctx context.Context, category string) ([]models.Skill, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE category = $1 ORDER BY level DESC, id", category)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSkill)
}

// Create inserts a skill and returns the stored row
func (r *skillRepo) Create(ctx context.Context, s models.Skill) (models.Skill, error) {
	query := `
		INSERT INTO skills (id, name, category, level, icon, color, created_at, updated_at)
		VALUES (` + nextIDExpr("skills") + `, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + skillColumns
	created, err := scanSkill(r.db.QueryRowContext(ctx, query,
		s.ID, s.Name, s.Category, s.Level, s.Icon, s.Color, s.CreatedAt, s.UpdatedAt,
	))
	return created, mapError(err)
}

// Update overwrites a skill's fields and returns the stored row
func (r *skillRepo) Update(ctx context.Context, s models.Skill) (models.Skill, error) {
	query := `
		UPDATE skills SET name = $2, category = $3, level = $4, icon = $5, color = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + skillColumns
	updated, err := scanSkill(r.db.QueryRowContext(ctx, query,
		s.ID, s.Name, s.Category, s.Level, s.Icon, s.Color, s.UpdatedAt,
	))
	return updated, mapError(err)
}

// Delete removes a skill
func (r *skillRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "skills", id)
}

// Count returns the total number of skills
func (r *skillRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "skills")
}
