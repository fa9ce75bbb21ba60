package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

// portfolioRepo is the concrete implementation of PortfolioRepository
type portfolioRepo struct {
	db *database.DB
}

// NewPortfolioRepo creates a new portfolio repository
func NewPortfolioRepo(db *database.DB) PortfolioRepository {
	return &portfolioRepo{db: db}
}

// GetPersonalInfo returns the first personal info row
func (r *portfolioRepo) GetPersonalInfo(ctx context.Context) (*models.PersonalInfo, error) {
	query := `
		SELECT id, name, title, bio, email, location, avatar_url, resume_url
		FROM personal_info ORDER BY id LIMIT 1
	`
	var info models.PersonalInfo
	err := r.db.QueryRowContext(ctx, query).Scan(
		&info.ID, &info.Name, &info.Title, &info.Bio, &info.Email,
		&info.Location, &info.AvatarURL, &info.ResumeURL,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &info, nil
}

// ListSocialLinks returns the social links in display order
func (r *portfolioRepo) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, url, icon, position FROM social_links ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (models.SocialLink, error) {
		var l models.SocialLink
		err := row.Scan(&l.ID, &l.Name, &l.URL, &l.Icon, &l.Position)
		return l, err
	})
}

// ListExperiences returns work experience, most recent first
func (r *portfolioRepo) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	query := `
		SELECT id, company, position, description, location, logo, technologies, achievements,
			start_date, end_date, current
		FROM experiences ORDER BY start_date DESC, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (models.Experience, error) {
		var e models.Experience
		var endDate sql.NullTime
		err := row.Scan(
			&e.ID, &e.Company, &e.Position, &e.Description, &e.Location, &e.Logo,
			pq.Array(&e.Technologies), pq.Array(&e.Achievements),
			&e.StartDate, &endDate, &e.Current,
		)
		if endDate.Valid {
			e.EndDate = &endDate.Time
		}
		return e, err
	})
}

// ListEducation returns education entries, most recent first
func (r *portfolioRepo) ListEducation(ctx context.Context) ([]models.Education, error) {
	query := `
		SELECT id, institution, degree, field, description, location, logo, start_date, end_date
		FROM education ORDER BY start_date DESC, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (models.Education, error) {
		var e models.Education
		var endDate sql.NullTime
		err := row.Scan(
			&e.ID, &e.Institution, &e.Degree, &e.Field, &e.Description, &e.Location, &e.Logo,
			&e.StartDate, &endDate,
		)
		if endDate.Valid {
			e.EndDate = &endDate.Time
		}
		return e, err
	})
}
