package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("record conflicts with an existing one")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	content.Backend[models.Project]
	ListFeatured(ctx context.Context) ([]models.Project, error)
	Count(ctx context.Context) (int, error)
}

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	content.Backend[models.Post]
	ListPublished(ctx context.Context) ([]models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	Count(ctx context.Context) (int, error)
}

// SkillRepository defines the interface for skill data operations
type SkillRepository interface {
	content.Backend[models.Skill]
	ListByCategory(ctx context.Context, category string) ([]models.Skill, error)
	Count(ctx context.Context) (int, error)
}

// MessageRepository defines the interface for contact message data operations
type MessageRepository interface {
	content.Backend[models.ContactMessage]
	Count(ctx context.Context) (int, error)
}

// PortfolioRepository serves the read-only sections of the public site
type PortfolioRepository interface {
	GetPersonalInfo(ctx context.Context) (*models.PersonalInfo, error)
	ListSocialLinks(ctx context.Context) ([]models.SocialLink, error)
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	ListEducation(ctx context.Context) ([]models.Education, error)
}

// UserRepository defines the interface for back-office user operations
type UserRepository interface {
	CreateWithCredential(ctx context.Context, user *models.User, passwordHash string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// AccountRepository defines the interface for credential lookups
type AccountRepository interface {
	GetCredential(ctx context.Context, userID int64) (*models.Account, error)
}

// SessionRepository defines the interface for session operations
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Extend(ctx context.Context, id int64, expiresAt, updatedAt time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Projects  ProjectRepository
	Posts     PostRepository
	Skills    SkillRepository
	Messages  MessageRepository
	Portfolio PortfolioRepository
	Users     UserRepository
	Accounts  AccountRepository
	Sessions  SessionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Projects:  NewProjectRepo(db),
		Posts:     NewPostRepo(db),
		Skills:    NewSkillRepo(db),
		Messages:  NewMessageRepo(db),
		Portfolio: NewPortfolioRepo(db),
		Users:     NewUserRepo(db),
		Accounts:  NewAccountRepo(db),
		Sessions:  NewSessionRepo(db),
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// mapError translates driver errors into the package's sentinel errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}
	return err
}

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db *database.DB, table string, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func count(ctx context.Context, db *database.DB, table string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

// nextIDExpr picks the caller's id, or one past the current maximum when the
// caller passes zero.
func nextIDExpr(table string) string {
	return "COALESCE(NULLIF($1::BIGINT, 0), (SELECT COALESCE(MAX(id), 0) + 1 FROM " + table + "))"
}

// helper to convert empty string to NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
