package repository

import (
	"context"
	"time"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

// sessionRepo is the concrete implementation of SessionRepository
type sessionRepo struct {
	db *database.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *database.DB) SessionRepository {
	return &sessionRepo{db: db}
}

// Create inserts a session. session.ID is set from the database.
func (r *sessionRepo) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, token, expires_at, ip_address, user_agent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		session.UserID, session.Token, session.ExpiresAt, session.IPAddress, session.UserAgent,
		session.CreatedAt, session.UpdatedAt,
	).Scan(&session.ID)
	return mapError(err)
}

// GetByToken retrieves a session by token, expired or not
func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, token, expires_at, ip_address, user_agent, created_at, updated_at
		FROM sessions WHERE token = $1
	`
	var s models.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.IPAddress, &s.UserAgent, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// Extend pushes a session's expiry forward
func (r *sessionRepo) Extend(ctx context.Context, id int64, expiresAt, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET expires_at = $1, updated_at = $2 WHERE id = $3", expiresAt, updatedAt, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByToken removes a session. Removing an unknown token is not an error.
func (r *sessionRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired removes every session that expired before now
func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
