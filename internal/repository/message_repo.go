package repository

import (
	"context"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const messageColumns = `id, name, email, subject, message, replied, starred, created_at, updated_at`

// messageRepo is the concrete implementation of MessageRepository
type messageRepo struct {
	db *database.DB
}

// NewMessageRepo creates a new contact message repository
func NewMessageRepo(db *database.DB) MessageRepository {
	return &messageRepo{db: db}
}

func scanMessage(row scanner) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Replied, &m.Starred,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// List returns every message, newest first
func (r *messageRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM contact_messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMessage)
}

// Create inserts a message. A zero ID is assigned one past the current maximum.
func (r *messageRepo) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, replied, starred, created_at, updated_at)
		VALUES (` + nextIDExpr("contact_messages") + `, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + messageColumns
	created, err := scanMessage(r.db.QueryRowContext(ctx, query,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.Replied, m.Starred, m.CreatedAt, m.UpdatedAt,
	))
	return created, mapError(err)
}

// Update stores the message's flags. Message content is never edited.
func (r *messageRepo) Update(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	query := `
		UPDATE contact_messages SET replied = $2, starred = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + messageColumns
	updated, err := scanMessage(r.db.QueryRowContext(ctx, query, m.ID, m.Replied, m.Starred, m.UpdatedAt))
	return updated, mapError(err)
}

// Delete removes a message
func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "contact_messages", id)
}

// Count returns the total number of messages
func (r *messageRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "contact_messages")
}
