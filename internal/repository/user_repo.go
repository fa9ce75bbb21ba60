package repository

import (
	"context"
	"strconv"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const userColumns = `id, name, email, email_verified, image, username, display_username, created_at, updated_at`

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.EmailVerified, &u.Image,
		&u.Username, &u.DisplayUsername, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// CreateWithCredential inserts a user and its password account in one
// transaction. user.ID is set from the database.
func (r *userRepo) CreateWithCredential(ctx context.Context, user *models.User, passwordHash string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (name, email, email_verified, image, username, display_username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		user.Name, user.Email, user.EmailVerified, user.Image,
		user.Username, user.DisplayUsername, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return mapError(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (user_id, account_id, provider_id, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, strconv.FormatInt(user.ID, 10), models.CredentialProvider, nullString(passwordHash),
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	return tx.Commit()
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// GetByUsername retrieves a user by normalized username
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

// EmailExists checks if a user with the given email exists
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// UsernameExists checks if a user with the given username exists
func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	return exists, err
}

// accountRepo is the concrete implementation of AccountRepository
type accountRepo struct {
	db *database.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *database.DB) AccountRepository {
	return &accountRepo{db: db}
}

// GetCredential returns the password account of a user
func (r *accountRepo) GetCredential(ctx context.Context, userID int64) (*models.Account, error) {
	query := `
		SELECT id, user_id, account_id, provider_id, COALESCE(password, ''), created_at, updated_at
		FROM accounts WHERE user_id = $1 AND provider_id = $2
	`
	var a models.Account
	err := r.db.QueryRowContext(ctx, query, userID, models.CredentialProvider).Scan(
		&a.ID, &a.UserID, &a.AccountID, &a.ProviderID, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}
