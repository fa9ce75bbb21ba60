package models

import "time"

// User is a back-office account holder
type User struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	EmailVerified   bool      `json:"email_verified" db:"email_verified"`
	Image           string    `json:"image,omitempty" db:"image"`
	Username        string    `json:"username" db:"username"`
	DisplayUsername string    `json:"display_username" db:"display_username"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CredentialProvider is the provider id of username/password accounts
const CredentialProvider = "credential"

// Account links a user to a credential provider
type Account struct {
	ID           int64     `json:"-" db:"id"`
	UserID       int64     `json:"-" db:"user_id"`
	AccountID    string    `json:"-" db:"account_id"`
	ProviderID   string    `json:"-" db:"provider_id"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}

// Session is an authenticated browser session
type Session struct {
	ID        int64     `json:"-" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionWithUser is what GET /api/auth/session returns
type SessionWithUser struct {
	Session *Session `json:"session"`
	User    *User    `json:"user"`

	// Refreshed is set when this lookup pushed the expiry forward, so the
	// cookie has to be re-issued with the new lifetime.
	Refreshed bool `json:"-"`
}
