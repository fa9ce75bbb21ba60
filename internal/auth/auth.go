// Package auth implements username/password sign-in with server-side
// sessions for the back office.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for any failed sign-in.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized is returned when a session token is missing, unknown or expired.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrSignUpDisabled is returned by SignUp when registration is turned off.
	ErrSignUpDisabled = errors.New("sign-up is disabled")

	// ErrUserExists is returned when the email or username is already registered.
	ErrUserExists = errors.New("email or username already in use")
)

const tokenBytes = 32

// ClientMeta describes the client a session is issued to.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// Service is the authentication contract used by the HTTP layer.
type Service interface {
	SignIn(ctx context.Context, username, password string, meta ClientMeta) (*models.SessionWithUser, error)
	SignUp(ctx context.Context, email, password, name, username string, meta ClientMeta) (*models.SessionWithUser, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*models.SessionWithUser, error)
}

// Option configures the service.
type Option func(*service)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *service) { s.hashCost = cost }
}

type service struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	cfg      config.AuthConfig
	cache    *cache.Cache
	log      zerolog.Logger
	now      func() time.Time
	hashCost int
}

// NewService creates the authentication service.
func NewService(repos *repository.Repositories, cfg config.AuthConfig, log zerolog.Logger, opts ...Option) Service {
	s := &service{
		users:    repos.Users,
		accounts: repos.Accounts,
		sessions: repos.Sessions,
		cfg:      cfg,
		cache:    cache.New(cfg.CookieCacheTTL, 2*cfg.CookieCacheTTL),
		log:      log.With().Str("service", "auth").Logger(),
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn checks a username/password pair and opens a session.
func (s *service) SignIn(ctx context.Context, username, password string, meta ClientMeta) (*models.SessionWithUser, error) {
	user, err := s.users.GetByUsername(ctx, validation.NormalizeUsername(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user")
	}

	account, err := s.accounts.GetCredential(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load credential")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.log.Warn().Int64("user_id", user.ID).Msg("Sign-in rejected")
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user, meta)
}

// SignUp registers a user with a password account and opens a session.
func (s *service) SignUp(ctx context.Context, email, password, name, username string, meta ClientMeta) (*models.SessionWithUser, error) {
	if !s.cfg.SignUpEnabled {
		return nil, ErrSignUpDisabled
	}
	if err := validation.AsError(validation.ValidateSignUp(email, password, name, username)); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	display := strings.TrimSpace(username)
	normalized := validation.NormalizeUsername(display)

	if exists, err := s.users.EmailExists(ctx, email); err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	} else if exists {
		return nil, ErrUserExists
	}
	if exists, err := s.users.UsernameExists(ctx, normalized); err != nil {
		return nil, errors.Wrap(err, "failed to check username")
	} else if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := s.now()
	user := &models.User{
		Name:            strings.TrimSpace(name),
		Email:           email,
		Username:        normalized,
		DisplayUsername: display,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.CreateWithCredential(ctx, user, string(hash)); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, errors.Wrap(err, "failed to create user")
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User signed up")
	return s.openSession(ctx, user, meta)
}

// SignOut ends the session. Unknown tokens are ignored.
func (s *service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.cache.Delete(token)
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}

// GetSession resolves a token to its live session and user. A session that
// is at least UpdateAge old has its expiry pushed forward by SessionTTL.
func (s *service) GetSession(ctx context.Context, token string) (*models.SessionWithUser, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	now := s.now()

	if cached, ok := s.cache.Get(token); ok {
		sw := cached.(*models.SessionWithUser)
		if !sw.Session.Expired(now) {
			return sw, nil
		}
		s.cache.Delete(token)
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if session.Expired(now) {
		if err := s.sessions.DeleteByToken(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("Failed to delete expired session")
		}
		return nil, ErrUnauthorized
	}

	refreshed := s.needsRefresh(session, now)
	if refreshed {
		expiresAt := now.Add(s.cfg.SessionTTL)
		if err := s.sessions.Extend(ctx, session.ID, expiresAt, now); err != nil {
			return nil, errors.Wrap(err, "failed to refresh session")
		}
		session.ExpiresAt = expiresAt
		session.UpdatedAt = now
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session user")
	}

	sw := &models.SessionWithUser{Session: session, User: user}
	s.cache.Set(token, sw, cache.DefaultExpiration)
	if refreshed {
		return &models.SessionWithUser{Session: session, User: user, Refreshed: true}, nil
	}
	return sw, nil
}

// needsRefresh reports whether the session was issued or last extended at
// least UpdateAge ago.
func (s *service) needsRefresh(session *models.Session, now time.Time) bool {
	issued := session.ExpiresAt.Add(-s.cfg.SessionTTL)
	return now.Sub(issued) >= s.cfg.UpdateAge
}

func (s *service) openSession(ctx context.Context, user *models.User, meta ClientMeta) (*models.SessionWithUser, error) {
	token, err := newToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	now := s.now()
	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	sw := &models.SessionWithUser{Session: session, User: user}
	s.cache.Set(token, sw, cache.DefaultExpiration)

	s.log.Info().Int64("user_id", user.ID).Msg("Session opened")
	return sw, nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
