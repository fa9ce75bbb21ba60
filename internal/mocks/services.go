package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
)

// MockAuthService is a mock implementation of auth.Service. Sessions are
// keyed by token; SignIn accepts any user in Passwords with a matching
// password.
type MockAuthService struct {
	mu        sync.Mutex
	Passwords map[string]string
	Sessions  map[string]*models.SessionWithUser
	SignUpErr error
	SignOuts  []string
	nextID    int64
}

// Verify interface compliance
var _ auth.Service = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Passwords: make(map[string]string),
		Sessions:  make(map[string]*models.SessionWithUser),
	}
}

// AddSession registers a live session for username under token.
func (m *MockAuthService) AddSession(token, username string) *models.SessionWithUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	sw := &models.SessionWithUser{
		Session: &models.Session{
			ID:        m.nextID,
			UserID:    m.nextID,
			Token:     token,
			ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		},
		User: &models.User{ID: m.nextID, Username: username, DisplayUsername: username},
	}
	m.Sessions[token] = sw
	return sw
}

func (m *MockAuthService) SignIn(ctx context.Context, username, password string, meta auth.ClientMeta) (*models.SessionWithUser, error) {
	m.mu.Lock()
	want, ok := m.Passwords[username]
	m.mu.Unlock()
	if !ok || want != password {
		return nil, auth.ErrInvalidCredentials
	}
	return m.AddSession("token-"+username, username), nil
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password, name, username string, meta auth.ClientMeta) (*models.SessionWithUser, error) {
	if m.SignUpErr != nil {
		return nil, m.SignUpErr
	}
	m.mu.Lock()
	m.Passwords[username] = password
	m.mu.Unlock()
	return m.AddSession("token-"+username, username), nil
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, token)
	m.SignOuts = append(m.SignOuts, token)
	return nil
}

func (m *MockAuthService) GetSession(ctx context.Context, token string) (*models.SessionWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sw, ok := m.Sessions[token]
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	return sw, nil
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	SubmitFunc func(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error)
	Requests   []*models.ContactRequest
}

// Verify interface compliance
var _ service.ContactService = (*MockContactService)(nil)

func NewMockContactService() *MockContactService {
	return &MockContactService{Requests: make([]*models.ContactRequest, 0)}
}

func (m *MockContactService) Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &models.ContactResponse{Success: true, Message: service.ContactSuccessMessage, ID: int64(len(m.Requests))}, nil
}
