package mocks

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

// MockStore is an in-memory content.Backend
type MockStore[T any] struct {
	mu    sync.Mutex
	Items []T
	idOf  func(T) int64
	setID func(T, int64) T

	ListError   error
	CreateError error
	UpdateError error
	DeleteError error

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func NewMockStore[T any](idOf func(T) int64, setID func(T, int64) T, items ...T) *MockStore[T] {
	return &MockStore[T]{
		Items: slices.Clone(items),
		idOf:  idOf,
		setID: setID,
	}
}

func (m *MockStore[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	return slices.Clone(m.Items), nil
}

func (m *MockStore[T]) Create(ctx context.Context, item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		var zero T
		return zero, m.CreateError
	}
	id := m.idOf(item)
	if id == 0 {
		for _, existing := range m.Items {
			id = max(id, m.idOf(existing))
		}
		id++
		item = m.setID(item, id)
	}
	if m.indexOf(id) >= 0 {
		var zero T
		return zero, repository.ErrConflict
	}
	m.Items = append(m.Items, item)
	return item, nil
}

func (m *MockStore[T]) Update(ctx context.Context, item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateError != nil {
		var zero T
		return zero, m.UpdateError
	}
	idx := m.indexOf(m.idOf(item))
	if idx < 0 {
		var zero T
		return zero, repository.ErrNotFound
	}
	m.Items[idx] = item
	return item, nil
}

func (m *MockStore[T]) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	idx := m.indexOf(id)
	if idx < 0 {
		return repository.ErrNotFound
	}
	m.Items = slices.Delete(m.Items, idx, idx+1)
	return nil
}

func (m *MockStore[T]) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Items), nil
}

// snapshot returns a copy of the items for the kind-specific queries
func (m *MockStore[T]) snapshot() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Items)
}

func (m *MockStore[T]) indexOf(id int64) int {
	for i, item := range m.Items {
		if m.idOf(item) == id {
			return i
		}
	}
	return -1
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	*MockStore[models.Project]
}

var _ repository.ProjectRepository = (*MockProjectRepository)(nil)

func NewMockProjectRepository(items ...models.Project) *MockProjectRepository {
	kind := content.ProjectKind()
	return &MockProjectRepository{NewMockStore(kind.ID, kind.WithID, items...)}
}

func (m *MockProjectRepository) ListFeatured(ctx context.Context) ([]models.Project, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	featured := []models.Project{}
	for _, p := range m.snapshot() {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// MockPostRepository is a mock implementation of PostRepository. Slugs are
// unique, as in the database.
type MockPostRepository struct {
	*MockStore[models.Post]
}

var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository(items ...models.Post) *MockPostRepository {
	kind := content.PostKind()
	return &MockPostRepository{NewMockStore(kind.ID, kind.WithID, items...)}
}

func (m *MockPostRepository) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if m.slugTaken(p.Slug, p.ID) {
		return models.Post{}, repository.ErrConflict
	}
	return m.MockStore.Create(ctx, p)
}

func (m *MockPostRepository) Update(ctx context.Context, p models.Post) (models.Post, error) {
	if m.slugTaken(p.Slug, p.ID) {
		return models.Post{}, repository.ErrConflict
	}
	return m.MockStore.Update(ctx, p)
}

func (m *MockPostRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	published := []models.Post{}
	for _, p := range m.snapshot() {
		if p.Published {
			published = append(published, p)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return publishedAt(published[i]).After(publishedAt(published[j]))
	})
	return published, nil
}

func (m *MockPostRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for _, p := range m.snapshot() {
		if p.Published && p.Slug == slug {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPostRepository) slugTaken(slug string, id int64) bool {
	for _, p := range m.snapshot() {
		if p.Slug == slug && p.ID != id {
			return true
		}
	}
	return false
}

func publishedAt(p models.Post) time.Time {
	if p.PublishedAt == nil {
		return time.Time{}
	}
	return *p.PublishedAt
}

// MockSkillRepository is a mock implementation of SkillRepository
type MockSkillRepository struct {
	*MockStore[models.Skill]
}

var _ repository.SkillRepository = (*MockSkillRepository)(nil)

func NewMockSkillRepository(items ...models.Skill) *MockSkillRepository {
	kind := content.SkillKind()
	return &MockSkillRepository{NewMockStore(kind.ID, kind.WithID, items...)}
}

func (m *MockSkillRepository) ListByCategory(ctx context.Context, category string) ([]models.Skill, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	skills := []models.Skill{}
	for _, s := range m.snapshot() {
		if s.Category == category {
			skills = append(skills, s)
		}
	}
	return skills, nil
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	*MockStore[models.ContactMessage]
}

var _ repository.MessageRepository = (*MockMessageRepository)(nil)

func NewMockMessageRepository(items ...models.ContactMessage) *MockMessageRepository {
	kind := content.MessageKind()
	return &MockMessageRepository{NewMockStore(kind.ID, kind.WithID, items...)}
}

// MockPortfolioRepository is a mock implementation of PortfolioRepository
type MockPortfolioRepository struct {
	Info        *models.PersonalInfo
	Links       []models.SocialLink
	Experiences []models.Experience
	Education   []models.Education
	Error       error
}

var _ repository.PortfolioRepository = (*MockPortfolioRepository)(nil)

func NewMockPortfolioRepository() *MockPortfolioRepository {
	return &MockPortfolioRepository{
		Links:       []models.SocialLink{},
		Experiences: []models.Experience{},
		Education:   []models.Education{},
	}
}

func (m *MockPortfolioRepository) GetPersonalInfo(ctx context.Context) (*models.PersonalInfo, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Info == nil {
		return nil, repository.ErrNotFound
	}
	return m.Info, nil
}

func (m *MockPortfolioRepository) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	return m.Links, m.Error
}

func (m *MockPortfolioRepository) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	return m.Experiences, m.Error
}

func (m *MockPortfolioRepository) ListEducation(ctx context.Context) ([]models.Education, error) {
	return m.Education, m.Error
}

// MockUserRepository is a mock implementation of UserRepository and
// AccountRepository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	Credentials map[int64]string
	InsertError error
	nextID      int64
}

var (
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.AccountRepository = (*MockUserRepository)(nil)
)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		Credentials: make(map[int64]string),
	}
}

func (m *MockUserRepository) CreateWithCredential(ctx context.Context, user *models.User, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	for _, u := range m.Users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrConflict
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.Users[user.ID] = &stored
	m.Credentials[user.ID] = passwordHash
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	u, err := m.GetByUsername(ctx, username)
	return u != nil, ignoreNotFound(err)
}

func (m *MockUserRepository) GetCredential(ctx context.Context, userID int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, ok := m.Credentials[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.Account{
		UserID:       userID,
		ProviderID:   models.CredentialProvider,
		PasswordHash: hash,
	}, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mu          sync.Mutex
	Sessions    map[string]*models.Session
	GetCalls    int
	ExtendCalls int
	nextID      int64
}

var _ repository.SessionRepository = (*MockSessionRepository)(nil)

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: make(map[string]*models.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Sessions[session.Token]; exists {
		return repository.ErrConflict
	}
	m.nextID++
	session.ID = m.nextID
	stored := *session
	m.Sessions[session.Token] = &stored
	return nil
}

func (m *MockSessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	s, ok := m.Sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *MockSessionRepository) Extend(ctx context.Context, id int64, expiresAt, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtendCalls++
	for _, s := range m.Sessions {
		if s.ID == id {
			s.ExpiresAt = expiresAt
			s.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, token)
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for token, s := range m.Sessions {
		if s.Expired(now) {
			delete(m.Sessions, token)
			removed++
		}
	}
	return removed, nil
}

// NewMockRepositories wires a full set of empty in-memory repositories
func NewMockRepositories() *repository.Repositories {
	users := NewMockUserRepository()
	return &repository.Repositories{
		Projects:  NewMockProjectRepository(),
		Posts:     NewMockPostRepository(),
		Skills:    NewMockSkillRepository(),
		Messages:  NewMockMessageRepository(),
		Portfolio: NewMockPortfolioRepository(),
		Users:     users,
		Accounts:  users,
		Sessions:  NewMockSessionRepository(),
	}
}

func ignoreNotFound(err error) error {
	if err == repository.ErrNotFound {
		return nil
	}
	return err
}
