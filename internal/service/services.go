package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

var (
	// ErrNoDraft is returned when the session has no open form for the kind.
	ErrNoDraft = errors.New("no open form")

	// ErrInvalidPatch is returned when a form patch is not valid JSON for the form.
	ErrInvalidPatch = errors.New("invalid form patch")

	// ErrUnsupportedFormat is returned for an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ContentAdmin is the kind-independent view of an AdminService used by the
// HTTP handlers. Item and form values are returned as the kind's concrete
// types.
type ContentAdmin interface {
	Kind() string
	HasForm() bool
	List(ctx context.Context, query, facet string) (any, error)
	Get(ctx context.Context, id int64) (any, error)
	Stats(ctx context.Context) (content.Stats, error)
	OpenCreate(ctx context.Context, sessionID string) (any, error)
	OpenEdit(ctx context.Context, sessionID string, id int64) (any, error)
	Draft(sessionID string) (any, error)
	Patch(sessionID string, patch []byte) (any, error)
	Save(ctx context.Context, sessionID string) (any, error)
	Close(sessionID string)
	Toggle(ctx context.Context, id int64, flag string) (any, error)
	Delete(ctx context.Context, id int64, confirmed bool) (bool, error)
	Export(ctx context.Context, w http.ResponseWriter, format string) error
}

// ContactService defines the interface for public contact submissions
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error)
}

// PortfolioService defines the interface for the public portfolio
type PortfolioService interface {
	GetPortfolio(ctx context.Context) (*models.Portfolio, error)
	ListProjects(ctx context.Context, featuredOnly bool) ([]models.Project, error)
	ListSkills(ctx context.Context, category string) ([]models.Skill, error)
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	ListEducation(ctx context.Context) ([]models.Education, error)
	ListPublishedPosts(ctx context.Context) ([]models.Post, error)
	GetPublishedPost(ctx context.Context, slug string) (*models.Post, error)
}

// MaintenanceService defines the interface for scheduled housekeeping
type MaintenanceService interface {
	Start() error
	Stop(ctx context.Context)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Services holds all service interfaces
type Services struct {
	Admin       map[string]ContentAdmin
	Messages    *MessageAdmin
	Contact     ContactService
	Portfolio   PortfolioService
	Auth        auth.Service
	Maintenance MaintenanceService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	drafts := cache.New(cfg.Admin.DraftTTL, 2*cfg.Admin.DraftTTL)

	projects := NewAdminService(
		content.NewManager(content.ProjectKind(), repos.Projects, log), drafts, cfg.Admin.DraftTTL, log,
	).WithExplain(validation.ValidateProjectForm)

	posts := NewAdminService(
		content.NewManager(content.PostKind(), repos.Posts, log), drafts, cfg.Admin.DraftTTL, log,
	).WithExplain(validation.ValidatePostForm)

	skills := NewAdminService(
		content.NewManager(content.SkillKind(), repos.Skills, log), drafts, cfg.Admin.DraftTTL, log,
	).WithExplain(validation.ValidateSkillForm)

	messages := newMessageAdmin(
		content.NewManager(content.MessageKind(), repos.Messages, log), drafts, cfg.Admin.DraftTTL, log,
	)

	return &Services{
		Admin: map[string]ContentAdmin{
			projects.Kind(): projects,
			posts.Kind():    posts,
			skills.Kind():   skills,
			messages.Kind(): messages,
		},
		Messages:    messages,
		Contact:     newContactService(messages.Manager(), log),
		Portfolio:   newPortfolioService(repos, log),
		Auth:        auth.NewService(repos, cfg.Auth, log),
		Maintenance: newMaintenanceService(repos.Sessions, cfg.Maintenance.SessionPurgeSchedule, log),
	}
}

// Dashboard returns the stats of every kind, keyed by kind name.
func (s *Services) Dashboard(ctx context.Context) (map[string]content.Stats, error) {
	out := make(map[string]content.Stats, len(s.Admin))
	for name, admin := range s.Admin {
		stats, err := admin.Stats(ctx)
		if err != nil {
			return nil, err
		}
		out[name] = stats
	}
	return out, nil
}

// MessageAdmin adds replying to the generic admin workflow for contact messages.
type MessageAdmin struct {
	*AdminService[models.ContactMessage, content.NoForm]
}

func newMessageAdmin(
	manager *content.Manager[models.ContactMessage, content.NoForm],
	drafts *cache.Cache,
	ttl time.Duration,
	log zerolog.Logger,
) *MessageAdmin {
	admin := NewAdminService(manager, drafts, ttl, log).WithCSV(
		[]string{"id", "name", "email", "subject", "message", "replied", "starred", "created_at"},
		func(m models.ContactMessage) []string {
			return []string{
				strconv.FormatInt(m.ID, 10),
				csvSafe(m.Name),
				csvSafe(m.Email),
				csvSafe(m.Subject),
				csvSafe(m.Message),
				strconv.FormatBool(m.Replied),
				strconv.FormatBool(m.Starred),
				m.CreatedAt.UTC().Format(time.RFC3339),
			}
		},
	)
	return &MessageAdmin{AdminService: admin}
}

// Reply records a reply to a message and marks it replied. The reply text
// is logged, not sent.
func (s *MessageAdmin) Reply(ctx context.Context, id int64, body string) (models.ContactMessage, error) {
	msg, err := s.manager.Update(ctx, id, func(m models.ContactMessage) (models.ContactMessage, bool) {
		if m.Replied {
			return m, false
		}
		m.Replied = true
		return m, true
	})
	if err != nil {
		return models.ContactMessage{}, err
	}

	s.log.Info().
		Int64("id", id).
		Str("to", msg.Email).
		Int("length", len(body)).
		Msg("Reply recorded")
	return msg, nil
}
