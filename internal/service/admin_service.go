package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// AdminService runs the back-office workflow for one kind: listing and
// filtering, per-session form drafts, saving, flag toggles, deletion and
// export.
type AdminService[T any, F any] struct {
	manager *content.Manager[T, F]
	drafts  *cache.Cache
	ttl     time.Duration
	explain func(F) []validation.ValidationError
	csv     *csvLayout[T]
	log     zerolog.Logger

	// mu serializes access to open drafts
	mu sync.Mutex
}

// csvLayout describes how a kind is written as CSV.
type csvLayout[T any] struct {
	header []string
	row    func(T) []string
}

// NewAdminService creates the admin service for manager. Drafts share the
// given cache and expire after ttl without activity.
func NewAdminService[T any, F any](
	manager *content.Manager[T, F],
	drafts *cache.Cache,
	ttl time.Duration,
	log zerolog.Logger,
) *AdminService[T, F] {
	return &AdminService[T, F]{
		manager: manager,
		drafts:  drafts,
		ttl:     ttl,
		log:     log.With().Str("service", "admin").Str("kind", manager.Kind().Name).Logger(),
	}
}

// WithExplain sets the function that details why a form is invalid.
func (s *AdminService[T, F]) WithExplain(explain func(F) []validation.ValidationError) *AdminService[T, F] {
	s.explain = explain
	return s
}

// WithCSV enables CSV export with the given header and row function.
func (s *AdminService[T, F]) WithCSV(header []string, row func(T) []string) *AdminService[T, F] {
	s.csv = &csvLayout[T]{header: header, row: row}
	return s
}

// Manager returns the underlying content manager.
func (s *AdminService[T, F]) Manager() *content.Manager[T, F] {
	return s.manager
}

func (s *AdminService[T, F]) Kind() string {
	return s.manager.Kind().Name
}

func (s *AdminService[T, F]) HasForm() bool {
	return s.manager.Kind().HasForm()
}

// List reloads the store from the database and filters it.
func (s *AdminService[T, F]) List(ctx context.Context, query, facet string) (any, error) {
	if err := s.manager.Load(ctx); err != nil {
		return nil, err
	}
	return s.manager.Filter(ctx, query, facet)
}

func (s *AdminService[T, F]) Get(ctx context.Context, id int64) (any, error) {
	return s.manager.Get(ctx, id)
}

func (s *AdminService[T, F]) Stats(ctx context.Context) (content.Stats, error) {
	return s.manager.Stats(ctx)
}

// OpenCreate replaces the session's draft with an empty create form.
func (s *AdminService[T, F]) OpenCreate(ctx context.Context, sessionID string) (any, error) {
	form, err := s.manager.NewForm()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts.Set(s.draftKey(sessionID), form, s.ttl)
	return form, nil
}

// OpenEdit replaces the session's draft with a copy of the item's fields.
func (s *AdminService[T, F]) OpenEdit(ctx context.Context, sessionID string, id int64) (any, error) {
	form, err := s.manager.EditForm(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts.Set(s.draftKey(sessionID), form, s.ttl)
	return form, nil
}

// Draft returns the session's open form.
func (s *AdminService[T, F]) Draft(sessionID string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftLocked(sessionID)
}

// Patch applies a partial JSON update to the session's open form. Keys
// absent from patch keep their current values.
func (s *AdminService[T, F]) Patch(sessionID string, patch []byte) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.draftLocked(sessionID)
	if err != nil {
		return nil, err
	}
	fields := form.Fields
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	form.Fields = fields
	return form, nil
}

// Save writes the session's open form through the manager. An invalid form
// stays open; the returned error matches content.ErrInvalidForm and, when
// the kind can explain it, *validation.Errors.
func (s *AdminService[T, F]) Save(ctx context.Context, sessionID string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.draftLocked(sessionID)
	if err != nil {
		return nil, err
	}

	saved, err := s.manager.Save(ctx, form)
	if err != nil {
		if errors.Is(err, content.ErrInvalidForm) && s.explain != nil {
			return nil, errors.Join(err, validation.AsError(s.explain(form.Fields)))
		}
		return nil, err
	}

	s.drafts.Delete(s.draftKey(sessionID))
	return saved, nil
}

// Close discards the session's draft.
func (s *AdminService[T, F]) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts.Delete(s.draftKey(sessionID))
}

func (s *AdminService[T, F]) Toggle(ctx context.Context, id int64, flag string) (any, error) {
	return s.manager.Toggle(ctx, id, flag)
}

// Delete removes the item when confirmed is true. An unconfirmed request
// removes nothing and returns false.
func (s *AdminService[T, F]) Delete(ctx context.Context, id int64, confirmed bool) (bool, error) {
	return s.manager.Remove(ctx, id, func(T) bool { return confirmed })
}

// Export streams every item of the kind in the requested format.
func (s *AdminService[T, F]) Export(ctx context.Context, w http.ResponseWriter, format string) error {
	if err := s.manager.Load(ctx); err != nil {
		return err
	}
	items, err := s.manager.Items(ctx)
	if err != nil {
		return err
	}

	name := s.Kind()
	s.log.Info().Str("format", format).Int("count", len(items)).Msg("Starting export")

	switch format {
	case "ndjson", "":
		return streamNDJSON(w, name, items)
	case "json":
		return streamJSON(w, name, items)
	case "csv":
		if s.csv == nil {
			return fmt.Errorf("%w: csv", ErrUnsupportedFormat)
		}
		return streamCSV(w, name, s.csv.header, items, s.csv.row)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (s *AdminService[T, F]) draftKey(sessionID string) string {
	return sessionID + "/" + s.Kind()
}

// draftLocked returns the open draft and slides its expiry forward.
func (s *AdminService[T, F]) draftLocked(sessionID string) (*content.Form[F], error) {
	key := s.draftKey(sessionID)
	cached, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoDraft
	}
	form := cached.(*content.Form[F])
	if !form.Open() {
		s.drafts.Delete(key)
		return nil, ErrNoDraft
	}
	s.drafts.Set(key, form, s.ttl)
	return form, nil
}

var _ ContentAdmin = (*AdminService[struct{}, struct{}])(nil)

// SessionKey turns a session id into the key drafts are stored under.
func SessionKey(sessionID int64) string {
	return strconv.FormatInt(sessionID, 10)
}
