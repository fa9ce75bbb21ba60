package content

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Backend is the persistence collaborator behind a Manager. Every mutation
// is written through it before the manager's item store changes.
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Manager owns the item store for one kind of record.
//
// Writes are pessimistic: the backend is called first and the store is
// replaced only once the backend has accepted the change, so a failed write
// leaves the store exactly as it was. The store slice is never modified in
// place; every mutation swaps in a new slice.
type Manager[T any, F any] struct {
	kind    Kind[T, F]
	backend Backend[T]
	log     zerolog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	items  []T
	loaded bool
}

// NewManager creates a manager for kind backed by backend.
func NewManager[T any, F any](kind Kind[T, F], backend Backend[T], log zerolog.Logger) *Manager[T, F] {
	return &Manager[T, F]{
		kind:    kind,
		backend: backend,
		log:     log.With().Str("component", "content").Str("kind", kind.Name).Logger(),
		now:     time.Now,
	}
}

// Kind returns the kind descriptor the manager was built with.
func (m *Manager[T, F]) Kind() Kind[T, F] {
	return m.kind
}

// SetClock replaces the time source used to stamp records.
func (m *Manager[T, F]) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Now returns the current time from the manager's clock.
func (m *Manager[T, F]) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now()
}

// Load replaces the item store with the backend's current contents.
func (m *Manager[T, F]) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked(ctx)
}

func (m *Manager[T, F]) loadLocked(ctx context.Context) error {
	items, err := m.backend.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", m.kind.Name, err)
	}
	if items == nil {
		items = []T{}
	}
	m.items = items
	m.loaded = true
	return nil
}

func (m *Manager[T, F]) ensureLoadedLocked(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	return m.loadLocked(ctx)
}

// snapshot returns the current store slice. The slice must not be modified.
func (m *Manager[T, F]) snapshot(ctx context.Context) ([]T, time.Time, error) {
	m.mu.RLock()
	if m.loaded {
		items, now := m.items, m.now()
		m.mu.RUnlock()
		return items, now, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return nil, time.Time{}, err
	}
	return m.items, m.now(), nil
}

// Items returns a copy of every item in store order.
func (m *Manager[T, F]) Items(ctx context.Context) ([]T, error) {
	items, _, err := m.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// Get returns the item with the given id.
func (m *Manager[T, F]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	items, _, err := m.snapshot(ctx)
	if err != nil {
		return zero, err
	}
	idx := m.indexOf(items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return items[idx], nil
}

// Filter returns the visible subset of the store for query and facet.
func (m *Manager[T, F]) Filter(ctx context.Context, query, facet string) ([]T, error) {
	items, _, err := m.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(m.kind, items, query, facet)
}

// Stats summarizes the store as of the manager's current time.
func (m *Manager[T, F]) Stats(ctx context.Context) (Stats, error) {
	items, now, err := m.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(m.kind, items, now), nil
}

// NewForm returns a form in creating mode, filled with the kind's defaults.
func (m *Manager[T, F]) NewForm() (*Form[F], error) {
	if !m.kind.HasForm() {
		return nil, ErrNoForm
	}
	return &Form[F]{Mode: FormCreating, Fields: m.kind.Defaults()}, nil
}

// EditForm returns a form in editing mode holding a copy of the item's
// mutable fields.
func (m *Manager[T, F]) EditForm(ctx context.Context, id int64) (*Form[F], error) {
	if !m.kind.HasForm() {
		return nil, ErrNoForm
	}
	item, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Form[F]{Mode: FormEditing, ItemID: id, Fields: m.kind.FromItem(item)}, nil
}

// Save writes the form back to the store. An invalid form returns
// ErrInvalidForm and leaves both the form and the store untouched. On
// success the form is closed.
func (m *Manager[T, F]) Save(ctx context.Context, form *Form[F]) (T, error) {
	var zero T
	if !m.kind.HasForm() {
		return zero, ErrNoForm
	}
	if !form.Open() {
		return zero, ErrFormClosed
	}
	if !m.kind.Valid(form.Fields) {
		return zero, ErrInvalidForm
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}
	now := m.now()

	var saved T
	switch form.Mode {
	case FormCreating:
		item := m.kind.WithID(m.kind.Build(form.Fields, now), nextID(m.kind, m.items))
		created, err := m.backend.Create(ctx, item)
		if err != nil {
			return zero, fmt.Errorf("failed to create %s item: %w", m.kind.Name, err)
		}
		next := make([]T, 0, len(m.items)+1)
		next = append(next, m.items...)
		m.items = append(next, created)
		saved = created

		m.log.Info().Int64("id", m.kind.ID(created)).Msg("Item created")

	case FormEditing:
		idx := m.indexOf(m.items, form.ItemID)
		if idx < 0 {
			return zero, ErrNotFound
		}
		item := m.kind.Touch(m.kind.Apply(m.items[idx], form.Fields, now), now)
		updated, err := m.backend.Update(ctx, item)
		if err != nil {
			return zero, fmt.Errorf("failed to update %s item %d: %w", m.kind.Name, form.ItemID, err)
		}
		m.replaceLocked(idx, updated)
		saved = updated

		m.log.Info().Int64("id", form.ItemID).Msg("Item updated")
	}

	form.Close()
	return saved, nil
}

// Add stores a record built outside the form workflow, such as a message
// arriving through the public contact endpoint. The record gets a fresh id;
// its timestamps are kept as given.
func (m *Manager[T, F]) Add(ctx context.Context, item T) (T, error) {
	var zero T

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}

	created, err := m.backend.Create(ctx, m.kind.WithID(item, nextID(m.kind, m.items)))
	if err != nil {
		return zero, fmt.Errorf("failed to add %s item: %w", m.kind.Name, err)
	}
	next := make([]T, 0, len(m.items)+1)
	next = append(next, m.items...)
	m.items = append(next, created)

	m.log.Info().Int64("id", m.kind.ID(created)).Msg("Item added")
	return created, nil
}

// Toggle flips the named flag on the item with the given id.
func (m *Manager[T, F]) Toggle(ctx context.Context, id int64, flag string) (T, error) {
	var zero T
	flip, ok := m.kind.Flags[flag]
	if !ok {
		return zero, ErrUnknownFlag
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}

	idx := m.indexOf(m.items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	now := m.now()
	item := m.kind.Touch(flip(m.items[idx], now), now)

	updated, err := m.backend.Update(ctx, item)
	if err != nil {
		return zero, fmt.Errorf("failed to toggle %s on %s item %d: %w", flag, m.kind.Name, id, err)
	}
	m.replaceLocked(idx, updated)

	m.log.Info().Int64("id", id).Str("flag", flag).Msg("Item flag toggled")
	return updated, nil
}

// Update applies change to the item with the given id while holding the
// write lock. When change reports no change the current item is returned and
// the backend is not called.
func (m *Manager[T, F]) Update(ctx context.Context, id int64, change func(T) (T, bool)) (T, error) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return zero, err
	}

	idx := m.indexOf(m.items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	item, changed := change(m.items[idx])
	if !changed {
		return m.items[idx], nil
	}
	item = m.kind.Touch(item, m.now())

	updated, err := m.backend.Update(ctx, item)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s item %d: %w", m.kind.Name, id, err)
	}
	m.replaceLocked(idx, updated)

	m.log.Info().Int64("id", id).Msg("Item updated")
	return updated, nil
}

// Remove deletes the item with the given id once confirm approves it. A nil
// confirm or a declined confirmation leaves the store unchanged and returns
// false.
func (m *Manager[T, F]) Remove(ctx context.Context, id int64, confirm func(T) bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}

	idx := m.indexOf(m.items, id)
	if idx < 0 {
		return false, ErrNotFound
	}
	if confirm == nil || !confirm(m.items[idx]) {
		return false, nil
	}

	if err := m.backend.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete %s item %d: %w", m.kind.Name, id, err)
	}

	next := make([]T, 0, len(m.items)-1)
	next = append(next, m.items[:idx]...)
	m.items = append(next, m.items[idx+1:]...)

	m.log.Info().Int64("id", id).Msg("Item deleted")
	return true, nil
}

func (m *Manager[T, F]) replaceLocked(idx int, item T) {
	next := slices.Clone(m.items)
	next[idx] = item
	m.items = next
}

func (m *Manager[T, F]) indexOf(items []T, id int64) int {
	for i, item := range items {
		if m.kind.ID(item) == id {
			return i
		}
	}
	return -1
}

// nextID returns one more than the largest id in items.
func nextID[T any, F any](kind Kind[T, F], items []T) int64 {
	var highest int64
	for _, item := range items {
		if id := kind.ID(item); id > highest {
			highest = id
		}
	}
	return highest + 1
}
