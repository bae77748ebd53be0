// Package memory provides map-backed repositories for running the
// development backend without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"eventcreator/internal/domain"
)

type draftRepository struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
}

// NewDraftRepository returns an in-memory DraftRepository.
func NewDraftRepository() domain.DraftRepository {
	return &draftRepository{drafts: make(map[string]domain.Draft)}
}

func (r *draftRepository) Upsert(_ context.Context, d *domain.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = *d
	return nil
}

func (r *draftRepository) GetByID(_ context.Context, id string) (*domain.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *draftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

type eventRepository struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

// NewEventRepository returns an in-memory EventRepository.
func NewEventRepository() domain.EventRepository {
	return &eventRepository{events: make(map[string]domain.Event)}
}

func (r *eventRepository) Create(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.EventID]; ok {
		return domain.ErrConflict
	}
	r.events[e.EventID] = *e
	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

type moduleRecord struct {
	data    map[string]any
	savedAt time.Time
}

// ModuleDataRepository is an in-memory domain.ModuleDataRepository. Get is
// exposed for tests and debugging.
type ModuleDataRepository struct {
	mu      sync.RWMutex
	records map[string]moduleRecord
}

var _ domain.ModuleDataRepository = (*ModuleDataRepository)(nil)

// NewModuleDataRepository returns an empty ModuleDataRepository.
func NewModuleDataRepository() *ModuleDataRepository {
	return &ModuleDataRepository{records: make(map[string]moduleRecord)}
}

func (r *ModuleDataRepository) Save(_ context.Context, moduleID string, data map[string]any, savedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[moduleID] = moduleRecord{data: domain.CloneModuleData(data), savedAt: savedAt}
	return nil
}

// Get returns the last saved data for moduleID.
func (r *ModuleDataRepository) Get(moduleID string) (map[string]any, time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[moduleID]
	return domain.CloneModuleData(rec.data), rec.savedAt, ok
}
