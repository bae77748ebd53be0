// Package store holds the event form client state: the form, uploaded images,
// the draft id and the active modules with their data. Form, draft id and
// modules are persisted through a domain.StateStorage on every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"eventcreator/internal/domain"
)

// Change describes which parts of the state a mutation touched.
type Change uint8

const (
	ChangeForm Change = 1 << iota
	ChangeImages
	ChangeDraft
	ChangeModules
	ChangeModuleData
	ChangeShowMore
)

// Has reports whether c includes any of the bits in other.
func (c Change) Has(other Change) bool { return c&other != 0 }

const persisted = ChangeForm | ChangeDraft | ChangeModules | ChangeModuleData

// Store is the persistent reactive store. It is safe for concurrent use.
type Store struct {
	storage domain.StateStorage
	logger  *slog.Logger

	// persistMu is taken while mu is held so snapshots reach storage in
	// mutation order.
	persistMu sync.Mutex

	mu              sync.Mutex
	form            domain.EventForm
	flyer           *domain.ImageRef
	background      *domain.ImageRef
	draftID         string
	activeModules   []domain.ModuleRef
	moduleData      map[string]map[string]any
	showMoreModules bool

	listenersMu sync.Mutex
	nextID      int
	listeners   []listener
}

type listener struct {
	id int
	fn func(Change)
}

// New builds a Store and restores the persisted state from storage. A missing
// snapshot yields defaults; an unreadable one is logged and ignored.
func New(ctx context.Context, storage domain.StateStorage, logger *slog.Logger) *Store {
	s := &Store{
		storage:    storage,
		logger:     logger,
		moduleData: map[string]map[string]any{},
	}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, err := s.storage.Load(ctx, domain.StateKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "state load failed", "key", domain.StateKey, "err", err)
		}
		return
	}
	var st domain.PersistedState
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logger.WarnContext(ctx, "state snapshot unreadable, starting fresh", "key", domain.StateKey, "err", err)
		return
	}
	s.form = st.EventForm
	s.draftID = st.DraftID
	for _, ref := range st.ActiveModules {
		if !slices.Contains(s.activeModules, ref) {
			s.activeModules = append(s.activeModules, ref)
		}
	}
	for k, v := range st.ModuleData {
		s.moduleData[k] = v
	}
}

// Subscribe registers fn to be called after every mutation that changes
// state. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// Form returns the current form.
func (s *Store) Form() domain.EventForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// FlyerImage returns the flyer, or nil.
func (s *Store) FlyerImage() *domain.ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneImage(s.flyer)
}

// BackgroundImage returns the background, or nil.
func (s *Store) BackgroundImage() *domain.ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneImage(s.background)
}

// DraftID returns the current draft id, or "" when no draft exists.
func (s *Store) DraftID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftID
}

// ActiveModules returns the active module refs in display order.
func (s *Store) ActiveModules() []domain.ModuleRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activeModules)
}

// ModuleData returns the data recorded for a module key.
func (s *Store) ModuleData(key string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.moduleData[key]
	return domain.CloneModuleData(d), ok
}

// AllModuleData returns every module record, including orphaned ones.
func (s *Store) AllModuleData() map[string]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.moduleData)
}

// ShowMoreModules reports whether the full addable-module list is expanded.
func (s *Store) ShowMoreModules() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showMoreModules
}

// Snapshot returns the persisted portion of the state.
func (s *Store) Snapshot() domain.PersistedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Payload builds the save-draft/publish body from the current state.
func (s *Store) Payload() domain.EventPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.EventPayload{EventForm: s.form, DraftID: s.draftID}
	if s.flyer != nil {
		p.FlyerImageURL = s.flyer.URL
	}
	if s.background != nil {
		p.BackgroundImageURL = s.background.URL
	}
	return p
}

// MergeForm merges a partial update into the form.
func (s *Store) MergeForm(p domain.FormPatch) {
	s.update(func() Change {
		next := p.Apply(s.form)
		if next == s.form {
			return 0
		}
		s.form = next
		return ChangeForm
	})
}

// SetFlyerImage replaces the flyer; nil clears it.
func (s *Store) SetFlyerImage(img *domain.ImageRef) {
	s.update(func() Change {
		s.flyer = cloneImage(img)
		return ChangeImages
	})
}

// SetBackgroundImage replaces the background; nil clears it.
func (s *Store) SetBackgroundImage(img *domain.ImageRef) {
	s.update(func() Change {
		s.background = cloneImage(img)
		return ChangeImages
	})
}

// SetDraftID records the server-issued draft id; "" clears it.
func (s *Store) SetDraftID(id string) {
	s.update(func() Change {
		if s.draftID == id {
			return 0
		}
		s.draftID = id
		return ChangeDraft
	})
}

// AddModule appends ref to the active modules. Adding a present ref is a no-op.
func (s *Store) AddModule(ref domain.ModuleRef) {
	s.update(func() Change {
		if slices.Contains(s.activeModules, ref) {
			return 0
		}
		s.activeModules = append(s.activeModules, ref)
		return ChangeModules
	})
}

// RemoveModule drops ref from the active modules, keeping the order of the
// rest. Its data entry is left in place.
func (s *Store) RemoveModule(ref domain.ModuleRef) {
	s.update(func() Change {
		n := len(s.activeModules)
		s.activeModules = slices.DeleteFunc(s.activeModules, func(r domain.ModuleRef) bool { return r == ref })
		if len(s.activeModules) == n {
			return 0
		}
		return ChangeModules
	})
}

// SetModuleData replaces the record stored for a module key.
func (s *Store) SetModuleData(key string, data map[string]any) {
	s.update(func() Change {
		s.moduleData[key] = domain.CloneModuleData(data)
		return ChangeModuleData
	})
}

// ClearModuleData removes the record stored for a module key.
func (s *Store) ClearModuleData(key string) {
	s.update(func() Change {
		if _, ok := s.moduleData[key]; !ok {
			return 0
		}
		delete(s.moduleData, key)
		return ChangeModuleData
	})
}

// ToggleShowMoreModules flips the show-more flag.
func (s *Store) ToggleShowMoreModules() {
	s.update(func() Change {
		s.showMoreModules = !s.showMoreModules
		return ChangeShowMore
	})
}

// Reset returns every field to its initial value.
func (s *Store) Reset() {
	s.update(func() Change {
		s.form = domain.EventForm{}
		s.flyer = nil
		s.background = nil
		s.draftID = ""
		s.activeModules = nil
		s.moduleData = map[string]map[string]any{}
		s.showMoreModules = false
		return ChangeForm | ChangeImages | ChangeDraft | ChangeModules | ChangeModuleData | ChangeShowMore
	})
}

// update runs mutate under the lock, persists if needed, then notifies
// listeners outside the lock.
func (s *Store) update(mutate func() Change) {
	s.mu.Lock()
	change := mutate()
	var raw []byte
	if change.Has(persisted) && s.storage != nil {
		var err error
		raw, err = json.Marshal(s.snapshotLocked())
		if err != nil {
			s.logger.Error("state encode failed", "err", err)
			raw = nil
		}
	}
	if raw != nil {
		s.persistMu.Lock()
	}
	s.mu.Unlock()

	if raw != nil {
		err := s.storage.Save(context.Background(), domain.StateKey, raw)
		s.persistMu.Unlock()
		if err != nil {
			s.logger.Error("state save failed", "key", domain.StateKey, "err", err)
		}
	}
	if change != 0 {
		s.notify(change)
	}
}

func (s *Store) notify(change Change) {
	s.listenersMu.Lock()
	ls := slices.Clone(s.listeners)
	s.listenersMu.Unlock()
	for _, l := range ls {
		l.fn(change)
	}
}

func (s *Store) snapshotLocked() domain.PersistedState {
	return domain.PersistedState{
		EventForm:     s.form,
		DraftID:       s.draftID,
		ActiveModules: slices.Clone(s.activeModules),
		ModuleData:    cloneAll(s.moduleData),
	}
}

func cloneImage(img *domain.ImageRef) *domain.ImageRef {
	if img == nil {
		return nil
	}
	cp := *img
	return &cp
}

func cloneAll(m map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(m))
	for k, v := range m {
		out[k] = domain.CloneModuleData(v)
	}
	return out
}
