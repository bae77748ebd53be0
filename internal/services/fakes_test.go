package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventcreator/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeDraftRepo is an in-memory DraftRepository for tests.
type fakeDraftRepo struct {
	byID      map[string]*domain.Draft
	upsertErr error
	getErr    error
	deleted   []string
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{byID: make(map[string]*domain.Draft)}
}

func (f *fakeDraftRepo) Upsert(_ context.Context, d *domain.Draft) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDraftRepo) GetByID(_ context.Context, id string) (*domain.Draft, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if d, ok := f.byID[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDraftRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID map[string]*domain.Event
	err  error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.byID[e.EventID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

type fakeStream struct {
	announced []string
	err       error
}

func (f *fakeStream) Announce(_ context.Context, e *domain.Event) error {
	f.announced = append(f.announced, e.EventID)
	return f.err
}

type fakeEmailService struct {
	sent []*domain.EventPublishedEmailData
	err  error
}

func (f *fakeEmailService) SendEventPublished(_ context.Context, data *domain.EventPublishedEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(name string, _ any) (string, string, string, error) {
	f.name = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

type fakeBlobStore struct {
	files map[string][]byte
	err   error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, name string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.files[name] = data
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, name string) ([]byte, error) {
	if d, ok := f.files[name]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

type fakeModuleRepo struct {
	saved   map[string]map[string]any
	savedAt time.Time
	err     error
}

func (f *fakeModuleRepo) Save(_ context.Context, id string, data map[string]any, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = map[string]map[string]any{}
	}
	f.saved[id] = data
	f.savedAt = at
	return nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
