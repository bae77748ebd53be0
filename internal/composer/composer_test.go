package composer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"eventcreator/internal/clock"
	"eventcreator/internal/domain"
	"eventcreator/internal/notify"
	"eventcreator/internal/store"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAPI is an in-memory EventAPI. Hooks left nil succeed.
type fakeAPI struct {
	mu sync.Mutex

	drafts    []domain.EventPayload
	publishes []domain.EventPayload
	validates int
	uploads   []domain.ImageKind
	modules   []string

	saveDraftErr error
	publishErr   error
	validateRes  *domain.ValidationResult
	validateErr  error
	uploadErr    error
	getDraft     func(id string) (*domain.Draft, error)
	saveModule   func(ctx context.Context, id string, data map[string]any) error
}

func (f *fakeAPI) SaveDraft(_ context.Context, p domain.EventPayload) (*domain.DraftSaved, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, p)
	if f.saveDraftErr != nil {
		return nil, f.saveDraftErr
	}
	id := p.DraftID
	if id == "" {
		id = "draft_1"
	}
	return &domain.DraftSaved{Success: true, DraftID: id}, nil
}

func (f *fakeAPI) GetDraft(_ context.Context, id string) (*domain.Draft, error) {
	if f.getDraft != nil {
		return f.getDraft(id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) PublishEvent(_ context.Context, p domain.EventPayload) (*domain.Published, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishes = append(f.publishes, p)
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return &domain.Published{Success: true, EventID: "event_1", EventURL: "https://letshang.co/events/event_1"}, nil
}

func (f *fakeAPI) GetEvent(context.Context, string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) ValidateEvent(context.Context, domain.EventForm) (*domain.ValidationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validates++
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	if f.validateRes != nil {
		return f.validateRes, nil
	}
	return &domain.ValidationResult{Valid: true}, nil
}

func (f *fakeAPI) UploadImage(_ context.Context, kind domain.ImageKind, name string, data []byte) (*domain.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, kind)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &domain.UploadResult{
		Success:  true,
		URL:      "http://localhost:8080/uploads/" + name,
		UploadID: name,
		Size:     int64(len(data)),
		MimeType: "image/png",
	}, nil
}

func (f *fakeAPI) ModuleConfigs(context.Context) ([]domain.ModuleConfig, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) SaveModuleData(ctx context.Context, id string, data map[string]any) (*domain.ModuleSaved, error) {
	f.mu.Lock()
	f.modules = append(f.modules, id)
	hook := f.saveModule
	f.mu.Unlock()
	if hook != nil {
		if err := hook(ctx, id, data); err != nil {
			return nil, err
		}
	}
	return &domain.ModuleSaved{Success: true, ModuleID: id}, nil
}

func (f *fakeAPI) draftCalls() []domain.EventPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.EventPayload(nil), f.drafts...)
}

func (f *fakeAPI) publishCalls() []domain.EventPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.EventPayload(nil), f.publishes...)
}

type fakeConfirmer struct {
	answer bool
	calls  int
}

func (f *fakeConfirmer) Confirm(context.Context, Prompt) bool {
	f.calls++
	return f.answer
}

type harness struct {
	c         *Composer
	store     *store.Store
	api       *fakeAPI
	toasts    *notify.Center
	clock     *clock.Fake
	confirmer *fakeConfirmer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	st := store.New(context.Background(), nil, testLogger)
	api := &fakeAPI{}
	center := notify.NewCenter(clk, testLogger)
	confirmer := &fakeConfirmer{answer: true}
	c := New(Deps{
		Store:     st,
		API:       api,
		Notifier:  center,
		Clock:     clk,
		Confirmer: confirmer,
		Logger:    testLogger,
	})
	t.Cleanup(c.Close)
	return &harness{c: c, store: st, api: api, toasts: center, clock: clk, confirmer: confirmer}
}

func (h *harness) fill(t *testing.T, fields map[domain.Field]string) {
	t.Helper()
	for f, v := range fields {
		require.NoError(t, h.c.EditField(f, v))
	}
}

func (h *harness) lastToast(t *testing.T) domain.Toast {
	t.Helper()
	list := h.toasts.List()
	require.NotEmpty(t, list)
	return list[len(list)-1]
}

func (h *harness) messages() []string {
	var out []string
	for _, t := range h.toasts.List() {
		out = append(out, t.Message)
	}
	return out
}
