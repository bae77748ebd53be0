package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"eventcreator/internal/clock"
	"eventcreator/internal/composer"
	"eventcreator/internal/domain"
	"eventcreator/internal/notify"
	"eventcreator/internal/registry"
	"eventcreator/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// stubAPI is a domain.EventAPI that accepts everything.
type stubAPI struct {
	published []domain.EventPayload
	modules   map[string]map[string]any
}

func (s *stubAPI) SaveDraft(context.Context, domain.EventPayload) (*domain.DraftSaved, error) {
	return &domain.DraftSaved{Success: true, DraftID: "draft_1"}, nil
}

func (s *stubAPI) GetDraft(context.Context, string) (*domain.Draft, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAPI) PublishEvent(_ context.Context, p domain.EventPayload) (*domain.Published, error) {
	s.published = append(s.published, p)
	return &domain.Published{Success: true, EventID: "event_1", EventURL: "https://letshang.co/events/event_1"}, nil
}

func (s *stubAPI) GetEvent(context.Context, string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAPI) ValidateEvent(context.Context, domain.EventForm) (*domain.ValidationResult, error) {
	return &domain.ValidationResult{Valid: true}, nil
}

func (s *stubAPI) UploadImage(_ context.Context, kind domain.ImageKind, name string, data []byte) (*domain.UploadResult, error) {
	return &domain.UploadResult{Success: true, URL: "http://localhost:8080/uploads/" + name, MimeType: "image/png"}, nil
}

func (s *stubAPI) ModuleConfigs(context.Context) ([]domain.ModuleConfig, error) {
	return registry.DefaultConfigs(), nil
}

func (s *stubAPI) SaveModuleData(_ context.Context, id string, data map[string]any) (*domain.ModuleSaved, error) {
	if s.modules == nil {
		s.modules = map[string]map[string]any{}
	}
	s.modules[id] = data
	return &domain.ModuleSaved{Success: true, ModuleID: id}, nil
}

type testShell struct {
	*shell
	api *stubAPI
	out *bytes.Buffer
}

func newTestShell(t *testing.T, input string) *testShell {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	st := store.New(context.Background(), nil, testLogger)
	center := notify.NewCenter(clk, testLogger)
	out := &bytes.Buffer{}
	api := &stubAPI{}
	modules := registry.Static(registry.Default())

	sh := newShell(bufio.NewScanner(strings.NewReader(input)), out, st, center, modules)
	c := composer.New(composer.Deps{
		Store:     st,
		API:       api,
		Notifier:  center,
		Modules:   modules,
		Clock:     clk,
		Confirmer: composer.ConfirmFunc(sh.confirm),
		Logger:    testLogger,
	})
	t.Cleanup(c.Close)
	sh.composer = c
	return &testShell{shell: sh, api: api, out: out}
}

func TestShell_SetAndShow(t *testing.T) {
	sh := newTestShell(t, "")
	assert.False(t, sh.exec(context.Background(), "set title Summer Party"))
	sh.exec(context.Background(), "show")

	assert.Contains(t, sh.out.String(), "Summer Party")
	assert.Contains(t, sh.out.String(), "[pending]")
}

func TestShell_SaveReportsToast(t *testing.T) {
	sh := newTestShell(t, "")
	sh.exec(context.Background(), "set title Party")
	sh.exec(context.Background(), "save")

	assert.Contains(t, sh.out.String(), "[success] Draft saved successfully!")
	assert.Equal(t, "draft_1", sh.store.DraftID())
}

func TestShell_Publish(t *testing.T) {
	tests := []struct {
		name          string
		answer        string
		wantPublished int
		wantOutput    string
	}{
		{name: "confirmed", answer: "y\n", wantPublished: 1, wantOutput: "live at https://letshang.co/events/event_1"},
		{name: "confirmed with label", answer: "Publish\n", wantPublished: 1, wantOutput: "live at"},
		{name: "declined", answer: "n\n", wantPublished: 0},
		{name: "no answer", answer: "", wantPublished: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := newTestShell(t, tt.answer)
			sh.exec(context.Background(), "set title Party")
			sh.exec(context.Background(), "set dateTime 2026-07-01T18:00")
			sh.exec(context.Background(), "publish")

			assert.Len(t, sh.api.published, tt.wantPublished)
			assert.Contains(t, sh.out.String(), composer.PublishPrompt.Title)
			if tt.wantOutput != "" {
				assert.Contains(t, sh.out.String(), tt.wantOutput)
			}
			assert.NotContains(t, sh.out.String(), "error:")
		})
	}
}

func TestShell_PublishMissingFields(t *testing.T) {
	sh := newTestShell(t, "")
	sh.exec(context.Background(), "publish")

	assert.Contains(t, sh.out.String(), "Please fill in all required fields")
	assert.Contains(t, sh.out.String(), "error:")
	sh.exec(context.Background(), "show")
	assert.Contains(t, sh.out.String(), "<- Event title is required")
}

func TestShell_Modules(t *testing.T) {
	sh := newTestShell(t, "")
	ctx := context.Background()

	sh.exec(ctx, "modules")
	assert.Contains(t, sh.out.String(), "(more: show all)")

	sh.exec(ctx, "add capacity")
	active := sh.store.ActiveModules()
	require.Len(t, active, 1)
	key := active[0].Key()
	assert.Contains(t, sh.out.String(), "added "+key)

	sh.exec(ctx, "module "+key+` {"capacity":40}`)
	data, ok := sh.store.ModuleData(key)
	require.True(t, ok)
	assert.Equal(t, float64(40), data["capacity"])
	assert.Equal(t, float64(40), sh.api.modules[key]["capacity"])

	sh.exec(ctx, "add capacity")
	assert.Contains(t, sh.out.String(), "error:")

	sh.exec(ctx, "remove "+key)
	assert.Empty(t, sh.store.ActiveModules())
}

func TestShell_UnknownCommandAndQuit(t *testing.T) {
	sh := newTestShell(t, "")
	assert.False(t, sh.exec(context.Background(), "frobnicate"))
	assert.Contains(t, sh.out.String(), `unknown command "frobnicate"`)
	assert.True(t, sh.exec(context.Background(), "quit"))
}

func TestShell_Run(t *testing.T) {
	sh := newTestShell(t, "set title Party\nshow\nquit\nset title ignored\n")
	require.NoError(t, sh.run(context.Background()))
	assert.Equal(t, "Party", sh.store.Form().Title)
}
